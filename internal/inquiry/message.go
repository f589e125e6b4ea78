package inquiry

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/avstrong/homestay/internal/pricing"
)

const dateLayout = "2006-01-02"

type Request struct {
	Name            string
	Email           string
	Phone           string
	Room            pricing.RoomCategory
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	Rooms           int
	Message         string
	NeedYogaMat     bool
	ExtraBed        bool
	SpecialOccasion bool
}

type Line struct {
	Label  string
	Amount int
}

// Pricing is the priced part of an inquiry. Rate is the headline nightly rate.
type Pricing struct {
	Rate       int
	Nights     int
	Total      int
	Peak       bool
	Extras     []Line
	GrandTotal int
}

// Summary renders the inquiry as plain text for a host to read in a chat app.
// The pricing block is omitted when p is nil or covers no nights.
func Summary(siteName string, r *Request, p *Pricing) string {
	var b strings.Builder

	fmt.Fprintf(&b, "NEW BOOKING INQUIRY - %s\n\n", siteName)
	fmt.Fprintf(&b, "Name: %s\n", SanitizeName(r.Name))
	fmt.Fprintf(&b, "Email: %s\n", SanitizeEmail(r.Email))
	fmt.Fprintf(&b, "Phone: %s\n", SanitizePhone(r.Phone))
	fmt.Fprintf(&b, "Room Type: %s\n", r.Room.DisplayName())
	fmt.Fprintf(&b, "Check-in: %s\n", r.CheckIn.Format(dateLayout))
	fmt.Fprintf(&b, "Check-out: %s\n", r.CheckOut.Format(dateLayout))
	fmt.Fprintf(&b, "Guests: %d\n", r.Guests)

	if r.Rooms > 0 {
		fmt.Fprintf(&b, "Rooms: %d\n", r.Rooms)
	}

	if requests := specialRequests(r); len(requests) > 0 {
		fmt.Fprintf(&b, "Special Requests: %s\n", strings.Join(requests, ", "))
	}

	if msg := SanitizeMessage(r.Message); msg != "" {
		fmt.Fprintf(&b, "Message: %s\n", msg)
	}

	if p != nil && p.Nights > 0 {
		b.WriteString("\nPRICING:\n")

		rate := "- Rate: " + pricing.FormatPriceExact(p.Rate) + "/night"
		if p.Peak {
			rate += " (Peak Season)"
		}

		b.WriteString(rate + "\n")
		fmt.Fprintf(&b, "- Nights: %d\n", p.Nights)
		fmt.Fprintf(&b, "- Total: %s\n", pricing.FormatPriceExact(p.Total))

		for _, l := range p.Extras {
			fmt.Fprintf(&b, "- %s: %s\n", l.Label, pricing.FormatPriceExact(l.Amount))
		}

		if len(p.Extras) > 0 {
			fmt.Fprintf(&b, "- Grand total: %s\n", pricing.FormatPriceExact(p.GrandTotal))
		}
	}

	b.WriteString("\nPlease confirm availability and rates. Thank you!")

	return b.String()
}

func specialRequests(r *Request) []string {
	var out []string

	if r.NeedYogaMat {
		out = append(out, "Yoga mat needed")
	}

	if r.ExtraBed {
		out = append(out, "Extra bed required")
	}

	if r.SpecialOccasion {
		out = append(out, "Special occasion")
	}

	return out
}

// DeepLink builds a chat deep link that opens with text prefilled. It does not send anything.
func DeepLink(baseURL, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")

	return baseURL + "?text=" + escaped
}
