package inquiry

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/homestay/internal/pricing"
)

func sampleRequest() *Request {
	return &Request{
		Name:            "Asha Rao",
		Email:           "Asha@Example.com",
		Phone:           "+91 98765 43210",
		Room:            pricing.Suite,
		CheckIn:         time.Date(2025, time.June, 29, 0, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC),
		Guests:          2,
		Message:         "Arriving late\nafter 9pm",
		NeedYogaMat:     true,
		SpecialOccasion: true,
	}
}

func TestSummary_WithPricing(t *testing.T) {
	p := &Pricing{
		Rate:       4725,
		Nights:     3,
		Total:      13475,
		Peak:       true,
		Extras:     []Line{{Label: "Extra bed", Amount: 1800}},
		GrandTotal: 15275,
	}

	got := Summary("Ecoescape Mukteshwar", sampleRequest(), p)

	assert.True(t, strings.HasPrefix(got, "NEW BOOKING INQUIRY - Ecoescape Mukteshwar\n"))
	assert.Contains(t, got, "Name: Asha Rao\n")
	assert.Contains(t, got, "Email: asha@example.com\n")
	assert.Contains(t, got, "Phone: +919876543210\n")
	assert.Contains(t, got, "Room Type: Suite with Mountain View\n")
	assert.Contains(t, got, "Check-in: 2025-06-29\n")
	assert.Contains(t, got, "Check-out: 2025-07-02\n")
	assert.Contains(t, got, "Guests: 2\n")
	assert.Contains(t, got, "Special Requests: Yoga mat needed, Special occasion\n")
	assert.Contains(t, got, "Message: Arriving late after 9pm\n")
	assert.Contains(t, got, "- Rate: ₹4,725/night (Peak Season)\n")
	assert.Contains(t, got, "- Nights: 3\n")
	assert.Contains(t, got, "- Total: ₹13,475\n")
	assert.Contains(t, got, "- Extra bed: ₹1,800\n")
	assert.Contains(t, got, "- Grand total: ₹15,275\n")
	assert.True(t, strings.HasSuffix(got, "Please confirm availability and rates. Thank you!"))
	assert.NotContains(t, got, "Rooms:")
}

func TestSummary_NoPricing(t *testing.T) {
	r := sampleRequest()
	r.NeedYogaMat = false
	r.SpecialOccasion = false
	r.Message = ""

	for _, p := range []*Pricing{nil, {Nights: 0}} {
		got := Summary("Site", r, p)

		assert.NotContains(t, got, "PRICING:")
		assert.NotContains(t, got, "Special Requests:")
		assert.NotContains(t, got, "Message:")
	}
}

func TestSummary_StandardRateHasNoPeakNote(t *testing.T) {
	got := Summary("Site", sampleRequest(), &Pricing{Rate: 3500, Nights: 1, Total: 3500})

	assert.Contains(t, got, "- Rate: ₹3,500/night\n")
	assert.NotContains(t, got, "Peak Season")
	assert.NotContains(t, got, "Grand total")
}

func TestDeepLink(t *testing.T) {
	link := DeepLink("https://wa.me/919667846787", "Hello there\nRoom: Suite & more")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/919667846787?text="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "Hello%20there%0ARoom")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hello there\nRoom: Suite & more", u.Query().Get("text"))
}
