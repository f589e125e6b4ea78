package booking

import (
	"time"

	"github.com/avstrong/homestay/internal/inquiry"
	"github.com/avstrong/homestay/internal/pricing"
)

type QuoteInput struct {
	Room     string
	CheckIn  time.Time
	CheckOut time.Time
	Extras   []Extra
}

type Charge struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// Estimate is a quote plus optional paid extras. Quote.TotalPrice covers nights only.
type Estimate struct {
	Quote      pricing.Quote `json:"quote"`
	Extras     []Charge      `json:"extras"`
	GrandTotal int           `json:"grand_total"`
}

func newEstimate(q pricing.Quote) *Estimate {
	return &Estimate{
		Quote:      q,
		Extras:     []Charge{},
		GrandTotal: q.TotalPrice,
	}
}

func (e *Estimate) AddCharge(name string, amount int) {
	e.Extras = append(e.Extras, Charge{Name: name, Amount: amount})
	e.GrandTotal += amount
}

type NightlyPrice struct {
	Room      pricing.RoomCategory `json:"room"`
	Date      time.Time            `json:"date"`
	Markup    float64              `json:"markup"`
	Price     int                  `json:"price"`
	Peak      bool                 `json:"peak"`
	Formatted string               `json:"formatted"`
}

type PeakInfo struct {
	Date   time.Time `json:"date"`
	Markup float64   `json:"markup"`
	Peak   bool      `json:"peak"`
}

type RoomListing struct {
	pricing.RoomPricing
	Identifier    string `json:"identifier"`
	Name          string `json:"name"`
	DisplayFrom   string `json:"display_from"`
	DisplayPeakUp string `json:"display_peak_up_to"`
}

const (
	minNameLen    = 2
	maxNameLen    = 100
	maxEmailLen   = 255
	minPhoneLen   = 10
	maxPhoneLen   = 15
	maxMessageLen = 1000

	// MaxStayNights caps a single quote or inquiry.
	MaxStayNights = 365
)

type InquiryInput struct {
	Name            string
	Email           string
	Phone           string
	Room            string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	Rooms           int
	Message         string
	NeedYogaMat     bool
	ExtraBed        bool
	SpecialOccasion bool
	Extras          []Extra
}

type InquiryResult struct {
	Estimate *Estimate `json:"estimate"`
	Summary  string    `json:"summary"`
	DeepLink string    `json:"deep_link"`
}

func (e *Estimate) inquiryPricing() *inquiry.Pricing {
	p := &inquiry.Pricing{
		Rate:       e.Quote.BasePrice,
		Nights:     e.Quote.Nights,
		Total:      e.Quote.TotalPrice,
		Peak:       e.Quote.IsPeakSeason,
		GrandTotal: e.GrandTotal,
	}

	for _, c := range e.Extras {
		p.Extras = append(p.Extras, inquiry.Line{Label: c.Name, Amount: c.Amount})
	}

	return p
}
