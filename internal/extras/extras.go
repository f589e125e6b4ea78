package extras

import (
	"errors"
	"fmt"

	"github.com/avstrong/homestay/internal/booking"
)

var ErrNegativeRate = errors.New("extra rate must not be negative")

// ExtraBed charges a flat amount per night of the stay.
type ExtraBed struct {
	PerNight int
}

func (b *ExtraBed) Key() string {
	return fmt.Sprintf("extra_bed:%d", b.PerNight)
}

func (b *ExtraBed) Apply(e *booking.Estimate) error {
	if b.PerNight < 0 {
		return fmt.Errorf("extra bed at %d per night: %w", b.PerNight, ErrNegativeRate)
	}

	if e.Quote.Nights == 0 {
		return nil
	}

	e.AddCharge("Extra bed", b.PerNight*e.Quote.Nights)

	return nil
}

type Catalog struct {
	extraBedPerNight int
}

func New(extraBedPerNight int) *Catalog {
	return &Catalog{extraBedPerNight: extraBedPerNight}
}

// For returns the extras a guest selected, in the order they are charged.
func (c *Catalog) For(extraBed bool) []booking.Extra {
	var res []booking.Extra

	if extraBed {
		res = append(res, &ExtraBed{PerNight: c.extraBedPerNight})
	}

	return res
}
