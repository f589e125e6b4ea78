package pricing

import (
	"math"
	"time"
)

const secondsPerDay = 24 * 60 * 60

type Option func(e *Engine)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine prices rooms against a Schedule. It holds no mutable state.
type Engine struct {
	schedule *Schedule
	now      func() time.Time
}

func New(schedule *Schedule, opts ...Option) *Engine {
	e := &Engine{
		schedule: schedule,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) Schedule() *Schedule {
	return e.schedule
}

func (e *Engine) Now() time.Time {
	return e.now()
}

func (e *Engine) Markup(date time.Time) float64 {
	return e.schedule.Markup(date)
}

func (e *Engine) BasePrice(room RoomCategory) int {
	return e.schedule.BasePrice(room)
}

// NightlyPrice is the base price with the date's markup, rounded to a whole rupee.
func (e *Engine) NightlyPrice(room RoomCategory, date time.Time) int {
	return markedUp(e.schedule.BasePrice(room), e.schedule.Markup(date))
}

func (e *Engine) CurrentPrice(room RoomCategory) int {
	return e.NightlyPrice(room, e.now())
}

// IsPeak reports whether the date carries any markup. Display only.
func (e *Engine) IsPeak(date time.Time) bool {
	return e.schedule.Markup(date) > 0
}

// PeakSeasonPrice is the informational ceiling, derived from PeakReferenceMarkup and not from
// the rule table.
func (e *Engine) PeakSeasonPrice(room RoomCategory) int {
	return markedUp(e.schedule.BasePrice(room), PeakReferenceMarkup)
}

func (e *Engine) RoomPricing(room RoomCategory) RoomPricing {
	now := e.now()

	return RoomPricing{
		Room:            room,
		BasePrice:       e.schedule.BasePrice(room),
		CurrentPrice:    e.NightlyPrice(room, now),
		IsPeakSeason:    e.IsPeak(now),
		PeakSeasonPrice: e.PeakSeasonPrice(room),
	}
}

// Quote prices every night from checkIn up to, not including, checkOut. Each night is resolved on
// its own. A check-out that is not after check-in yields an empty zero-night quote.
func (e *Engine) Quote(room RoomCategory, checkIn, checkOut time.Time) Quote {
	q := Quote{
		Room:      room,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Breakdown: []Night{},
		BasePrice: e.schedule.BasePrice(room),
	}

	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return q
	}

	q.Nights = nights
	q.Breakdown = make([]Night, 0, nights)

	for i := 0; i < nights; i++ {
		date := checkIn.AddDate(0, 0, i)
		markup := e.schedule.Markup(date)
		price := markedUp(q.BasePrice, markup)

		q.Breakdown = append(q.Breakdown, Night{Date: date, Price: price, Peak: markup > 0})
		q.TotalPrice += price

		if markup > 0 {
			q.IsPeakSeason = true
		}
	}

	q.BasePrice = q.Breakdown[0].Price

	return q
}

// Nights counts the nights of a stay: whole days from checkIn to checkOut, with any leftover part
// of a day counted as a night. It works on Unix seconds so spans of any length stay exact.
func Nights(checkIn, checkOut time.Time) int {
	secs := checkOut.Unix() - checkIn.Unix()
	nanos := checkOut.Nanosecond() - checkIn.Nanosecond()

	if nanos < 0 {
		secs--
		nanos += int(time.Second)
	}

	if secs < 0 || (secs == 0 && nanos == 0) {
		return 0
	}

	nights := secs / secondsPerDay
	if secs%secondsPerDay != 0 || nanos > 0 {
		nights++
	}

	return int(nights)
}

func markedUp(base int, markup float64) int {
	return int(math.Round(float64(base) * (1 + markup)))
}
