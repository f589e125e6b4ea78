package pricing

import (
	"fmt"
	"hash/fnv"
	"time"
)

// DayRange is an inclusive day-of-month interval.
type DayRange struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

func (r DayRange) contains(day int) bool {
	return day >= r.Start && day <= r.End
}

// PeakWindow marks up the listed days of a month, every year.
type PeakWindow struct {
	Month         time.Month `yaml:"month" json:"month"`
	Ranges        []DayRange `yaml:"ranges" json:"ranges"`
	WeekdayMarkup float64    `yaml:"weekday_markup" json:"weekday_markup"`
	WeekendMarkup float64    `yaml:"weekend_markup" json:"weekend_markup"`
}

func (w PeakWindow) matches(month time.Month, day int) bool {
	if w.Month != month {
		return false
	}

	for _, r := range w.Ranges {
		if r.contains(day) {
			return true
		}
	}

	return false
}

// WeekendBonus marks up every Saturday and Sunday of one month.
type WeekendBonus struct {
	Month  time.Month `yaml:"month" json:"month"`
	Markup float64    `yaml:"markup" json:"markup"`
}

// Schedule is the immutable rate table: base prices per room and the seasonal markup rules.
// Build it with NewSchedule; it is safe for concurrent use.
type Schedule struct {
	basePrices map[RoomCategory]int
	windows    []PeakWindow
	bonus      *WeekendBonus
}

// NewSchedule validates and copies its inputs. A nil bonus disables the weekend bonus month.
func NewSchedule(basePrices map[RoomCategory]int, windows []PeakWindow, bonus *WeekendBonus) (*Schedule, error) {
	verr := newScheduleError()

	for _, c := range Categories() {
		price, ok := basePrices[c]
		if !ok {
			verr.add("base price for %s is missing", c)

			continue
		}

		if price <= 0 {
			verr.add("base price for %s must be positive, got %d", c, price)
		}
	}

	for c := range basePrices {
		if !c.Valid() {
			verr.add("base price for unknown room %v", c)
		}
	}

	for i, w := range windows {
		validateWindow(verr, i, w)
	}

	if bonus != nil {
		if bonus.Month < time.January || bonus.Month > time.December {
			verr.add("weekend bonus: invalid month %d", int(bonus.Month))
		}

		if !validMarkup(bonus.Markup) {
			verr.add("weekend bonus: markup %v out of range [0, 1)", bonus.Markup)
		}
	}

	if verr.count() > 0 {
		return nil, verr
	}

	s := &Schedule{
		basePrices: make(map[RoomCategory]int, len(basePrices)),
		windows:    make([]PeakWindow, 0, len(windows)),
	}

	for c, price := range basePrices {
		s.basePrices[c] = price
	}

	for _, w := range windows {
		w.Ranges = append([]DayRange(nil), w.Ranges...)
		s.windows = append(s.windows, w)
	}

	if bonus != nil {
		b := *bonus
		s.bonus = &b
	}

	return s, nil
}

func validateWindow(verr *ScheduleError, i int, w PeakWindow) {
	if w.Month < time.January || w.Month > time.December {
		verr.add("window[%d]: invalid month %d", i, int(w.Month))
	}

	if len(w.Ranges) == 0 {
		verr.add("window[%d]: at least one day range is required", i)
	}

	for j, r := range w.Ranges {
		if r.Start < 1 || r.End > 31 || r.Start > r.End {
			verr.add("window[%d].ranges[%d]: invalid day range %d-%d", i, j, r.Start, r.End)
		}
	}

	if !validMarkup(w.WeekdayMarkup) {
		verr.add("window[%d]: weekday markup %v out of range [0, 1)", i, w.WeekdayMarkup)
	}

	if !validMarkup(w.WeekendMarkup) {
		verr.add("window[%d]: weekend markup %v out of range [0, 1)", i, w.WeekendMarkup)
	}
}

func validMarkup(m float64) bool {
	return m >= 0 && m < 1
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// BasePrice returns the unmarked nightly price of a room, or 0 for an unknown category.
func (s *Schedule) BasePrice(c RoomCategory) int {
	return s.basePrices[c]
}

// Markup resolves the fractional surcharge for a calendar date. The year is never consulted.
//
// The weekend bonus month wins over the table. Otherwise the first window matching the month and
// day applies; a date outside every window has no markup.
func (s *Schedule) Markup(date time.Time) float64 {
	month, day := date.Month(), date.Day()
	weekend := isWeekend(date.Weekday())

	if s.bonus != nil && weekend && month == s.bonus.Month {
		return s.bonus.Markup
	}

	for _, w := range s.windows {
		if !w.matches(month, day) {
			continue
		}

		if weekend {
			return w.WeekendMarkup
		}

		return w.WeekdayMarkup
	}

	return 0
}

// Windows returns a copy of the rule table in precedence order.
func (s *Schedule) Windows() []PeakWindow {
	out := make([]PeakWindow, 0, len(s.windows))
	for _, w := range s.windows {
		w.Ranges = append([]DayRange(nil), w.Ranges...)
		out = append(out, w)
	}

	return out
}

// Bonus returns the weekend bonus rule, if any.
func (s *Schedule) Bonus() (WeekendBonus, bool) {
	if s.bonus == nil {
		return WeekendBonus{}, false
	}

	return *s.bonus, true
}

// MaxMarkup is the highest markup any date can receive under this schedule.
func (s *Schedule) MaxMarkup() float64 {
	var highest float64

	for _, w := range s.windows {
		highest = max(highest, w.WeekdayMarkup, w.WeekendMarkup)
	}

	if s.bonus != nil {
		highest = max(highest, s.bonus.Markup)
	}

	return highest
}

// Fingerprint identifies the table contents; equal schedules share a fingerprint.
func (s *Schedule) Fingerprint() string {
	h := fnv.New64a()

	for _, c := range Categories() {
		fmt.Fprintf(h, "base:%s=%d;", c, s.basePrices[c])
	}

	for _, w := range s.windows {
		fmt.Fprintf(h, "win:%d:%v:%v:%v;", int(w.Month), w.Ranges, w.WeekdayMarkup, w.WeekendMarkup)
	}

	if s.bonus != nil {
		fmt.Fprintf(h, "bonus:%d:%v;", int(s.bonus.Month), s.bonus.Markup)
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
