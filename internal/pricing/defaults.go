package pricing

import "time"

// PeakReferenceMarkup backs the "up to" figure shown to guests. It is a business constant kept
// apart from the rule table; update it together with the table's highest markup.
const PeakReferenceMarkup = 0.35

func DefaultBasePrices() map[RoomCategory]int {
	return map[RoomCategory]int{
		Suite:       3500,
		Apartment:   5500,
		FamilyRoom:  4500,
		FamilyRoom2: 4000,
	}
}

func DefaultWindows() []PeakWindow {
	return []PeakWindow{
		{Month: time.January, Ranges: []DayRange{{1, 2}}, WeekdayMarkup: 0.20, WeekendMarkup: 0.20},
		{Month: time.April, Ranges: []DayRange{{10, 30}}, WeekdayMarkup: 0.10, WeekendMarkup: 0.15},
		{Month: time.May, Ranges: []DayRange{{1, 3}}, WeekdayMarkup: 0.15, WeekendMarkup: 0.20},
		{Month: time.May, Ranges: []DayRange{{16, 31}}, WeekdayMarkup: 0.20, WeekendMarkup: 0.25},
		{Month: time.June, Ranges: []DayRange{{1, 30}}, WeekdayMarkup: 0.30, WeekendMarkup: 0.35},
		{Month: time.July, Ranges: []DayRange{{1, 10}}, WeekdayMarkup: 0.20, WeekendMarkup: 0.25},
		{Month: time.October, Ranges: []DayRange{{1, 12}}, WeekdayMarkup: 0.15, WeekendMarkup: 0.15},
		{Month: time.December, Ranges: []DayRange{{20, 31}}, WeekdayMarkup: 0.20, WeekendMarkup: 0.30},
	}
}

func DefaultWeekendBonus() *WeekendBonus {
	return &WeekendBonus{Month: time.August, Markup: 0.10}
}

// DefaultSchedule is the rate table the homestay publishes.
func DefaultSchedule() *Schedule {
	s, err := NewSchedule(DefaultBasePrices(), DefaultWindows(), DefaultWeekendBonus())
	if err != nil {
		panic(err)
	}

	return s
}
