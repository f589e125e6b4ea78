package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestEngine_NightlyPrice(t *testing.T) {
	e := New(DefaultSchedule())

	tests := []struct {
		name     string
		room     RoomCategory
		date     time.Time
		expected int
	}{
		{"june saturday", Suite, date(2024, time.June, 15), 4725},
		{"june weekday", Suite, date(2025, time.June, 12), 4550},
		{"may gap weekend", Suite, date(2025, time.May, 10), 3500},
		{"may early window friday", Suite, date(2025, time.May, 2), 4025},
		{"may late window saturday", Apartment, date(2025, time.May, 17), 6875},
		{"april window monday", FamilyRoom, date(2025, time.April, 14), 4950},
		{"april before window", FamilyRoom, date(2025, time.April, 9), 4500},
		{"august saturday bonus", Suite, date(2025, time.August, 9), 3850},
		{"august weekday", Suite, date(2025, time.August, 11), 3500},
		{"october flat weekend", FamilyRoom2, date(2025, time.October, 4), 4600},
		{"october flat weekday", FamilyRoom2, date(2025, time.October, 6), 4600},
		{"december weekend", Apartment, date(2025, time.December, 27), 7150},
		{"november standard", Apartment, date(2025, time.November, 15), 5500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.NightlyPrice(tt.room, tt.date))
		})
	}
}

func TestEngine_NightlyPriceMatchesMarkup(t *testing.T) {
	e := New(DefaultSchedule())

	for d := date(2025, time.January, 1); d.Year() == 2025; d = d.AddDate(0, 0, 1) {
		for _, room := range Categories() {
			markup := e.Markup(d)
			expected := markedUp(e.BasePrice(room), markup)
			require.Equal(t, expected, e.NightlyPrice(room, d), "%s on %s", room, d.Format("2006-01-02"))

			if markup == 0 {
				require.Equal(t, e.BasePrice(room), e.NightlyPrice(room, d))
			}
		}
	}
}

func TestEngine_IsPeak(t *testing.T) {
	e := New(DefaultSchedule())

	assert.True(t, e.IsPeak(date(2025, time.June, 15)))
	assert.True(t, e.IsPeak(date(2025, time.August, 10)))
	assert.False(t, e.IsPeak(date(2025, time.August, 11)))
	assert.False(t, e.IsPeak(date(2025, time.May, 10)))
	assert.False(t, e.IsPeak(date(2025, time.March, 14)))
}

func TestEngine_CurrentPriceUsesClock(t *testing.T) {
	now := time.Date(2024, time.June, 15, 18, 30, 0, 0, time.UTC)
	e := New(DefaultSchedule(), WithClock(func() time.Time { return now }))

	assert.Equal(t, 4725, e.CurrentPrice(Suite))

	now = time.Date(2025, time.November, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 3500, e.CurrentPrice(Suite))
}

func TestEngine_PeakSeasonPrice(t *testing.T) {
	e := New(DefaultSchedule())

	assert.Equal(t, 4725, e.PeakSeasonPrice(Suite))
	assert.Equal(t, 7425, e.PeakSeasonPrice(Apartment))
	assert.Equal(t, 6075, e.PeakSeasonPrice(FamilyRoom))
	assert.Equal(t, 5400, e.PeakSeasonPrice(FamilyRoom2))
}

func TestEngine_PeakSeasonPriceIgnoresTable(t *testing.T) {
	s, err := NewSchedule(DefaultBasePrices(), []PeakWindow{
		{Month: time.June, Ranges: []DayRange{{1, 30}}, WeekdayMarkup: 0.05, WeekendMarkup: 0.05},
	}, nil)
	require.NoError(t, err)

	e := New(s)
	assert.Equal(t, 4725, e.PeakSeasonPrice(Suite))
	assert.InDelta(t, 0.05, s.MaxMarkup(), 1e-9)
}

func TestEngine_RoomPricing(t *testing.T) {
	now := time.Date(2025, time.June, 30, 10, 0, 0, 0, time.UTC)
	e := New(DefaultSchedule(), WithClock(func() time.Time { return now }))

	rp := e.RoomPricing(FamilyRoom)
	assert.Equal(t, FamilyRoom, rp.Room)
	assert.Equal(t, 4500, rp.BasePrice)
	assert.Equal(t, 5850, rp.CurrentPrice)
	assert.True(t, rp.IsPeakSeason)
	assert.Equal(t, 6075, rp.PeakSeasonPrice)
}

func TestEngine_Quote(t *testing.T) {
	e := New(DefaultSchedule())

	q := e.Quote(Suite, date(2025, time.June, 29), date(2025, time.July, 2))

	require.Equal(t, 3, q.Nights)
	require.Len(t, q.Breakdown, 3)

	assert.Equal(t, 4725, q.Breakdown[0].Price)
	assert.Equal(t, 4550, q.Breakdown[1].Price)
	assert.Equal(t, 4200, q.Breakdown[2].Price)
	assert.True(t, q.Breakdown[2].Date.Equal(date(2025, time.July, 1)))

	sum := 0
	for i, n := range q.Breakdown {
		assert.Equal(t, e.NightlyPrice(Suite, date(2025, time.June, 29).AddDate(0, 0, i)), n.Price)
		sum += n.Price
	}

	assert.Equal(t, sum, q.TotalPrice)
	assert.Equal(t, 13475, q.TotalPrice)
	assert.True(t, q.IsPeakSeason)
	assert.Equal(t, 4725, q.BasePrice)
}

func TestEngine_QuoteHeadlineIsFirstNight(t *testing.T) {
	e := New(DefaultSchedule())

	// Friday, then an August bonus weekend.
	q := e.Quote(FamilyRoom2, date(2025, time.August, 8), date(2025, time.August, 11))

	require.Equal(t, 3, q.Nights)
	assert.Equal(t, 4000, q.BasePrice)
	assert.Equal(t, []int{4000, 4400, 4400}, prices(q.Breakdown))
	assert.Equal(t, []bool{false, true, true}, peaks(q.Breakdown))
	assert.True(t, q.IsPeakSeason)
	assert.Equal(t, 12800, q.TotalPrice)
}

func TestEngine_QuoteStandardSeason(t *testing.T) {
	e := New(DefaultSchedule())

	q := e.Quote(Apartment, date(2025, time.November, 3), date(2025, time.November, 7))

	assert.Equal(t, 4, q.Nights)
	assert.Equal(t, 22000, q.TotalPrice)
	assert.False(t, q.IsPeakSeason)
	assert.Equal(t, 5500, q.BasePrice)
}

func TestEngine_QuoteDegenerate(t *testing.T) {
	e := New(DefaultSchedule())
	d1 := date(2025, time.June, 10)
	d2 := date(2025, time.June, 15)

	for name, q := range map[string]Quote{
		"same day": e.Quote(Suite, d1, d1),
		"reversed": e.Quote(Suite, d2, d1),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 0, q.Nights)
			assert.Equal(t, 0, q.TotalPrice)
			assert.Empty(t, q.Breakdown)
			assert.NotNil(t, q.Breakdown)
			assert.False(t, q.IsPeakSeason)
			assert.Equal(t, 3500, q.BasePrice)
		})
	}
}

func TestEngine_QuotePartialDayRoundsUp(t *testing.T) {
	e := New(DefaultSchedule())
	checkIn := time.Date(2025, time.November, 3, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, time.November, 4, 11, 0, 0, 0, time.UTC)

	q := e.Quote(Suite, checkIn, checkOut)

	assert.Equal(t, 1, q.Nights)
	assert.Equal(t, 3500, q.TotalPrice)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{"same instant", date(2025, time.June, 1), date(2025, time.June, 1), 0},
		{"reversed", date(2025, time.June, 5), date(2025, time.June, 1), 0},
		{"one nanosecond", date(2025, time.June, 1), date(2025, time.June, 1).Add(time.Nanosecond), 1},
		{"exact days", date(2025, time.June, 29), date(2025, time.July, 2), 3},
		{"day and a bit", date(2025, time.June, 1), date(2025, time.June, 2).Add(time.Second), 2},
		{"sub-second borrow", date(2025, time.June, 1).Add(500 * time.Millisecond), date(2025, time.June, 2), 1},
		{"longer than a Duration", date(1, time.January, 1), date(9999, time.December, 31), 3652058},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestEngine_QuoteSpanBeyondDurationRange(t *testing.T) {
	e := New(DefaultSchedule())

	q := e.Quote(Suite, date(1700, time.January, 1), date(2025, time.January, 1))

	require.Equal(t, 118704, q.Nights)
	require.Len(t, q.Breakdown, q.Nights)
	assert.Equal(t, date(2024, time.December, 31), q.Breakdown[len(q.Breakdown)-1].Date)
}

func TestEngine_Deterministic(t *testing.T) {
	e := New(DefaultSchedule())
	checkIn, checkOut := date(2025, time.May, 14), date(2025, time.May, 20)

	assert.Equal(t, e.Quote(FamilyRoom, checkIn, checkOut), e.Quote(FamilyRoom, checkIn, checkOut))
	assert.Equal(t, e.NightlyPrice(Apartment, checkIn), e.NightlyPrice(Apartment, checkIn))
}

func TestEngine_ConcurrentReaders(t *testing.T) {
	e := New(DefaultSchedule())
	done := make(chan int, 8)

	for i := 0; i < 8; i++ {
		go func() {
			done <- e.Quote(Suite, date(2025, time.June, 29), date(2025, time.July, 2)).TotalPrice
		}()
	}

	for i := 0; i < 8; i++ {
		assert.Equal(t, 13475, <-done)
	}
}

func prices(nights []Night) []int {
	out := make([]int, 0, len(nights))
	for _, n := range nights {
		out = append(out, n.Price)
	}

	return out
}

func peaks(nights []Night) []bool {
	out := make([]bool, 0, len(nights))
	for _, n := range nights {
		out = append(out, n.Peak)
	}

	return out
}
