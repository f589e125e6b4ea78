package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avstrong/homestay/internal/pricing"
)

// ScheduleConfig is the root of schedule.yaml. Months are 1 (January) to 12 (December).
type ScheduleConfig struct {
	BasePrices   map[string]int        `yaml:"base_prices"`
	WeekendBonus *pricing.WeekendBonus `yaml:"weekend_bonus,omitempty"`
	Windows      []WindowConfig        `yaml:"windows"`
}

type WindowConfig struct {
	Month         int                `yaml:"month"`
	Ranges        []pricing.DayRange `yaml:"ranges"`
	WeekdayMarkup float64            `yaml:"weekday_markup"`
	WeekendMarkup *float64           `yaml:"weekend_markup,omitempty"`
	Markup        *float64           `yaml:"markup,omitempty"` // flat: same markup every day
}

// LoadSchedule returns the built-in schedule when path is empty.
func LoadSchedule(path string) (*pricing.Schedule, error) {
	if path == "" {
		return pricing.DefaultSchedule(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule config: %w", err)
	}

	return ParseSchedule(data)
}

func ParseSchedule(data []byte) (*pricing.Schedule, error) {
	var cfg ScheduleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse schedule config: %w", err)
	}

	return cfg.Build()
}

// Build validates the config and freezes it into a pricing.Schedule.
func (c *ScheduleConfig) Build() (*pricing.Schedule, error) {
	base := pricing.DefaultBasePrices()
	if len(c.BasePrices) > 0 {
		base = make(map[pricing.RoomCategory]int, len(c.BasePrices))

		for key, price := range c.BasePrices {
			room, ok := pricing.ParseRoomCategory(key)
			if !ok {
				return nil, fmt.Errorf("base_prices: unknown room '%s'", key)
			}

			base[room] = price
		}
	}

	windows := make([]pricing.PeakWindow, 0, len(c.Windows))

	for i, w := range c.Windows {
		window := pricing.PeakWindow{
			Month:         time.Month(w.Month),
			Ranges:        w.Ranges,
			WeekdayMarkup: w.WeekdayMarkup,
			WeekendMarkup: w.WeekdayMarkup,
		}

		switch {
		case w.Markup != nil && w.WeekendMarkup != nil:
			return nil, fmt.Errorf("windows[%d]: markup and weekend_markup are mutually exclusive", i)
		case w.Markup != nil:
			window.WeekdayMarkup = *w.Markup
			window.WeekendMarkup = *w.Markup
		case w.WeekendMarkup != nil:
			window.WeekendMarkup = *w.WeekendMarkup
		}

		windows = append(windows, window)
	}

	s, err := pricing.NewSchedule(base, windows, c.WeekendBonus)
	if err != nil {
		return nil, fmt.Errorf("validate schedule config: %w", err)
	}

	return s, nil
}
