package pricing

import "time"

type Night struct {
	Date  time.Time `json:"date"`
	Price int       `json:"price"`
	Peak  bool      `json:"peak"`
}

// Quote prices a stay over [CheckIn, CheckOut).
//
// BasePrice is the headline rate: the first night's price, which already includes that night's
// markup. Nights can differ, so show Breakdown when rates are mixed. A zero-night quote carries the
// room's unmarked base price instead.
type Quote struct {
	Room         RoomCategory `json:"room"`
	CheckIn      time.Time    `json:"check_in"`
	CheckOut     time.Time    `json:"check_out"`
	Nights       int          `json:"nights"`
	Breakdown    []Night      `json:"breakdown"`
	TotalPrice   int          `json:"total_price"`
	IsPeakSeason bool         `json:"is_peak_season"`
	BasePrice    int          `json:"base_price"`
}

type RoomPricing struct {
	Room            RoomCategory `json:"room"`
	BasePrice       int          `json:"base_price"`
	CurrentPrice    int          `json:"current_price"`
	IsPeakSeason    bool         `json:"is_peak_season"`
	PeakSeasonPrice int          `json:"peak_season_price"`
}
