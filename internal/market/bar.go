package market

import "time"

// Bar is a single daily OHLCV bar. Volume is 0 when the source has none.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Day builds a UTC-midnight date. Bars and as-of lookups all work on
// day granularity, so every date in the system goes through this.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
