package market

import (
	"sort"
	"time"
)

// Series holds the full daily price history for one symbol.
// ⭐ SSOT: 가격 히스토리는 로더가 한 번 만들고 이후 읽기 전용
//
// Bars are deduplicated by date (last write wins) and kept in ascending
// date order no matter how the loader delivered them. The struct is
// immutable after construction; as-of lookups never mutate it.
type Series struct {
	symbol string
	bars   []Bar
}

// NewSeries builds a series from loader output. Input order does not matter.
func NewSeries(symbol string, bars []Bar) *Series {
	byDate := make(map[time.Time]Bar, len(bars))
	for _, b := range bars {
		byDate[b.Date] = b
	}

	sorted := make([]Bar, 0, len(byDate))
	for _, b := range byDate {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	return &Series{symbol: symbol, bars: sorted}
}

// Symbol returns the instrument symbol.
func (s *Series) Symbol() string { return s.symbol }

// Bars returns the ascending bar slice. Callers must not modify it.
func (s *Series) Bars() []Bar { return s.bars }

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.bars) }

// IsEmpty reports whether the series has no bars.
func (s *Series) IsEmpty() bool { return len(s.bars) == 0 }

// FirstDate returns the earliest bar date. Only valid on a non-empty series.
func (s *Series) FirstDate() time.Time { return s.bars[0].Date }

// LastDate returns the latest bar date. Only valid on a non-empty series.
func (s *Series) LastDate() time.Time { return s.bars[len(s.bars)-1].Date }

// CloseOn returns the close for the exact date.
func (s *Series) CloseOn(date time.Time) (float64, bool) {
	i := s.searchDate(date)
	if i < len(s.bars) && s.bars[i].Date.Equal(date) {
		return s.bars[i].Close, true
	}
	return 0, false
}

// CloseOnOrBefore resolves the most recent close at or before date.
// This is the no-lookahead "as-of" lookup every score and return
// computation goes through.
func (s *Series) CloseOnOrBefore(date time.Time) (float64, bool) {
	i := s.searchDate(date)
	if i < len(s.bars) && s.bars[i].Date.Equal(date) {
		return s.bars[i].Close, true
	}
	if i == 0 {
		return 0, false
	}
	return s.bars[i-1].Close, true
}

// BarsUpTo returns the ascending prefix of bars with date <= asOf.
// The returned slice shares backing storage with the series.
func (s *Series) BarsUpTo(asOf time.Time) []Bar {
	i := s.searchDate(asOf)
	if i < len(s.bars) && s.bars[i].Date.Equal(asOf) {
		i++
	}
	return s.bars[:i]
}

// searchDate returns the smallest index whose bar date is >= date.
func (s *Series) searchDate(date time.Time) int {
	return sort.Search(len(s.bars), func(i int) bool {
		return !s.bars[i].Date.Before(date)
	})
}
