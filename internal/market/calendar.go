package market

import (
	"sort"
	"time"
)

// MonthEndTradingDates returns, for every calendar month present in the
// reference series, the latest trading date of that month, ascending.
// The backtester rebalances on these dates.
func MonthEndTradingDates(reference *Series) []time.Time {
	type yearMonth struct {
		year  int
		month time.Month
	}

	lastByMonth := make(map[yearMonth]time.Time)
	for _, b := range reference.Bars() {
		ym := yearMonth{b.Date.Year(), b.Date.Month()}
		if cur, ok := lastByMonth[ym]; !ok || b.Date.After(cur) {
			lastByMonth[ym] = b.Date
		}
	}

	dates := make([]time.Time, 0, len(lastByMonth))
	for _, d := range lastByMonth {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
