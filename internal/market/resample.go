package market

import (
	"fmt"
	"sort"
	"time"
)

// Period selects the resampling bucket size.
type Period int

const (
	Weekly Period = iota // ISO week buckets
	Monthly
)

// Resample aggregates daily bars into weekly or monthly bars, using only
// bars dated at or before asOf. Each bucket becomes one synthetic bar:
// open from the first bar, close from the last, high/low are the extremes,
// volume is the sum, and the bar is dated on the bucket's last trading day.
//
// Pure function of its input; empty input yields an empty result.
func Resample(daily []Bar, period Period, asOf time.Time) []Bar {
	buckets := make(map[string][]Bar)
	for _, b := range daily {
		if b.Date.After(asOf) {
			continue
		}
		key := bucketKey(b.Date, period)
		buckets[key] = append(buckets[key], b)
	}
	if len(buckets) == 0 {
		return nil
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Bar, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		sort.Slice(bucket, func(i, j int) bool {
			return bucket[i].Date.Before(bucket[j].Date)
		})

		agg := Bar{
			Date:  bucket[len(bucket)-1].Date,
			Open:  bucket[0].Open,
			Close: bucket[len(bucket)-1].Close,
			High:  bucket[0].High,
			Low:   bucket[0].Low,
		}
		for _, b := range bucket {
			if b.High > agg.High {
				agg.High = b.High
			}
			if b.Low < agg.Low {
				agg.Low = b.Low
			}
			agg.Volume += b.Volume
		}
		out = append(out, agg)
	}
	return out
}

// bucketKey yields a sortable key per ISO week or calendar month.
func bucketKey(d time.Time, period Period) string {
	switch period {
	case Weekly:
		year, week := d.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
	}
}
