// Package indicator holds the stateless numeric functions the technical
// rater is built from. Every function evaluates "as of" a zero-based
// index end into parallel value arrays (index 0 is the earliest bar) and
// reports ok=false when the requested period exceeds available history.
// Callers fold ok=false into a neutral rating instead of erroring.
package indicator

import "math"

// SMA is the arithmetic mean of the last period values ending at end.
func SMA(values []float64, end, period int) (float64, bool) {
	start := end - period + 1
	if start < 0 || end >= len(values) || period <= 0 {
		return 0, false
	}
	sum := 0.0
	for i := start; i <= end; i++ {
		sum += values[i]
	}
	return sum / float64(period), true
}

// EMA seeds with the SMA of the first period values, then applies
// ema = alpha*v + (1-alpha)*ema with alpha = 2/(period+1) up to end.
func EMA(values []float64, end, period int) (float64, bool) {
	if end < period-1 || end >= len(values) || period <= 0 {
		return 0, false
	}
	alpha := 2.0 / (float64(period) + 1.0)
	ema := 0.0
	for i := 0; i < period; i++ {
		ema += values[i]
	}
	ema /= float64(period)
	for i := period; i <= end; i++ {
		ema = alpha*values[i] + (1.0-alpha)*ema
	}
	return ema, true
}

// VWMA is the volume-weighted mean of close over the window.
// Undefined when the window's total volume is zero.
func VWMA(closes, volumes []float64, end, period int) (float64, bool) {
	start := end - period + 1
	if start < 0 || end >= len(closes) {
		return 0, false
	}
	num, den := 0.0, 0.0
	for i := start; i <= end; i++ {
		num += closes[i] * volumes[i]
		den += volumes[i]
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// WMA is the linearly weighted mean, weights 1..period oldest to newest.
func WMA(values []float64, end, period int) (float64, bool) {
	start := end - period + 1
	if start < 0 || end >= len(values) || period <= 0 {
		return 0, false
	}
	num, den := 0.0, 0.0
	w := 1.0
	for i := start; i <= end; i++ {
		num += values[i] * w
		den += w
		w++
	}
	return num / den, true
}

// HMA is the Hull moving average: WMA(sqrt(period)) over a diff series
// where diff = 2*WMA(period/2) - WMA(period) at each of the last
// round(sqrt(period)) indices.
func HMA(values []float64, end, period int) (float64, bool) {
	if period <= 1 {
		return 0, false
	}
	half := period / 2
	sqrtP := int(math.Round(math.Sqrt(float64(period))))
	if sqrtP < 1 {
		sqrtP = 1
	}

	diffStart := end - sqrtP + 1
	if diffStart < 0 {
		return 0, false
	}

	diff := make([]float64, sqrtP)
	for i := 0; i < sqrtP; i++ {
		idx := diffStart + i
		wHalf, okHalf := WMA(values, idx, half)
		wFull, okFull := WMA(values, idx, period)
		if !okHalf || !okFull {
			return 0, false
		}
		diff[i] = 2.0*wHalf - wFull
	}

	return WMA(diff, sqrtP-1, sqrtP)
}

// IchimokuBase is the midpoint of the highest high and lowest low over
// the window (the Kijun-sen baseline).
func IchimokuBase(highs, lows []float64, end, period int) (float64, bool) {
	start := end - period + 1
	if start < 0 || end >= len(highs) {
		return 0, false
	}
	hh := math.Inf(-1)
	ll := math.Inf(1)
	for i := start; i <= end; i++ {
		hh = math.Max(hh, highs[i])
		ll = math.Min(ll, lows[i])
	}
	if math.IsInf(hh, 0) || math.IsInf(ll, 0) {
		return 0, false
	}
	return (hh + ll) / 2.0, true
}
