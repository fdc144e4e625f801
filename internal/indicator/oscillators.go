package indicator

import "math"

// Momentum is close[end] - close[end-period].
func Momentum(values []float64, end, period int) (float64, bool) {
	idx := end - period
	if idx < 0 || end >= len(values) {
		return 0, false
	}
	return values[end] - values[idx], true
}

// RSI is Wilder's relative strength index. The average gain/loss is
// seeded from the first period deltas, then smoothed with
// avg = (avg*(period-1) + new) / period. Returns 100 when the smoothed
// loss is zero.
func RSI(values []float64, end, period int) (float64, bool) {
	if end < period || end >= len(values) {
		return 0, false
	}

	gain, loss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		ch := values[i] - values[i-1]
		if ch >= 0 {
			gain += ch
		} else {
			loss -= ch
		}
	}
	gain /= float64(period)
	loss /= float64(period)

	for i := period + 1; i <= end; i++ {
		ch := values[i] - values[i-1]
		g, l := 0.0, 0.0
		if ch > 0 {
			g = ch
		} else if ch < 0 {
			l = -ch
		}
		gain = (gain*float64(period-1) + g) / float64(period)
		loss = (loss*float64(period-1) + l) / float64(period)
	}

	if loss == 0 {
		return 100.0, true
	}
	rs := gain / loss
	return 100.0 - 100.0/(1.0+rs), true
}

// StochKD carries the %K / %D pair; either leg may be undefined on its own.
type StochKD struct {
	K, D       float64
	HasK, HasD bool
}

// Stochastic computes %K over the kPeriod window at end, plus %D as the
// simple mean of the last dPeriod %K values. %D is only defined when
// exactly dPeriod valid %K values exist.
func Stochastic(highs, lows, closes []float64, end, kPeriod, dPeriod int) StochKD {
	k, ok := stochK(highs, lows, closes, end, kPeriod)
	if !ok {
		return StochKD{}
	}

	out := StochKD{K: k, HasK: true}

	startD := end - dPeriod + 1
	if startD < 0 {
		return out
	}
	sum := 0.0
	count := 0
	for i := startD; i <= end; i++ {
		ki, okI := stochK(highs, lows, closes, i, kPeriod)
		if !okI {
			continue
		}
		sum += ki
		count++
	}
	if count == dPeriod {
		out.D = sum / float64(dPeriod)
		out.HasD = true
	}
	return out
}

// stochK is raw %K at end: 100*(close-LL)/(HH-LL), 0 when the range is 0.
func stochK(highs, lows, closes []float64, end, period int) (float64, bool) {
	start := end - period + 1
	if start < 0 || end >= len(closes) {
		return 0, false
	}
	hh := math.Inf(-1)
	ll := math.Inf(1)
	for i := start; i <= end; i++ {
		hh = math.Max(hh, highs[i])
		ll = math.Min(ll, lows[i])
	}
	denom := hh - ll
	if denom == 0 {
		return 0, true
	}
	return 100.0 * (closes[end] - ll) / denom, true
}

// CCI is (tp - SMA(tp)) / (0.015 * mean absolute deviation) on typical
// price (H+L+C)/3, returning 0 when the deviation is zero.
func CCI(highs, lows, closes []float64, end, period int) (float64, bool) {
	start := end - period + 1
	if start < 0 || end >= len(closes) {
		return 0, false
	}

	tp := make([]float64, period)
	sum := 0.0
	for i := 0; i < period; i++ {
		idx := start + i
		tp[i] = (highs[idx] + lows[idx] + closes[idx]) / 3.0
		sum += tp[i]
	}
	smaTp := sum / float64(period)

	md := 0.0
	for _, v := range tp {
		md += math.Abs(v - smaTp)
	}
	md /= float64(period)
	if md == 0 {
		return 0, true
	}

	tpEnd := (highs[end] + lows[end] + closes[end]) / 3.0
	return (tpEnd - smaTp) / (0.015 * md), true
}

// AwesomeOscillator is SMA(median price, 5) - SMA(median price, 34).
func AwesomeOscillator(highs, lows []float64, end int) (float64, bool) {
	if end >= len(highs) {
		return 0, false
	}
	median := make([]float64, end+1)
	for i := 0; i <= end; i++ {
		median[i] = (highs[i] + lows[i]) / 2.0
	}
	sma5, ok5 := SMA(median, end, 5)
	sma34, ok34 := SMA(median, end, 34)
	if !ok5 || !ok34 {
		return 0, false
	}
	return sma5 - sma34, true
}

// WilliamsR is -100*(HH-close)/(HH-LL) over the window, 0 on a flat range.
func WilliamsR(highs, lows, closes []float64, end, period int) (float64, bool) {
	start := end - period + 1
	if start < 0 || end >= len(closes) {
		return 0, false
	}
	hh := math.Inf(-1)
	ll := math.Inf(1)
	for i := start; i <= end; i++ {
		hh = math.Max(hh, highs[i])
		ll = math.Min(ll, lows[i])
	}
	denom := hh - ll
	if denom == 0 {
		return 0, true
	}
	return -100.0 * (hh - closes[end]) / denom, true
}

// BullBear is the Elder-ray bull/bear power pair around an EMA.
type BullBear struct {
	Bull, Bear float64
}

// BullBearPower returns high-EMA and low-EMA at end.
func BullBearPower(highs, lows, closes []float64, end, emaPeriod int) (BullBear, bool) {
	ema, ok := EMA(closes, end, emaPeriod)
	if !ok {
		return BullBear{}, false
	}
	return BullBear{Bull: highs[end] - ema, Bear: lows[end] - ema}, true
}

// UltimateOscillator combines buying-pressure/true-range ratios over
// three nested windows p1<p2<p3 ending at end, weighted 4/2/1.
// Undefined when fewer than p3+1 bars exist or any true-range sum is 0.
func UltimateOscillator(highs, lows, closes []float64, end, p1, p2, p3 int) (float64, bool) {
	if end < p3 || end >= len(closes) {
		return 0, false
	}

	var sumBP1, sumTR1, sumBP2, sumTR2, sumBP3, sumTR3 float64
	for i := end - p3 + 1; i <= end; i++ {
		prevClose := closes[i-1]
		bp := closes[i] - math.Min(lows[i], prevClose)
		tr := math.Max(highs[i], prevClose) - math.Min(lows[i], prevClose)

		if i > end-p1 {
			sumBP1 += bp
			sumTR1 += tr
		}
		if i > end-p2 {
			sumBP2 += bp
			sumTR2 += tr
		}
		sumBP3 += bp
		sumTR3 += tr
	}

	if sumTR1 == 0 || sumTR2 == 0 || sumTR3 == 0 {
		return 0, false
	}
	avg1 := sumBP1 / sumTR1
	avg2 := sumBP2 / sumTR2
	avg3 := sumBP3 / sumTR3
	return 100.0 * (4*avg1 + 2*avg2 + avg3) / 7.0, true
}
