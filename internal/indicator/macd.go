package indicator

import "math"

// MACDPack is the MACD line with its signal line. The MACD line is
// defined as soon as the slow EMA is; the signal needs signalPeriod
// further bars and may be undefined on its own.
type MACDPack struct {
	MACD, Signal float64
	HasSignal    bool
}

// MACD computes EMA(fast)-EMA(slow) with both EMAs seeded from their SMA
// and the fast leg advanced to index slow-1 so the two stay aligned. The
// signal seeds as the SMA of the first signalPeriod MACD values and is
// EMA-smoothed afterwards.
func MACD(closes []float64, end, fast, slow, signalPeriod int) (MACDPack, bool) {
	if end < slow-1 || end >= len(closes) {
		return MACDPack{}, false
	}

	alphaFast := 2.0 / (float64(fast) + 1.0)
	alphaSlow := 2.0 / (float64(slow) + 1.0)

	emaFast, okFast := SMA(closes, fast-1, fast)
	emaSlow, okSlow := SMA(closes, slow-1, slow)
	if !okFast || !okSlow {
		return MACDPack{}, false
	}
	for i := fast; i <= slow-1; i++ {
		emaFast = alphaFast*closes[i] + (1.0-alphaFast)*emaFast
	}

	macdStart := slow - 1

	// Not enough room for the signal seed: run both EMAs to end and
	// report the MACD line alone.
	if end < macdStart+signalPeriod-1 {
		for i := slow; i <= end; i++ {
			emaFast = alphaFast*closes[i] + (1.0-alphaFast)*emaFast
			emaSlow = alphaSlow*closes[i] + (1.0-alphaSlow)*emaSlow
		}
		return MACDPack{MACD: emaFast - emaSlow}, true
	}

	alphaSignal := 2.0 / (float64(signalPeriod) + 1.0)

	macd := emaFast - emaSlow
	seedSum := macd
	for i := macdStart + 1; i <= macdStart+signalPeriod-1; i++ {
		emaFast = alphaFast*closes[i] + (1.0-alphaFast)*emaFast
		emaSlow = alphaSlow*closes[i] + (1.0-alphaSlow)*emaSlow
		macd = emaFast - emaSlow
		seedSum += macd
	}
	signal := seedSum / float64(signalPeriod)

	for i := macdStart + signalPeriod; i <= end; i++ {
		emaFast = alphaFast*closes[i] + (1.0-alphaFast)*emaFast
		emaSlow = alphaSlow*closes[i] + (1.0-alphaSlow)*emaSlow
		macd = emaFast - emaSlow
		signal = alphaSignal*macd + (1.0-alphaSignal)*signal
	}

	return MACDPack{MACD: macd, Signal: signal, HasSignal: true}, true
}

// StochasticRSI applies the stochastic oscillator to a Wilder RSI series
// instead of price. %K is optionally smoothed with a simple average of
// width kSmooth; %D is always the 3-period mean of raw %K values.
func StochasticRSI(closes []float64, end, rsiPeriod, stochPeriod, kSmooth int) StochKD {
	if end < rsiPeriod+stochPeriod || end >= len(closes) {
		return StochKD{}
	}

	rsi := make([]float64, end+1)
	for i := range rsi {
		rsi[i] = math.NaN()
	}

	gain, loss := 0.0, 0.0
	for i := 1; i <= rsiPeriod; i++ {
		ch := closes[i] - closes[i-1]
		if ch >= 0 {
			gain += ch
		} else {
			loss -= ch
		}
	}
	gain /= float64(rsiPeriod)
	loss /= float64(rsiPeriod)
	rsi[rsiPeriod] = rsiFromAverages(gain, loss)

	for i := rsiPeriod + 1; i <= end; i++ {
		ch := closes[i] - closes[i-1]
		g, l := 0.0, 0.0
		if ch > 0 {
			g = ch
		} else if ch < 0 {
			l = -ch
		}
		gain = (gain*float64(rsiPeriod-1) + g) / float64(rsiPeriod)
		loss = (loss*float64(rsiPeriod-1) + l) / float64(rsiPeriod)
		rsi[i] = rsiFromAverages(gain, loss)
	}

	k, hasK := stochFromSeries(rsi, end, stochPeriod)
	out := StochKD{K: k, HasK: hasK}

	const dPeriod = 3
	startD := end - dPeriod + 1
	if startD >= 0 {
		sum := 0.0
		count := 0
		for i := startD; i <= end; i++ {
			ki, ok := stochFromSeries(rsi, i, stochPeriod)
			if !ok {
				continue
			}
			sum += ki
			count++
		}
		if count == dPeriod {
			out.D = sum / float64(dPeriod)
			out.HasD = true
		}
	}

	if kSmooth > 1 && hasK {
		ks := end - kSmooth + 1
		if ks >= 0 {
			sum := 0.0
			count := 0
			for i := ks; i <= end; i++ {
				ki, ok := stochFromSeries(rsi, i, stochPeriod)
				if !ok {
					continue
				}
				sum += ki
				count++
			}
			if count == kSmooth {
				out.K = sum / float64(kSmooth)
			}
		}
	}

	return out
}

func rsiFromAverages(gain, loss float64) float64 {
	if loss == 0 {
		return 100.0
	}
	return 100.0 - 100.0/(1.0+gain/loss)
}

// stochFromSeries is raw %K over a series that may hold NaN gaps; any
// NaN inside the window makes the value undefined.
func stochFromSeries(series []float64, end, period int) (float64, bool) {
	start := end - period + 1
	if start < 0 {
		return 0, false
	}
	min := math.Inf(1)
	max := math.Inf(-1)
	for i := start; i <= end; i++ {
		v := series[i]
		if math.IsNaN(v) {
			return 0, false
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	denom := max - min
	if denom == 0 {
		return 0, true
	}
	return 100.0 * (series[end] - min) / denom, true
}
