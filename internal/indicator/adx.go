package indicator

import "math"

// ADXPack bundles the average directional index with its +DI / -DI legs.
type ADXPack struct {
	ADX, PlusDI, MinusDI float64
}

// ADX is Wilder's classic construction: per-bar true range and
// directional movement, Wilder-smoothed sums seeded over the first
// period bars, DX = 100*|+DI - -DI|/(+DI + -DI), the ADX seeded as the
// mean of the next period DX values and then Wilder-smoothed to end.
// Undefined unless more than 2*period bars of history exist.
func ADX(highs, lows, closes []float64, end, period int) (ADXPack, bool) {
	if end < period*2 || end >= len(closes) {
		return ADXPack{}, false
	}

	n := end + 1
	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i := 1; i < n; i++ {
		highLow := highs[i] - lows[i]
		highPrevClose := math.Abs(highs[i] - closes[i-1])
		lowPrevClose := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(highLow, math.Max(highPrevClose, lowPrevClose))

		upMove := highs[i] - highs[i-1]
		downMove := lows[i-1] - lows[i]
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	var trSm, plusSm, minusSm float64
	for i := 1; i <= period; i++ {
		trSm += tr[i]
		plusSm += plusDM[i]
		minusSm += minusDM[i]
	}

	plusDI := 100.0 * (plusSm / trSm)
	minusDI := 100.0 * (minusSm / trSm)

	// Seed ADX as the mean of the DX values over bars period+1 .. 2*period.
	adx := 0.0
	dxCount := 0
	for i := period + 1; i <= period*2; i++ {
		trSm = trSm - trSm/float64(period) + tr[i]
		plusSm = plusSm - plusSm/float64(period) + plusDM[i]
		minusSm = minusSm - minusSm/float64(period) + minusDM[i]

		pdi := 100.0 * (plusSm / trSm)
		mdi := 100.0 * (minusSm / trSm)
		adx += 100.0 * math.Abs(pdi-mdi) / (pdi + mdi)
		dxCount++
	}
	adx /= float64(dxCount)

	for i := period*2 + 1; i <= end; i++ {
		trSm = trSm - trSm/float64(period) + tr[i]
		plusSm = plusSm - plusSm/float64(period) + plusDM[i]
		minusSm = minusSm - minusSm/float64(period) + minusDM[i]

		plusDI = 100.0 * (plusSm / trSm)
		minusDI = 100.0 * (minusSm / trSm)
		dx := 100.0 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
		adx = (adx*float64(period-1) + dx) / float64(period)
	}

	return ADXPack{ADX: adx, PlusDI: plusDI, MinusDI: minusDI}, true
}
