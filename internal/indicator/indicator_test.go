package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = float64(i + 1)
	}
	return v
}

func flat(n int, value float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = value
	}
	return v
}

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	got, ok := SMA(closes, 4, 3)
	require.True(t, ok)
	assert.InDelta(t, 4.0, got, 1e-12) // (3+4+5)/3

	got, ok = SMA(closes, 2, 3)
	require.True(t, ok)
	assert.InDelta(t, 2.0, got, 1e-12)

	_, ok = SMA(closes, 1, 3)
	assert.False(t, ok, "needs period bars up to and including end")
}

func TestEMA(t *testing.T) {
	// seed = SMA(1,2,3) = 2; alpha = 0.5; ema = 0.5*4 + 0.5*2 = 3
	got, ok := EMA([]float64{1, 2, 3, 4}, 3, 3)
	require.True(t, ok)
	assert.InDelta(t, 3.0, got, 1e-12)

	// at end == period-1 the EMA equals its SMA seed
	got, ok = EMA([]float64{1, 2, 3, 4}, 2, 3)
	require.True(t, ok)
	assert.InDelta(t, 2.0, got, 1e-12)

	_, ok = EMA([]float64{1, 2}, 1, 3)
	assert.False(t, ok)
}

func TestWMA(t *testing.T) {
	// (1*1 + 2*2 + 3*3) / 6 = 14/6
	got, ok := WMA([]float64{1, 2, 3}, 2, 3)
	require.True(t, ok)
	assert.InDelta(t, 14.0/6.0, got, 1e-12)
}

func TestVWMA(t *testing.T) {
	closes := []float64{2, 4}
	volumes := []float64{1, 3}

	got, ok := VWMA(closes, volumes, 1, 2)
	require.True(t, ok)
	assert.InDelta(t, 3.5, got, 1e-12) // (2*1 + 4*3) / 4

	_, ok = VWMA(closes, []float64{0, 0}, 1, 2)
	assert.False(t, ok, "zero total volume is undefined")
}

func TestHMA_LinearRamp(t *testing.T) {
	// On a perfect ramp the Hull MA lands exactly on the last value:
	// every WMA is linear in the index and the 2*WMA(half)-WMA(full)
	// correction cancels the lag.
	got, ok := HMA(ramp(6), 5, 4)
	require.True(t, ok)
	assert.InDelta(t, 6.0, got, 1e-9)

	_, ok = HMA(ramp(3), 2, 4)
	assert.False(t, ok)
}

func TestIchimokuBase(t *testing.T) {
	highs := []float64{5, 9, 7}
	lows := []float64{1, 3, 2}

	got, ok := IchimokuBase(highs, lows, 2, 3)
	require.True(t, ok)
	assert.InDelta(t, 5.0, got, 1e-12) // (9+1)/2
}

func TestMomentum(t *testing.T) {
	got, ok := Momentum([]float64{10, 12, 11, 15}, 3, 2)
	require.True(t, ok)
	assert.InDelta(t, 3.0, got, 1e-12) // 15 - 12

	_, ok = Momentum([]float64{10, 12}, 1, 2)
	assert.False(t, ok)
}

func TestRSI(t *testing.T) {
	// deltas: +1 +1 -1 +1, period 2.
	// seed: gain=1, loss=0
	// i=3 (ch=-1): gain=0.5 loss=0.5
	// i=4 (ch=+1): gain=0.75 loss=0.25 -> RS=3 -> RSI=75
	got, ok := RSI([]float64{1, 2, 3, 2, 3}, 4, 2)
	require.True(t, ok)
	assert.InDelta(t, 75.0, got, 1e-12)

	// all gains -> loss 0 -> 100
	got, ok = RSI(ramp(10), 9, 5)
	require.True(t, ok)
	assert.Equal(t, 100.0, got)

	_, ok = RSI(ramp(3), 2, 3)
	assert.False(t, ok, "needs period deltas, i.e. period+1 bars")
}

func TestRSI_Bounds(t *testing.T) {
	closes := []float64{10, 11, 9, 12, 8, 13, 7, 14, 6, 15}
	for end := 5; end < len(closes); end++ {
		got, ok := RSI(closes, end, 5)
		require.True(t, ok)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestStochastic(t *testing.T) {
	highs := []float64{10, 12, 14, 14}
	lows := []float64{8, 9, 10, 11}
	closes := []float64{9, 11, 13, 12}

	// %K over last 3: HH=14 LL=9, close=12 -> 100*3/5 = 60
	st := Stochastic(highs, lows, closes, 3, 3, 2)
	require.True(t, st.HasK)
	assert.InDelta(t, 60.0, st.K, 1e-12)

	// %D = mean of K@2 and K@3; K@2: HH=14 LL=8 close=13 -> 500/6
	require.True(t, st.HasD)
	assert.InDelta(t, (60.0+500.0/6.0)/2.0, st.D, 1e-9)
}

func TestStochastic_FlatRangeIsZero(t *testing.T) {
	v := flat(5, 7)
	st := Stochastic(v, v, v, 4, 3, 3)
	require.True(t, st.HasK)
	assert.Equal(t, 0.0, st.K)
}

func TestStochastic_DNeedsFullWindow(t *testing.T) {
	highs := []float64{10, 12, 14}
	lows := []float64{8, 9, 10}
	closes := []float64{9, 11, 13}

	// K defined at end=2 only; D over 3 values cannot complete.
	st := Stochastic(highs, lows, closes, 2, 3, 3)
	assert.True(t, st.HasK)
	assert.False(t, st.HasD)
}

func TestCCI(t *testing.T) {
	v := flat(6, 5)
	got, ok := CCI(v, v, v, 5, 4)
	require.True(t, ok)
	assert.Equal(t, 0.0, got, "zero deviation folds to 0")

	highs := []float64{2, 3, 4}
	lows := []float64{0, 1, 2}
	closes := []float64{1, 2, 3}
	// tp = 1,2,3; sma=2; md=(1+0+1)/3=2/3; cci=(3-2)/(0.015*2/3)=100
	got, ok = CCI(highs, lows, closes, 2, 3)
	require.True(t, ok)
	assert.InDelta(t, 100.0, got, 1e-9)
}

func TestWilliamsR(t *testing.T) {
	highs := []float64{10, 12, 14}
	lows := []float64{8, 9, 10}
	closes := []float64{9, 11, 13}

	// -100*(14-13)/(14-8) = -100/6
	got, ok := WilliamsR(highs, lows, closes, 2, 3)
	require.True(t, ok)
	assert.InDelta(t, -100.0/6.0, got, 1e-9)

	v := flat(3, 5)
	got, ok = WilliamsR(v, v, v, 2, 3)
	require.True(t, ok)
	assert.Equal(t, 0.0, got)
}

func TestAwesomeOscillator(t *testing.T) {
	_, ok := AwesomeOscillator(ramp(20), ramp(20), 19)
	assert.False(t, ok, "needs 34 bars")

	highs := ramp(40)
	lows := ramp(40)
	// median = ramp; SMA5 > SMA34 on a rising ramp
	got, ok := AwesomeOscillator(highs, lows, 39)
	require.True(t, ok)
	assert.Greater(t, got, 0.0)
}

func TestBullBearPower(t *testing.T) {
	closes := []float64{1, 2, 3, 4}
	highs := []float64{2, 3, 4, 5}
	lows := []float64{0, 1, 2, 3}

	// EMA(3)@3 = 3 (see TestEMA); bull = 5-3 = 2, bear = 3-3 = 0
	bb, ok := BullBearPower(highs, lows, closes, 3, 3)
	require.True(t, ok)
	assert.InDelta(t, 2.0, bb.Bull, 1e-12)
	assert.InDelta(t, 0.0, bb.Bear, 1e-12)
}

func TestUltimateOscillator(t *testing.T) {
	_, ok := UltimateOscillator(ramp(5), ramp(5), ramp(5), 4, 1, 2, 4)
	assert.True(t, ok)

	_, ok = UltimateOscillator(ramp(4), ramp(4), ramp(4), 3, 1, 2, 4)
	assert.False(t, ok, "needs p3+1 bars")

	// On a rising ramp with high=low=close, bp = c[i]-c[i-1] = 1 and
	// tr = 1 per bar, so every avg is 1 and UO = 100.
	got, ok := UltimateOscillator(ramp(10), ramp(10), ramp(10), 9, 2, 3, 5)
	require.True(t, ok)
	assert.InDelta(t, 100.0, got, 1e-9)
}

func TestADX(t *testing.T) {
	n := 40
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		closes[i] = float64(10 + i)
		highs[i] = closes[i] + 0.5
		lows[i] = closes[i] - 0.5
	}

	_, ok := ADX(highs, lows, closes, 27, 14)
	assert.False(t, ok, "needs more than 2*period bars")

	pack, ok := ADX(highs, lows, closes, n-1, 14)
	require.True(t, ok)
	assert.Greater(t, pack.PlusDI, pack.MinusDI, "uptrend must show +DI dominance")
	assert.GreaterOrEqual(t, pack.ADX, 0.0)
	assert.LessOrEqual(t, pack.ADX, 100.0)
}

func TestMACD(t *testing.T) {
	closes := ramp(60)

	pack, ok := MACD(closes, 59, 12, 26, 9)
	require.True(t, ok)
	assert.True(t, pack.HasSignal)
	assert.Greater(t, pack.MACD, 0.0, "fast EMA leads on a rising ramp")

	// Enough for the MACD line but not the signal seed.
	pack, ok = MACD(closes, 27, 12, 26, 9)
	require.True(t, ok)
	assert.False(t, pack.HasSignal)

	_, ok = MACD(closes, 24, 12, 26, 9)
	assert.False(t, ok)
}

func TestStochasticRSI(t *testing.T) {
	st := StochasticRSI(ramp(20), 10, 14, 14, 3)
	assert.False(t, st.HasK, "needs rsiPeriod+stochPeriod+1 bars")

	// Strictly rising closes: RSI is pinned at 100, the RSI range is 0,
	// so raw %K folds to 0 everywhere.
	st = StochasticRSI(ramp(40), 39, 14, 14, 3)
	require.True(t, st.HasK)
	assert.Equal(t, 0.0, st.K)
	require.True(t, st.HasD)
	assert.Equal(t, 0.0, st.D)
}
