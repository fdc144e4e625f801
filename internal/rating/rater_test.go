package rating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rotation/internal/market"
)

func syntheticBars(n int, closeAt func(i int) float64) []market.Bar {
	bars := make([]market.Bar, n)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := closeAt(i)
		bars[i] = market.Bar{
			Date:   day.AddDate(0, 0, i),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestRate_EmptyHistory(t *testing.T) {
	_, ok := Rate(nil)
	assert.False(t, ok)

	_, ok = Rate([]market.Bar{})
	assert.False(t, ok)
}

func TestRate_FlatSeries(t *testing.T) {
	bars := syntheticBars(260, func(int) float64 { return 50 })
	for i := range bars {
		bars[i].High = 50
		bars[i].Low = 50
	}

	score, ok := Rate(bars)
	require.True(t, ok)

	// Price equals every average, so all 15 MA rules vote neutral.
	assert.Equal(t, 0.0, score.MA)

	// A flat series pins Wilder RSI at 100 (sell) and Williams %R at 0
	// (sell); every other oscillator rule stays neutral.
	assert.InDelta(t, -2.0/11.0, score.Oscillator, 1e-12)
	assert.InDelta(t, -1.0/11.0, score.Overall, 1e-12)
}

func TestRate_SteadyUptrend(t *testing.T) {
	bars := syntheticBars(260, func(i int) float64 { return float64(i + 1) })

	score, ok := Rate(bars)
	require.True(t, ok)

	// The last close sits above every moving average.
	assert.Equal(t, 1.0, score.MA)

	// Trend followers (ADX, AO, momentum, MACD, bull/bear power) vote
	// buy; the mean-reverters (RSI, CCI, Williams %R) vote sell; the
	// stochastics and the ultimate oscillator stay neutral.
	assert.InDelta(t, 2.0/11.0, score.Oscillator, 1e-12)
	assert.InDelta(t, (1.0+2.0/11.0)/2.0, score.Overall, 1e-12)
}

func TestRate_ShortHistoryStaysBounded(t *testing.T) {
	bars := syntheticBars(30, func(i int) float64 { return float64(i + 1) })

	score, ok := Rate(bars)
	require.True(t, ok)
	assert.GreaterOrEqual(t, score.MA, -1.0)
	assert.LessOrEqual(t, score.MA, 1.0)
	assert.GreaterOrEqual(t, score.Oscillator, -1.0)
	assert.LessOrEqual(t, score.Oscillator, 1.0)
	assert.Greater(t, score.MA, 0.0, "rising prices above short averages")
}
