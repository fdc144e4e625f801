package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rotation/internal/market"
)

func TestLoadStooqCSV(t *testing.T) {
	input := strings.Join([]string{
		"Date,Open,High,Low,Close,Volume",
		"2024-01-02,100,101,99,100.5,120000",
		"2024-01-03,100.5,102,100,101.5,95000",
		"2024-01-04,,,,null,",
		"2024-01-05,101.5,103,101,102.25",
	}, "\n")

	series, err := LoadStooqCSV("SPY", strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())

	bars := series.Bars()
	assert.Equal(t, market.Day(2024, 1, 2), bars[0].Date)
	assert.Equal(t, 100.5, bars[0].Close)
	assert.Equal(t, 120000.0, bars[0].Volume)

	// Short row without a volume field parses with volume 0.
	assert.Equal(t, market.Day(2024, 1, 5), bars[2].Date)
	assert.Equal(t, 102.25, bars[2].Close)
	assert.Equal(t, 0.0, bars[2].Volume)
}

func TestLoadStooqCSV_OpenHighLowFallBackToClose(t *testing.T) {
	input := "Date,Open,High,Low,Close,Volume\n2024-01-02,,,,50,\n"

	series, err := LoadStooqCSV("IEF", strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, series.Len())

	bar := series.Bars()[0]
	assert.Equal(t, 50.0, bar.Open)
	assert.Equal(t, 50.0, bar.High)
	assert.Equal(t, 50.0, bar.Low)
	assert.Equal(t, 50.0, bar.Close)
}

func TestLoadStooqCSV_Empty(t *testing.T) {
	series, err := LoadStooqCSV("SPY", strings.NewReader("Date,Open,High,Low,Close,Volume\n"))
	require.NoError(t, err)
	assert.True(t, series.IsEmpty())
}
