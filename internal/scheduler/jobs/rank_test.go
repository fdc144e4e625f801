package jobs

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rotation/internal/market"
	"github.com/wonny/rotation/internal/selection"
)

func TestWriteRankingCSV(t *testing.T) {
	ranked := []selection.RankedEntry{
		{Symbol: "SPY", Score: 0.1234, Daily: 0.1234, Weekly: math.NaN(), Monthly: math.NaN()},
		{Symbol: "IEF", Score: -0.02, Daily: -0.02, Weekly: math.NaN(), Monthly: math.NaN()},
	}

	path := filepath.Join(t.TempDir(), "out", "ranked.csv")
	require.NoError(t, writeRankingCSV(path, market.Day(2024, 6, 28), ranked))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,rank,symbol,score,daily,weekly,monthly", lines[0])
	assert.Equal(t, "2024-06-28,1,SPY,0.123400,0.123400,,", lines[1])
	assert.Equal(t, "2024-06-28,2,IEF,-0.020000,-0.020000,,", lines[2])
}

func TestRankJobName(t *testing.T) {
	j := NewRankJob(nil, nil, "", nil)
	assert.Equal(t, "daily_ranking", j.Name())
	assert.NotEmpty(t, j.Schedule())
}
