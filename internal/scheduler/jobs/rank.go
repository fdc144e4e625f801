package jobs

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wonny/rotation/internal/market"
	"github.com/wonny/rotation/internal/selection"
	"github.com/wonny/rotation/pkg/logger"
)

// UniverseLoader builds the priced universe a ranking runs on.
type UniverseLoader func(ctx context.Context) (*market.Universe, error)

// RankJob writes a daily ranking snapshot CSV.
// ⭐ SSOT: 일별 랭킹 스냅샷은 이 Job에서만 생성
type RankJob struct {
	load      UniverseLoader
	ranker    *selection.Ranker
	outputDir string
	logger    *logger.Logger
}

// NewRankJob creates a new ranking job.
func NewRankJob(load UniverseLoader, ranker *selection.Ranker, outputDir string, log *logger.Logger) *RankJob {
	return &RankJob{
		load:      load,
		ranker:    ranker,
		outputDir: outputDir,
		logger:    log,
	}
}

// Name returns the job name
func (j *RankJob) Name() string {
	return "daily_ranking"
}

// Schedule returns the cron schedule (after the download job)
func (j *RankJob) Schedule() string {
	return "0 30 18 * * 1-5" // 6:30 PM Mon-Fri (with seconds)
}

// Run ranks the universe as of today and writes the snapshot.
func (j *RankJob) Run(ctx context.Context) error {
	universe, err := j.load(ctx)
	if err != nil {
		return fmt.Errorf("load universe: %w", err)
	}

	now := time.Now()
	asOf := market.Day(now.Year(), now.Month(), now.Day())
	ranked := j.ranker.Rank(universe, asOf)

	path := filepath.Join(j.outputDir, "ranked-"+asOf.Format("20060102")+".csv")
	if err := writeRankingCSV(path, asOf, ranked); err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"as_of":   asOf.Format("2006-01-02"),
		"symbols": len(ranked),
		"file":    path,
	}).Info("Ranking snapshot written")
	return nil
}

func writeRankingCSV(path string, asOf time.Time, ranked []selection.RankedEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "rank", "symbol", "score", "daily", "weekly", "monthly"}); err != nil {
		return err
	}
	date := asOf.Format("2006-01-02")
	for i, e := range ranked {
		record := []string{
			date,
			strconv.Itoa(i + 1),
			e.Symbol,
			formatScore(e.Score),
			formatScore(e.Daily),
			formatScore(e.Weekly),
			formatScore(e.Monthly),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// formatScore renders NaN sub-scores as empty cells.
func formatScore(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
