// Package jobs holds the concrete scheduled jobs: refreshing price
// CSVs and writing the daily ranking snapshot.
package jobs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wonny/rotation/internal/external/stooq"
	"github.com/wonny/rotation/pkg/logger"
)

// DownloadJob refreshes the local Stooq CSVs for the whole universe.
// ⭐ SSOT: 가격 데이터 갱신 스케줄은 이 Job에서만
type DownloadJob struct {
	client  *stooq.Client
	symbols []string
	dataDir string
	logger  *logger.Logger
}

// NewDownloadJob creates a new download job.
func NewDownloadJob(client *stooq.Client, symbols []string, dataDir string, log *logger.Logger) *DownloadJob {
	return &DownloadJob{
		client:  client,
		symbols: symbols,
		dataDir: dataDir,
		logger:  log,
	}
}

// Name returns the job name
func (j *DownloadJob) Name() string {
	return "price_download"
}

// Schedule returns the cron schedule (weekday evenings after the US close)
func (j *DownloadJob) Schedule() string {
	return "0 0 18 * * 1-5" // 6 PM Mon-Fri (with seconds)
}

// Run downloads every symbol, continuing past per-symbol failures.
func (j *DownloadJob) Run(ctx context.Context) error {
	j.logger.WithField("symbols", len(j.symbols)).Info("Starting scheduled price download")

	failed := 0
	for _, symbol := range j.symbols {
		target := filepath.Join(j.dataDir, strings.ToLower(symbol)+".csv")
		if err := j.client.DownloadDailyCSV(ctx, symbol, target); err != nil {
			failed++
			j.logger.WithError(err).WithField("symbol", symbol).Warn("Price download failed")
		}
	}

	if failed == len(j.symbols) && len(j.symbols) > 0 {
		return fmt.Errorf("all %d downloads failed", failed)
	}

	j.logger.WithFields(map[string]interface{}{
		"total":  len(j.symbols),
		"failed": failed,
	}).Info("Price download completed")
	return nil
}
