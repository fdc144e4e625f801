package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/rotation/internal/external/stooq"
	"github.com/wonny/rotation/internal/market"
	"github.com/wonny/rotation/internal/scheduler"
	"github.com/wonny/rotation/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "데일리 다운로드/랭킹 스케줄러 실행",
	Long: `평일 장 마감 후 가격 데이터를 갱신하고 랭킹 스냅샷을 기록하는
스케줄러를 전면(foreground)으로 실행합니다. Ctrl+C로 종료.

Jobs:
  price_download  평일 18:00  Stooq CSV 갱신
  daily_ranking   평일 18:30  랭킹 스냅샷 CSV

Example:
  go run ./cmd/rotation schedule --strategy strategy.yaml`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.DataDir == "" {
		return fmt.Errorf("schedule requires DATA_DIR")
	}

	symbols, err := a.resolveSymbols(ctx)
	if err != nil {
		return err
	}
	ranker, err := a.newRanker()
	if err != nil {
		return err
	}

	loadUniverse := func(ctx context.Context) (*market.Universe, error) {
		return a.loadUniverse(ctx, symbols)
	}

	sched := scheduler.New(a.log)
	if err := sched.AddJob(jobs.NewDownloadJob(stooq.NewClient(a.cfg, a.log), symbols, a.cfg.DataDir, a.log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewRankJob(loadUniverse, ranker, a.cfg.OutputDir, a.log)); err != nil {
		return err
	}

	sched.Start()
	fmt.Printf("⏰ Scheduler running with %d jobs (Ctrl+C to stop)\n", len(sched.GetAllJobs()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
