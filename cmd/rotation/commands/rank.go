package commands

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/rotation/internal/market"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "현재 시점 랭킹 출력",
	Long: `유니버스 전체를 점수순으로 정렬하여 출력합니다.

Example:
  go run ./cmd/rotation rank --strategy strategy.yaml
  go run ./cmd/rotation rank --strategy strategy.yaml --as-of 2024-06-28
  go run ./cmd/rotation rank --strategy strategy.yaml --top 10`,
	RunE: runRank,
}

var (
	rankAsOf string
	rankTop  int
)

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankAsOf, "as-of", "", "ranking date (YYYY-MM-DD, default: today)")
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "show only the top N rows (0 = all)")
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	asOf := time.Now()
	if rankAsOf != "" {
		asOf, err = time.Parse("2006-01-02", rankAsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of date: %w", err)
		}
	}
	asOfDay := market.Day(asOf.Year(), asOf.Month(), asOf.Day())

	symbols, err := a.resolveSymbols(ctx)
	if err != nil {
		return err
	}
	u, err := a.loadUniverse(ctx, symbols)
	if err != nil {
		return err
	}
	ranker, err := a.newRanker()
	if err != nil {
		return err
	}

	ranked := ranker.Rank(u, asOfDay)
	if len(ranked) == 0 {
		return fmt.Errorf("no symbol could be scored as of %s", asOfDay.Format("2006-01-02"))
	}

	fmt.Printf("=== Ranking (%s, mode=%s) ===\n\n", asOfDay.Format("2006-01-02"), a.strat.Scoring.Mode)
	fmt.Printf("%-5s %-8s %10s %10s %10s %10s\n", "RANK", "SYMBOL", "SCORE", "DAILY", "WEEKLY", "MONTHLY")
	for i, e := range ranked {
		if rankTop > 0 && i >= rankTop {
			break
		}
		fmt.Printf("%-5d %-8s %10.4f %10s %10s %10s\n",
			i+1, e.Symbol, e.Score,
			formatSubScore(e.Daily), formatSubScore(e.Weekly), formatSubScore(e.Monthly))
	}
	return nil
}

func formatSubScore(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}
