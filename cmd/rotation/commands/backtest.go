package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wonny/rotation/internal/backtest"
	"github.com/wonny/rotation/internal/selection"
)

// backtestCmd represents the backtest command
var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "로테이션 전략 백테스트",
	Long: `월말 리밸런싱 로테이션 전략을 과거 데이터로 실행합니다.

산출물:
- 성과 요약 (TotalReturn, CAGR, Sharpe, MDD)
- equity.csv          월별 자산 곡선
- ranked-universe.csv 리밸런싱마다의 전체 랭킹

Example:
  go run ./cmd/rotation backtest --strategy strategy.yaml
  go run ./cmd/rotation backtest --strategy strategy.yaml --output results/`,
	RunE: runBacktest,
}

var backtestOutputDir string

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVar(&backtestOutputDir, "output", "", "output directory (default: OUTPUT_DIR)")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Rotation Backtest ===")
	ctx := cmd.Context()

	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	symbols, err := a.resolveSymbols(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\n📋 Universe: %d symbols\n", len(symbols))

	u, err := a.loadUniverse(ctx, symbols)
	if err != nil {
		return err
	}
	ranker, err := a.newRanker()
	if err != nil {
		return err
	}

	outputDir := backtestOutputDir
	if outputDir == "" {
		outputDir = a.cfg.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rankedFile, err := os.Create(filepath.Join(outputDir, "ranked-universe.csv"))
	if err != nil {
		return fmt.Errorf("create ranked output: %w", err)
	}
	defer rankedFile.Close()
	rankedReporter := backtest.NewRankedCSVReporter(rankedFile)

	engine, err := backtest.NewEngine(u, ranker, backtest.Config{
		TopN:               a.strat.Rotation.TopN,
		Benchmark:          a.strat.Universe.Benchmark,
		Safety:             a.strat.Universe.Safety,
		MAPeriod:           a.strat.Backtest.MAPeriod,
		Speed:              selection.Speed(a.strat.Rotation.Speed),
		KeepRankMultiplier: a.strat.Rotation.KeepRankMultiplier,
		Start:              a.backtestStart(),
	}, a.log, backtest.LogReporter{Log: a.log}, rankedReporter)
	if err != nil {
		return err
	}

	fmt.Println("🚀 Starting backtest...")
	result, err := engine.Run(ctx, a.strat.Backtest.InitialCapital)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}
	if err := rankedReporter.Close(); err != nil {
		return fmt.Errorf("write ranked output: %w", err)
	}

	equityFile, err := os.Create(filepath.Join(outputDir, "equity.csv"))
	if err != nil {
		return fmt.Errorf("create equity output: %w", err)
	}
	defer equityFile.Close()
	if err := backtest.WriteEquityCSV(equityFile, result.Curve); err != nil {
		return fmt.Errorf("write equity curve: %w", err)
	}

	printBacktestResult(result, outputDir)
	return nil
}

func printBacktestResult(result *backtest.Result, outputDir string) {
	s := result.Summary

	fmt.Println("\n✅ Backtest Completed")
	fmt.Println()

	fmt.Println("💰 Performance")
	fmt.Printf("Initial Capital: %s\n", formatMoney(s.InitialCapital))
	fmt.Printf("Final Equity:    %s\n", formatMoney(s.FinalEquity))
	fmt.Printf("Total Return:    %+.2f%%\n", s.TotalReturn*100)
	fmt.Printf("CAGR:            %+.2f%%\n", s.CAGR*100)
	fmt.Printf("Volatility:      %.2f%%\n", s.Volatility*100)
	fmt.Println()

	fmt.Println("📉 Risk Metrics")
	fmt.Printf("Sharpe Ratio:    %.2f", s.SharpeRatio)
	if s.SharpeRatio > 1.0 {
		fmt.Print(" ✅")
	}
	fmt.Println()
	fmt.Printf("Max Drawdown:    %.2f%%", s.MaxDrawdown*100)
	if s.MaxDrawdown > 0.30 {
		fmt.Print(" ❌ (High)")
	}
	fmt.Println()
	fmt.Println()

	fmt.Printf("📈 Rebalances: %d\n", len(result.Curve))
	fmt.Printf("📁 Output: %s\n", outputDir)
}
