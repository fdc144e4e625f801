package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rotation",
	Short: "월간 ETF/주식 로테이션 백테스터",
	Long: `Rotation CLI

모멘텀/기술적 점수 기반 월간 리밸런싱 로테이션 전략.
데이터 다운로드부터 랭킹, 백테스트, 스케줄 실행까지.

Usage:
  go run ./cmd/rotation [command]

Examples:
  go run ./cmd/rotation backtest --strategy strategy.yaml
  go run ./cmd/rotation rank --strategy strategy.yaml
  go run ./cmd/rotation download --strategy strategy.yaml
  go run ./cmd/rotation schedule --strategy strategy.yaml`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "strategy.yaml", "strategy YAML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
