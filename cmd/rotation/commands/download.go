package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/rotation/internal/external/stooq"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Stooq 일봉 CSV 다운로드",
	Long: `유니버스 전 종목의 일봉 히스토리를 Stooq에서 받아
DATA_DIR에 심볼별 CSV로 저장합니다.

Example:
  go run ./cmd/rotation download --strategy strategy.yaml
  go run ./cmd/rotation download --strategy strategy.yaml --symbols SPY,IEF`,
	RunE: runDownload,
}

var downloadSymbols string

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&downloadSymbols, "symbols", "", "comma-separated symbols (default: strategy universe)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.DataDir == "" {
		return fmt.Errorf("download requires DATA_DIR")
	}

	var symbols []string
	if downloadSymbols != "" {
		for _, s := range strings.Split(downloadSymbols, ",") {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				symbols = append(symbols, s)
			}
		}
	} else {
		symbols, err = a.resolveSymbols(ctx)
		if err != nil {
			return err
		}
	}

	client := stooq.NewClient(a.cfg, a.log)

	fmt.Printf("⬇️  Downloading %d symbols to %s\n", len(symbols), a.cfg.DataDir)
	failed := 0
	for _, symbol := range symbols {
		target := filepath.Join(a.cfg.DataDir, strings.ToLower(symbol)+".csv")
		if err := client.DownloadDailyCSV(ctx, symbol, target); err != nil {
			failed++
			a.log.WithError(err).WithField("symbol", symbol).Warn("Download failed")
			fmt.Printf("  ❌ %s\n", symbol)
			continue
		}
		fmt.Printf("  ✅ %s\n", symbol)
	}

	if failed > 0 {
		fmt.Printf("\n⚠️  %d/%d downloads failed\n", failed, len(symbols))
		if failed == len(symbols) {
			return fmt.Errorf("all downloads failed")
		}
		return nil
	}
	fmt.Println("\n✅ Download completed")
	return nil
}
