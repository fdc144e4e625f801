package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/rotation/internal/market"
)

// LoadStooqCSV parses a Stooq daily CSV (Date,Open,High,Low,Close,Volume)
// into a series. Rows without a usable close are skipped; a missing
// volume field reads as 0.
func LoadStooqCSV(symbol string, r io.Reader) (*market.Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var bars []market.Bar
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("store: parse csv for %s: %w", symbol, err)
		}
		if first {
			first = false
			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "Date") {
				continue
			}
		}
		if len(record) < 5 {
			continue
		}

		closeStr := strings.TrimSpace(record[4])
		if closeStr == "" || strings.EqualFold(closeStr, "null") {
			continue
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		last, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			continue
		}

		bar := market.Bar{
			Date:  market.Day(date.Year(), date.Month(), date.Day()),
			Open:  parseFieldOr(record[1], last),
			High:  parseFieldOr(record[2], last),
			Low:   parseFieldOr(record[3], last),
			Close: last,
		}
		if len(record) > 5 {
			bar.Volume = parseFieldOr(record[5], 0)
		}
		bars = append(bars, bar)
	}
	return market.NewSeries(symbol, bars), nil
}

// LoadStooqFile reads one downloaded Stooq CSV file.
func LoadStooqFile(symbol, path string) (*market.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open csv %s: %w", path, err)
	}
	defer f.Close()
	return LoadStooqCSV(symbol, f)
}

func parseFieldOr(field string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return fallback
	}
	return v
}
