package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// stockPricesSchema maps the logical OHLCV columns onto whatever the
// stock_prices table actually calls them. Detected once per store.
type stockPricesSchema struct {
	symbolCol string
	dateCol   string
	openExpr  string
	highExpr  string
	lowExpr   string
	closeCol  string
	volExpr   string
}

// detectStockPricesSchema inspects information_schema.columns and picks
// the first matching name from each preference list. symbol, date and
// close are required; open/high/low fall back to close and a missing
// volume column selects a constant 0.
func detectStockPricesSchema(ctx context.Context, pool *pgxpool.Pool) (*stockPricesSchema, error) {
	rows, err := pool.Query(ctx, `
		select column_name
		from information_schema.columns
		where table_name = 'stock_prices'`)
	if err != nil {
		return nil, fmt.Errorf("store: inspect stock_prices: %w", err)
	}
	defer rows.Close()

	available := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: inspect stock_prices: %w", err)
		}
		available[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: inspect stock_prices: %w", err)
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("store: table stock_prices not found")
	}

	pick := func(candidates ...string) string {
		for _, c := range candidates {
			if available[c] {
				return c
			}
		}
		return ""
	}

	s := &stockPricesSchema{
		symbolCol: pick("symbol", "ticker", "code"),
		dateCol:   pick("trade_date", "date", "pricedate", "price_date"),
		closeCol:  pick("close", "last_close", "close_price"),
	}
	if s.symbolCol == "" || s.dateCol == "" || s.closeCol == "" {
		return nil, fmt.Errorf("store: stock_prices lacks symbol/date/close columns")
	}

	// Missing optional columns degrade instead of failing the run.
	s.openExpr = orDefault(pick("open", "last_open", "open_price"), s.closeCol)
	s.highExpr = orDefault(pick("high", "last_high", "high_price"), s.closeCol)
	s.lowExpr = orDefault(pick("low", "last_low", "low_price"), s.closeCol)
	s.volExpr = orDefault(pick("volume", "last_volume", "vol"), "0 as volume")

	return s, nil
}

func orDefault(col, fallback string) string {
	if col == "" {
		return fallback
	}
	return col
}
