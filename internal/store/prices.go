// Package store loads price history and index memberships from the
// Postgres quote database or from local Stooq CSV files.
package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wonny/rotation/internal/market"
	"github.com/wonny/rotation/pkg/database"
	"github.com/wonny/rotation/pkg/logger"
)

// PriceStore reads price history out of Postgres.
// ⭐ SSOT: 가격 SQL은 이 파일에만 존재
type PriceStore struct {
	db     *database.DB
	schema *stockPricesSchema
	log    *logger.Logger
}

// NewPriceStore detects the stock_prices column layout and returns a
// ready store.
func NewPriceStore(ctx context.Context, db *database.DB, log *logger.Logger) (*PriceStore, error) {
	schema, err := detectStockPricesSchema(ctx, db.Pool)
	if err != nil {
		return nil, err
	}
	log.WithFields(map[string]interface{}{
		"symbol_col": schema.symbolCol,
		"date_col":   schema.dateCol,
		"close_col":  schema.closeCol,
	}).Debug("Detected stock_prices schema")
	return &PriceStore{db: db, schema: schema, log: log}, nil
}

// FindSymbolsByOrigin returns the sorted member symbols of an index,
// matching quotes.origin case-insensitively on a substring of the key.
func (s *PriceStore) FindSymbolsByOrigin(ctx context.Context, originKey string) ([]string, error) {
	rows, err := s.db.Pool.Query(ctx,
		`select symbol from quotes where origin ilike $1`,
		"%"+originKey+"%")
	if err != nil {
		return nil, fmt.Errorf("store: find symbols for origin %s: %w", originKey, err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("store: find symbols for origin %s: %w", originKey, err)
		}
		symbols = append(symbols, sym)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: find symbols for origin %s: %w", originKey, err)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// LoadHistory loads the daily bars for one symbol from startDate on.
func (s *PriceStore) LoadHistory(ctx context.Context, symbol string, startDate time.Time) (*market.Series, error) {
	sc := s.schema
	query := fmt.Sprintf(
		`select %s, %s, %s, %s, %s, %s
		 from stock_prices
		 where %s = $1 and %s >= $2
		 order by %s`,
		sc.dateCol, sc.openExpr, sc.highExpr, sc.lowExpr, sc.closeCol, sc.volExpr,
		sc.symbolCol, sc.dateCol, sc.dateCol)

	rows, err := s.db.Pool.Query(ctx, query, symbol, startDate)
	if err != nil {
		return nil, fmt.Errorf("store: load history for %s: %w", symbol, err)
	}
	defer rows.Close()

	var bars []market.Bar
	for rows.Next() {
		var date time.Time
		var open, high, low, last, vol float64
		if err := rows.Scan(&date, &open, &high, &low, &last, &vol); err != nil {
			return nil, fmt.Errorf("store: load history for %s: %w", symbol, err)
		}
		bars = append(bars, market.Bar{
			Date:   market.Day(date.Year(), date.Month(), date.Day()),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  last,
			Volume: vol,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load history for %s: %w", symbol, err)
	}
	return market.NewSeries(symbol, bars), nil
}
