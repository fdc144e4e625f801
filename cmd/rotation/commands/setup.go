package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/wonny/rotation/internal/market"
	"github.com/wonny/rotation/internal/scoring"
	"github.com/wonny/rotation/internal/selection"
	"github.com/wonny/rotation/internal/store"
	"github.com/wonny/rotation/internal/strategyconfig"
	"github.com/wonny/rotation/internal/universe"
	"github.com/wonny/rotation/pkg/config"
	"github.com/wonny/rotation/pkg/database"
	"github.com/wonny/rotation/pkg/logger"
)

// app bundles the wiring every command shares: env config, logger,
// strategy file and (when configured) the Postgres price store.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	strat *strategyconfig.Config
	db    *database.DB
	store *store.PriceStore
}

// initApp loads env + strategy config and connects to Postgres when a
// DATABASE_URL is configured. Without one the app runs off local CSVs.
func initApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	strat, _, err := strategyconfig.Load(strategyFile)
	if err != nil {
		return nil, fmt.Errorf("load strategy %s: %w", strategyFile, err)
	}
	for _, w := range strategyconfig.Warn(strat) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	a := &app{cfg: cfg, log: log, strat: strat}
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		priceStore, err := store.NewPriceStore(ctx, db, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		a.store = priceStore
	}
	return a, nil
}

// Close releases the database pool if one was opened.
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// noIndexFinder rejects index tokens when no database is available.
type noIndexFinder struct{}

func (noIndexFinder) FindSymbolsByOrigin(_ context.Context, originKey string) ([]string, error) {
	return nil, fmt.Errorf("index %s requires DATABASE_URL", originKey)
}

// resolveSymbols expands the strategy universe (file plus inline
// tokens) and guarantees the benchmark and safety assets are included.
func (a *app) resolveSymbols(ctx context.Context) ([]string, error) {
	var tokens []string
	if a.strat.Universe.File != "" {
		fileTokens, err := universe.ParseFile(a.strat.Universe.File)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, fileTokens...)
	}
	tokens = append(tokens, a.strat.Universe.Tokens...)

	var finder universe.SymbolFinder = noIndexFinder{}
	if a.store != nil {
		finder = a.store
	}
	symbols, err := universe.Resolve(ctx, tokens, finder)
	if err != nil {
		return nil, err
	}

	// The regime gate and the risk-off leg always need price history,
	// whether or not the universe file mentions them.
	for _, required := range []string{a.strat.Universe.Benchmark, a.strat.Universe.Safety} {
		if !containsSymbol(symbols, required) {
			symbols = append(symbols, strings.ToUpper(required))
		}
	}
	return symbols, nil
}

// loadUniverse loads history for every symbol, from Postgres when
// connected and from DATA_DIR CSVs otherwise. Symbols without any
// usable history are dropped with a warning.
func (a *app) loadUniverse(ctx context.Context, symbols []string) (*market.Universe, error) {
	loadStart := a.historyStart()

	u := market.NewUniverse()
	for _, symbol := range symbols {
		var (
			series *market.Series
			err    error
		)
		if a.store != nil {
			series, err = a.store.LoadHistory(ctx, symbol, loadStart)
		} else {
			path := filepath.Join(a.cfg.DataDir, strings.ToLower(symbol)+".csv")
			series, err = store.LoadStooqFile(symbol, path)
		}
		if err != nil {
			a.log.WithError(err).WithField("symbol", symbol).Warn("Skipping symbol without history")
			continue
		}
		if series.IsEmpty() {
			a.log.WithField("symbol", symbol).Warn("Skipping symbol with empty history")
			continue
		}
		u.Add(series)
	}
	if u.Len() == 0 {
		return nil, fmt.Errorf("no price history loaded for %d symbols", len(symbols))
	}
	return u, nil
}

// historyStart pads the configured start date with enough history for
// the longest lookback and the 200-day regime gate.
func (a *app) historyStart() time.Time {
	if a.strat.Backtest.StartDate == "" {
		return time.Time{}
	}
	start, _ := time.Parse("2006-01-02", a.strat.Backtest.StartDate)
	return start.AddDate(-3, 0, 0)
}

// backtestStart returns the configured start date, zero when unset.
func (a *app) backtestStart() time.Time {
	if a.strat.Backtest.StartDate == "" {
		return time.Time{}
	}
	start, _ := time.Parse("2006-01-02", a.strat.Backtest.StartDate)
	return market.Day(start.Year(), start.Month(), start.Day())
}

// newRanker builds the ranker for the strategy's scoring mode.
func (a *app) newRanker() (*selection.Ranker, error) {
	mode := scoring.Mode(a.strat.Scoring.Mode)
	calc, err := scoring.ForMode(mode, a.strat.Scoring.LookbacksDays)
	if err != nil {
		return nil, err
	}
	return selection.NewRanker(calc, mode), nil
}

func containsSymbol(symbols []string, symbol string) bool {
	for _, s := range symbols {
		if strings.EqualFold(s, symbol) {
			return true
		}
	}
	return false
}
