// Package backtest drives the monthly rotation loop: regime gate,
// ranking, selection, equal-weight return compounding and reporting.
package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/rotation/internal/indicator"
	"github.com/wonny/rotation/internal/market"
	"github.com/wonny/rotation/internal/selection"
	"github.com/wonny/rotation/pkg/logger"
)

// Config is everything the engine needs beyond the universe itself.
type Config struct {
	TopN               int
	Benchmark          string // regime reference, e.g. SPY
	Safety             string // risk-off parking asset, e.g. IEF
	MAPeriod           int    // benchmark SMA window for the regime gate
	Speed              selection.Speed
	KeepRankMultiplier int       // slow rotation: keep while rank <= TopN*M
	Start              time.Time // skip rebalances before this date; zero runs the full history
}

// EquityPoint is one compounded equity value at a rebalance boundary.
type EquityPoint struct {
	Date   time.Time
	Equity float64
}

// Result is a finished run: the curve plus derived metrics.
type Result struct {
	Curve   []EquityPoint
	Summary Summary
}

// Engine runs the rotation backtest over a fixed, pre-loaded universe.
// ⭐ SSOT: 백테스팅 실행은 여기서만
type Engine struct {
	universe  *market.Universe
	ranker    *selection.Ranker
	policy    selection.Policy
	cfg       Config
	log       *logger.Logger
	reporters []Reporter
}

// NewEngine validates the configuration against the universe. The
// strategy is undefined without the benchmark and safety series, so
// those are construction-time failures, not per-period skips.
func NewEngine(universe *market.Universe, ranker *selection.Ranker, cfg Config, log *logger.Logger, reporters ...Reporter) (*Engine, error) {
	if universe == nil || universe.Len() == 0 {
		return nil, fmt.Errorf("backtest: universe is empty")
	}
	if !universe.Contains(cfg.Benchmark) {
		return nil, fmt.Errorf("backtest: universe does not contain benchmark %q", cfg.Benchmark)
	}
	if !universe.Contains(cfg.Safety) {
		return nil, fmt.Errorf("backtest: universe does not contain safety asset %q", cfg.Safety)
	}
	if cfg.TopN <= 0 {
		return nil, fmt.Errorf("backtest: topN must be positive, got %d", cfg.TopN)
	}
	if !cfg.Speed.Valid() {
		return nil, fmt.Errorf("backtest: unknown rotation speed %q", cfg.Speed)
	}

	policy := selection.Policy{
		Speed:              cfg.Speed,
		TopN:               cfg.TopN,
		KeepRankMultiplier: cfg.KeepRankMultiplier,
		Safety:             cfg.Safety,
	}
	return &Engine{
		universe:  universe,
		ranker:    ranker,
		policy:    policy,
		cfg:       cfg,
		log:       log,
		reporters: reporters,
	}, nil
}

// Run walks consecutive month-end trading dates of the benchmark and
// compounds one equal-weight period return per step. The loop is
// strictly sequential: the slow policy feeds each period's holdings into
// the next one.
func (e *Engine) Run(ctx context.Context, initialCapital float64) (*Result, error) {
	benchmark, _ := e.universe.Get(e.cfg.Benchmark)
	rebalanceDates := market.MonthEndTradingDates(benchmark)

	equity := initialCapital
	curve := make([]EquityPoint, 0, len(rebalanceDates))
	portfolio := NewPortfolio()
	var previousHoldings []string

	for i := 0; i < len(rebalanceDates)-1; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("backtest: run aborted: %w", err)
		}

		from := rebalanceDates[i]
		to := rebalanceDates[i+1]
		if !e.cfg.Start.IsZero() && from.Before(e.cfg.Start) {
			continue
		}

		riskOn := e.isRiskOn(from)

		// Ranked regardless of the regime, so reporters always see the
		// full picture.
		ranked := e.ranker.Rank(e.universe, from)

		var holdings []string
		if riskOn {
			holdings = e.policy.Select(ranked, previousHoldings)
		} else {
			holdings = []string{e.cfg.Safety}
		}

		portfolio.SetEqualWeights(holdings)
		periodReturn := e.periodReturn(portfolio, from, to)
		equity *= 1.0 + periodReturn
		curve = append(curve, EquityPoint{Date: to, Equity: equity})

		ev := Event{
			From:         from,
			To:           to,
			RiskOn:       riskOn,
			Speed:        e.cfg.Speed,
			Mode:         e.ranker.Mode(),
			Ranked:       ranked,
			Holdings:     holdings,
			PeriodReturn: periodReturn,
			Equity:       equity,
		}
		for _, r := range e.reporters {
			r.Rebalance(ev)
		}

		previousHoldings = holdings
	}

	return &Result{Curve: curve, Summary: summarize(initialCapital, curve)}, nil
}

// isRiskOn compares the benchmark close to its SMA, both as of the
// rebalance date. Missing either value reads as risk-off.
func (e *Engine) isRiskOn(asOf time.Time) bool {
	benchmark, _ := e.universe.Get(e.cfg.Benchmark)

	price, ok := benchmark.CloseOnOrBefore(asOf)
	if !ok {
		return false
	}

	bars := benchmark.BarsUpTo(asOf)
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	ma, ok := indicator.SMA(closes, len(closes)-1, e.cfg.MAPeriod)
	if !ok {
		return false
	}

	return price >= ma
}

// periodReturn is the weighted sum of per-holding close-to-close
// returns. Cash contributes zero; a holding whose price cannot be
// resolved at either endpoint contributes zero for that leg.
func (e *Engine) periodReturn(p *Portfolio, from, to time.Time) float64 {
	if p.IsAllCash() {
		return 0
	}

	total := 0.0
	for symbol, weight := range p.Weights() {
		if symbol == CashSymbol {
			continue
		}
		history, ok := e.universe.Get(symbol)
		if !ok {
			continue
		}
		pFrom, okFrom := history.CloseOnOrBefore(from)
		pTo, okTo := history.CloseOnOrBefore(to)
		if !okFrom || !okTo {
			continue
		}
		total += weight * (pTo/pFrom - 1.0)
	}
	return total
}
