package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/wonny/rotation/internal/scoring"
	"github.com/wonny/rotation/internal/selection"
	"github.com/wonny/rotation/pkg/logger"
)

// Event carries everything one rebalance produced: the regime gate, the
// full ranking, the chosen holdings and the resulting equity.
type Event struct {
	From         time.Time
	To           time.Time
	RiskOn       bool
	Speed        selection.Speed
	Mode         scoring.Mode
	Ranked       []selection.RankedEntry
	Holdings     []string
	PeriodReturn float64
	Equity       float64
}

// Reporter consumes per-rebalance events. Reporters must not retain the
// Ranked slice past the call.
type Reporter interface {
	Rebalance(ev Event)
}

// LogReporter writes one structured log line per rebalance.
type LogReporter struct {
	Log *logger.Logger
}

func (r LogReporter) Rebalance(ev Event) {
	r.Log.WithFields(map[string]interface{}{
		"from":       ev.From.Format("2006-01-02"),
		"to":         ev.To.Format("2006-01-02"),
		"risk_on":    ev.RiskOn,
		"holdings":   strings.Join(ev.Holdings, ","),
		"period_ret": fmt.Sprintf("%.2f%%", ev.PeriodReturn*100),
		"equity":     fmt.Sprintf("%.2f", ev.Equity),
	}).Info("Rebalanced")
}

// RankedCSVReporter appends the full ranked universe of every rebalance
// to one CSV stream. Close flushes the writer; the caller owns the
// underlying file.
type RankedCSVReporter struct {
	w          *csv.Writer
	wroteTitle bool
}

func NewRankedCSVReporter(w io.Writer) *RankedCSVReporter {
	return &RankedCSVReporter{w: csv.NewWriter(w)}
}

func (r *RankedCSVReporter) Rebalance(ev Event) {
	if !r.wroteTitle {
		r.w.Write([]string{"date", "rank", "symbol", "score", "daily", "weekly", "monthly", "selected"})
		r.wroteTitle = true
	}

	selected := make(map[string]bool, len(ev.Holdings))
	for _, s := range ev.Holdings {
		selected[s] = true
	}

	date := ev.From.Format("2006-01-02")
	for i, e := range ev.Ranked {
		r.w.Write([]string{
			date,
			fmt.Sprintf("%d", i+1),
			e.Symbol,
			formatScore(e.Score),
			formatScore(e.Daily),
			formatScore(e.Weekly),
			formatScore(e.Monthly),
			fmt.Sprintf("%t", selected[e.Symbol]),
		})
	}
}

func (r *RankedCSVReporter) Close() error {
	r.w.Flush()
	return r.w.Error()
}

func formatScore(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.6f", v)
}

// WriteEquityCSV dumps an equity curve as date,equity rows.
func WriteEquityCSV(w io.Writer, curve []EquityPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "equity"}); err != nil {
		return fmt.Errorf("backtest: write equity header: %w", err)
	}
	for _, p := range curve {
		if err := cw.Write([]string{p.Date.Format("2006-01-02"), fmt.Sprintf("%.2f", p.Equity)}); err != nil {
			return fmt.Errorf("backtest: write equity row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
