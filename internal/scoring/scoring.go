// Package scoring assigns each symbol a sortable strength score as of a
// date. Three interchangeable calculators exist: combined multi-window
// momentum, a plain six-month return, and a technical rating folded into
// one lexicographic sort key.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/rotation/internal/market"
	"github.com/wonny/rotation/internal/rating"
)

// Snapshot is a symbol's score as of one date. Score is the value used
// for sorting and selection (higher is better). Daily/Weekly/Monthly are
// the per-timeframe overall ratings where the calculator produces them;
// NaN marks a timeframe that does not apply.
type Snapshot struct {
	Score   float64
	Daily   float64
	Weekly  float64
	Monthly float64
}

// Single wraps a plain scalar score; the daily slot mirrors the score
// and the resampled timeframes stay NaN.
func Single(score float64) Snapshot {
	return Snapshot{Score: score, Daily: score, Weekly: math.NaN(), Monthly: math.NaN()}
}

// Calculator scores one symbol's history as of a date. ok is false when
// the history cannot support a score at that date (too short, or no bar
// on or before it); callers skip such symbols rather than erroring.
type Calculator interface {
	Score(history *market.Series, asOf time.Time) (Snapshot, bool)
}

// Mode names the built-in calculators for configuration surfaces.
type Mode string

const (
	ModeMomentum  Mode = "momentum"  // combined 3/6/12-month momentum
	ModeReturn6M  Mode = "return6m"  // six-month percentage return
	ModeTechnical Mode = "technical" // daily/weekly/monthly technical rating
)

// ForMode returns the calculator for a configured mode name.
func ForMode(mode Mode, lookbackDays []int) (Calculator, error) {
	switch mode {
	case ModeMomentum:
		if len(lookbackDays) == 0 {
			lookbackDays = []int{63, 126, 252}
		}
		return NewCombinedMomentum(lookbackDays...)
	case ModeReturn6M:
		return SixMonthReturn{LookbackDays: 120}, nil
	case ModeTechnical:
		return Technical{}, nil
	}
	return nil, fmt.Errorf("scoring: unknown mode %q", mode)
}

// CombinedMomentum averages fractional returns over several calendar-day
// lookback windows, e.g. 63/126/252 days (~3/6/12 months). Windows whose
// lookback date has no prior bar, or whose past close is non-positive,
// are skipped; the score is the mean of the windows that resolved.
type CombinedMomentum struct {
	lookbackDays []int
}

func NewCombinedMomentum(lookbackDays ...int) (CombinedMomentum, error) {
	if len(lookbackDays) == 0 {
		return CombinedMomentum{}, fmt.Errorf("scoring: at least one lookback is required")
	}
	return CombinedMomentum{lookbackDays: lookbackDays}, nil
}

func (c CombinedMomentum) Score(history *market.Series, asOf time.Time) (Snapshot, bool) {
	closeToday, ok := history.CloseOnOrBefore(asOf)
	if !ok {
		return Snapshot{}, false
	}

	sum := 0.0
	count := 0
	for _, lb := range c.lookbackDays {
		closePast, ok := history.CloseOnOrBefore(asOf.AddDate(0, 0, -lb))
		if !ok || closePast <= 0 {
			continue
		}
		sum += closeToday/closePast - 1.0
		count++
	}
	if count == 0 {
		return Snapshot{}, false
	}
	return Single(sum / float64(count)), true
}

// SixMonthReturn is the percentage return over a single calendar-day
// window, 120 days by default.
type SixMonthReturn struct {
	LookbackDays int
}

func (s SixMonthReturn) Score(history *market.Series, asOf time.Time) (Snapshot, bool) {
	closeToday, ok := history.CloseOnOrBefore(asOf)
	if !ok {
		return Snapshot{}, false
	}
	closePast, ok := history.CloseOnOrBefore(asOf.AddDate(0, 0, -s.LookbackDays))
	if !ok || closePast <= 0 {
		return Snapshot{}, false
	}
	return Single((closeToday/closePast - 1.0) * 100.0), true
}

// Weights that fold the (monthly, weekly, daily) triple into one sort
// key while preserving lexicographic order: each rating lives in [-1,1],
// so a thousandfold gap per level keeps the levels from interfering and
// "score > 0" still reads as bullish on the monthly timeframe.
const (
	monthlyWeight = 1_000_000.0
	weeklyWeight  = 1_000.0
)

// Technical rates the symbol on daily bars plus weekly and monthly
// resamples, then ranks lexicographically monthly-first.
type Technical struct{}

func (Technical) Score(history *market.Series, asOf time.Time) (Snapshot, bool) {
	dailyBars := history.BarsUpTo(asOf)
	if len(dailyBars) == 0 {
		return Snapshot{}, false
	}

	daily, dailyOK := rating.Rate(dailyBars)
	weekly, weeklyOK := rating.Rate(market.Resample(history.Bars(), market.Weekly, asOf))
	monthly, monthlyOK := rating.Rate(market.Resample(history.Bars(), market.Monthly, asOf))

	if !dailyOK && !weeklyOK && !monthlyOK {
		return Snapshot{}, false
	}

	snap := Snapshot{Daily: math.NaN(), Weekly: math.NaN(), Monthly: math.NaN()}
	if dailyOK {
		snap.Daily = daily.Overall
	}
	if weeklyOK {
		snap.Weekly = weekly.Overall
	}
	if monthlyOK {
		snap.Monthly = monthly.Overall
	}
	snap.Score = safe(snap.Monthly)*monthlyWeight + safe(snap.Weekly)*weeklyWeight + safe(snap.Daily)
	return snap, true
}

func safe(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
