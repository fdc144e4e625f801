// Package selection ranks the universe by score and turns a ranking plus
// the previous holdings into the next holding set.
package selection

import (
	"math"
	"sort"
	"time"

	"github.com/wonny/rotation/internal/market"
	"github.com/wonny/rotation/internal/scoring"
)

// RankedEntry is one symbol's position in a ranking. Daily/Weekly/Monthly
// carry the per-timeframe sub-scores when the calculator produces them,
// NaN otherwise.
type RankedEntry struct {
	Symbol  string
	Score   float64
	Daily   float64
	Weekly  float64
	Monthly float64
}

// HasTimeframes reports whether any per-timeframe sub-score is present.
func (e RankedEntry) HasTimeframes() bool {
	return !(math.IsNaN(e.Daily) && math.IsNaN(e.Weekly) && math.IsNaN(e.Monthly))
}

// Ranker scores every symbol in the universe as of a date and sorts the
// result by score descending. Symbols the calculator cannot score at
// that date are left out.
// ⭐ SSOT: 랭킹 로직은 여기서만
type Ranker struct {
	calc scoring.Calculator
	mode scoring.Mode
}

func NewRanker(calc scoring.Calculator, mode scoring.Mode) *Ranker {
	return &Ranker{calc: calc, mode: mode}
}

// Mode returns the configured score mode, for reporting.
func (r *Ranker) Mode() scoring.Mode { return r.mode }

// Rank walks the universe in its insertion order so equal scores keep a
// deterministic relative order, then stable-sorts descending.
func (r *Ranker) Rank(universe *market.Universe, asOf time.Time) []RankedEntry {
	entries := make([]RankedEntry, 0, universe.Len())
	for _, symbol := range universe.Symbols() {
		history, ok := universe.Get(symbol)
		if !ok {
			continue
		}
		snap, ok := r.calc.Score(history, asOf)
		if !ok {
			continue
		}
		entries = append(entries, RankedEntry{
			Symbol:  symbol,
			Score:   snap.Score,
			Daily:   snap.Daily,
			Weekly:  snap.Weekly,
			Monthly: snap.Monthly,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
