package selection

// Speed selects between the aggressive and the sticky rotation policy.
type Speed string

const (
	// Fast always jumps to the current top-N.
	Fast Speed = "fast"
	// Slow keeps existing holdings while they remain acceptably ranked.
	Slow Speed = "slow"
)

// Valid reports whether the speed names a known policy.
func (s Speed) Valid() bool { return s == Fast || s == Slow }

// Policy turns a ranked list plus the previous holdings into the next
// holding set. The slow policy is path dependent: what it returns at one
// rebalance depends on what it returned at the previous one, so callers
// must carry the holding set across rebalances.
type Policy struct {
	Speed              Speed
	TopN               int
	KeepRankMultiplier int // slow only: keep holdings while rank <= TopN*M
	Safety             string
}

// Select returns the next holding set, never including the safety symbol
// among risky picks. An empty risky pick falls back to {safety}.
func (p Policy) Select(ranked []RankedEntry, previous []string) []string {
	var selected []string
	if p.Speed == Slow {
		selected = p.selectSlow(ranked, previous)
	} else {
		selected = p.selectFast(ranked)
	}
	if len(selected) == 0 {
		return []string{p.Safety}
	}
	return selected
}

// selectFast walks the ranking top-down and takes the first TopN
// positive-score symbols, stopping outright at the first score <= 0.
func (p Policy) selectFast(ranked []RankedEntry) []string {
	selected := make([]string, 0, p.TopN)
	for _, e := range ranked {
		if e.Symbol == p.Safety {
			continue
		}
		if e.Score <= 0 {
			break
		}
		selected = append(selected, e.Symbol)
		if len(selected) == p.TopN {
			break
		}
	}
	return selected
}

// selectSlow first retains previous holdings that still rank inside
// TopN*KeepRankMultiplier with a positive score, in current rank order,
// then fills leftover slots with the strongest unselected entries. The
// fill scan stops at the first non-positive score like the fast path.
func (p Policy) selectSlow(ranked []RankedEntry, previous []string) []string {
	prevSet := make(map[string]bool, len(previous))
	for _, s := range previous {
		if s != p.Safety {
			prevSet[s] = true
		}
	}

	keepLimit := p.TopN * p.KeepRankMultiplier
	selected := make([]string, 0, p.TopN)
	taken := make(map[string]bool, p.TopN)

	for rank, e := range ranked {
		if len(selected) == p.TopN {
			break
		}
		if !prevSet[e.Symbol] || e.Score <= 0 || rank+1 > keepLimit {
			continue
		}
		selected = append(selected, e.Symbol)
		taken[e.Symbol] = true
	}

	for _, e := range ranked {
		if len(selected) == p.TopN {
			break
		}
		if e.Symbol == p.Safety || taken[e.Symbol] {
			continue
		}
		if e.Score <= 0 {
			break
		}
		selected = append(selected, e.Symbol)
		taken[e.Symbol] = true
	}

	return selected
}
