package market

// Universe is the set of instruments a run operates on, keyed by symbol.
//
// Symbols keep their insertion order so that ranking output is
// deterministic: ties in score preserve the order symbols were added.
type Universe struct {
	symbols []string
	series  map[string]*Series
}

// NewUniverse returns an empty universe.
func NewUniverse() *Universe {
	return &Universe{series: make(map[string]*Series)}
}

// Add registers a series under its symbol. Re-adding a symbol replaces
// the series but keeps its original position.
func (u *Universe) Add(s *Series) {
	if _, exists := u.series[s.Symbol()]; !exists {
		u.symbols = append(u.symbols, s.Symbol())
	}
	u.series[s.Symbol()] = s
}

// Get returns the series for symbol.
func (u *Universe) Get(symbol string) (*Series, bool) {
	s, ok := u.series[symbol]
	return s, ok
}

// Contains reports whether the universe holds the symbol.
func (u *Universe) Contains(symbol string) bool {
	_, ok := u.series[symbol]
	return ok
}

// Symbols returns symbols in insertion order. Callers must not modify it.
func (u *Universe) Symbols() []string { return u.symbols }

// Len returns the number of instruments.
func (u *Universe) Len() int { return len(u.symbols) }
