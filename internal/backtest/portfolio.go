package backtest

// CashSymbol is the pseudo-symbol for an all-cash portfolio. Cash
// contributes exactly zero return over any period.
const CashSymbol = "CASH"

// Portfolio maps symbols to weights. Weights sum to 1.0 over risky
// symbols, or the portfolio is all cash.
type Portfolio struct {
	weights map[string]float64
}

func NewPortfolio() *Portfolio {
	return &Portfolio{weights: make(map[string]float64)}
}

// SetEqualWeights replaces the holdings with an equal-weight allocation.
// An empty symbol list parks everything in cash.
func (p *Portfolio) SetEqualWeights(symbols []string) {
	p.weights = make(map[string]float64, len(symbols))
	if len(symbols) == 0 {
		p.weights[CashSymbol] = 1.0
		return
	}
	w := 1.0 / float64(len(symbols))
	for _, s := range symbols {
		p.weights[s] = w
	}
}

// Weights returns the current symbol-to-weight mapping. Callers must not
// modify it.
func (p *Portfolio) Weights() map[string]float64 { return p.weights }

// IsAllCash reports whether the portfolio holds only the cash sentinel.
func (p *Portfolio) IsAllCash() bool {
	if len(p.weights) == 0 {
		return true
	}
	_, hasCash := p.weights[CashSymbol]
	return len(p.weights) == 1 && hasCash
}
