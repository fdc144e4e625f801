package backtest

import (
	"math"
	"time"
)

// Summary holds performance metrics derived from a monthly equity curve.
type Summary struct {
	InitialCapital float64
	FinalEquity    float64
	TotalReturn    float64
	CAGR           float64
	Volatility     float64 // annualized from monthly period returns
	SharpeRatio    float64 // 0% risk-free rate
	MaxDrawdown    float64
}

const periodsPerYear = 12.0

// summarize computes the metrics for a finished run. An empty curve
// yields a summary that only carries the initial capital.
func summarize(initialCapital float64, curve []EquityPoint) Summary {
	s := Summary{InitialCapital: initialCapital, FinalEquity: initialCapital}
	if len(curve) == 0 {
		return s
	}

	s.FinalEquity = curve[len(curve)-1].Equity
	s.TotalReturn = s.FinalEquity/initialCapital - 1.0

	years := yearsBetween(curve[0].Date, curve[len(curve)-1].Date)
	if years > 0 {
		s.CAGR = math.Pow(s.FinalEquity/initialCapital, 1.0/years) - 1.0
	}

	returns := make([]float64, 0, len(curve))
	prev := initialCapital
	for _, p := range curve {
		returns = append(returns, p.Equity/prev-1.0)
		prev = p.Equity
	}

	s.Volatility = stddev(returns) * math.Sqrt(periodsPerYear)
	if s.Volatility > 0 {
		meanAnnualized := mean(returns) * periodsPerYear
		s.SharpeRatio = meanAnnualized / s.Volatility
	}

	s.MaxDrawdown = maxDrawdown(initialCapital, curve)
	return s
}

func yearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24.0 / 365.25
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		d := v - m
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func maxDrawdown(initial float64, curve []EquityPoint) float64 {
	peak := initial
	worst := 0.0
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		dd := (peak - p.Equity) / peak
		if dd > worst {
			worst = dd
		}
	}
	return worst
}
