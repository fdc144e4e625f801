// Package rating turns a bar history into a TradingView-style technical
// rating: 15 moving-average rules plus 11 oscillator rules, each voting
// -1 (sell), 0 (neutral) or +1 (buy). Group scores are the plain mean of
// the votes, the overall score the mean of the two groups.
//
// ⭐ SSOT: 등급 규칙은 이 파일에만 존재. 점수 계산기는 결과만 소비한다.
package rating

import (
	"github.com/wonny/rotation/internal/indicator"
	"github.com/wonny/rotation/internal/market"
)

// Score is one timeframe's rating. All three components live in [-1, +1].
type Score struct {
	MA         float64
	Oscillator float64
	Overall    float64
}

// Rate evaluates all 26 constituent rules at the last bar of the
// ascending history. ok is false only for an empty history; individual
// rules that lack enough bars vote neutral instead.
func Rate(bars []market.Bar) (Score, bool) {
	if len(bars) == 0 {
		return Score{}, false
	}

	n := len(bars)
	end := n - 1

	high := make([]float64, n)
	low := make([]float64, n)
	close := make([]float64, n)
	vol := make([]float64, n)
	for i, b := range bars {
		high[i] = b.High
		low[i] = b.Low
		close[i] = b.Close
		vol[i] = b.Volume
	}

	lastClose := close[end]

	maVotes := make([]int, 0, 15)
	maVote := func(value float64, ok bool) {
		maVotes = append(maVotes, priceVsValue(lastClose, value, ok))
	}
	for _, period := range []int{10, 20, 30, 50, 100, 200} {
		maVote(indicator.SMA(close, end, period))
		maVote(indicator.EMA(close, end, period))
	}
	maVote(indicator.VWMA(close, vol, end, 20))
	maVote(indicator.HMA(close, end, 9))
	maVote(indicator.IchimokuBase(high, low, end, 26))

	oscVotes := make([]int, 0, 11)

	rsi, rsiOK := indicator.RSI(close, end, 14)
	oscVotes = append(oscVotes, thresholdVote(rsi, rsiOK, 30, 70))

	stoch := indicator.Stochastic(high, low, close, end, 14, 3)
	oscVotes = append(oscVotes, stochVote(stoch))

	oscVotes = append(oscVotes, cciVote(indicator.CCI(high, low, close, end, 20)))

	adx, adxOK := indicator.ADX(high, low, close, end, 14)
	oscVotes = append(oscVotes, adxVote(adx, adxOK))

	oscVotes = append(oscVotes, signVote(indicator.AwesomeOscillator(high, low, end)))
	oscVotes = append(oscVotes, signVote(indicator.Momentum(close, end, 10)))

	macd, macdOK := indicator.MACD(close, end, 12, 26, 9)
	oscVotes = append(oscVotes, macdVote(macd, macdOK))

	oscVotes = append(oscVotes, stochVote(indicator.StochasticRSI(close, end, 14, 14, 3)))

	oscVotes = append(oscVotes, williamsVote(indicator.WilliamsR(high, low, close, end, 14)))

	bb, bbOK := indicator.BullBearPower(high, low, close, end, 13)
	oscVotes = append(oscVotes, bullBearVote(bb, bbOK))

	oscVotes = append(oscVotes, ultimateVote(indicator.UltimateOscillator(high, low, close, end, 7, 14, 28)))

	ma := mean(maVotes)
	osc := mean(oscVotes)
	return Score{MA: ma, Oscillator: osc, Overall: (ma + osc) / 2.0}, true
}

func mean(votes []int) float64 {
	sum := 0
	for _, v := range votes {
		sum += v
	}
	return float64(sum) / float64(len(votes))
}

// priceVsValue: buy when price sits above the average, sell when below.
func priceVsValue(price, value float64, ok bool) int {
	if !ok {
		return 0
	}
	switch {
	case price > value:
		return +1
	case price < value:
		return -1
	}
	return 0
}

func signVote(v float64, ok bool) int {
	if !ok {
		return 0
	}
	switch {
	case v > 0:
		return +1
	case v < 0:
		return -1
	}
	return 0
}

func thresholdVote(v float64, ok bool, buyBelow, sellAbove float64) int {
	if !ok {
		return 0
	}
	switch {
	case v < buyBelow:
		return +1
	case v > sellAbove:
		return -1
	}
	return 0
}

// stochVote: buy on an upward cross deep in oversold territory, sell on
// a downward cross deep in overbought territory.
func stochVote(s indicator.StochKD) int {
	if !s.HasK || !s.HasD {
		return 0
	}
	switch {
	case s.K < 20 && s.D < 20 && s.K > s.D:
		return +1
	case s.K > 80 && s.D > 80 && s.K < s.D:
		return -1
	}
	return 0
}

func cciVote(cci float64, ok bool) int {
	if !ok {
		return 0
	}
	switch {
	case cci < -100:
		return +1
	case cci > 100:
		return -1
	}
	return 0
}

// adxVote only votes when the trend is strong enough (ADX above 20),
// then follows whichever DI leg dominates.
func adxVote(p indicator.ADXPack, ok bool) int {
	if !ok || p.ADX <= 20 {
		return 0
	}
	switch {
	case p.PlusDI > p.MinusDI:
		return +1
	case p.PlusDI < p.MinusDI:
		return -1
	}
	return 0
}

func macdVote(p indicator.MACDPack, ok bool) int {
	if !ok || !p.HasSignal {
		return 0
	}
	switch {
	case p.MACD > p.Signal:
		return +1
	case p.MACD < p.Signal:
		return -1
	}
	return 0
}

func williamsVote(wr float64, ok bool) int {
	if !ok {
		return 0
	}
	switch {
	case wr < -80:
		return +1
	case wr > -20:
		return -1
	}
	return 0
}

func bullBearVote(bb indicator.BullBear, ok bool) int {
	if !ok {
		return 0
	}
	switch {
	case bb.Bull > 0 && bb.Bear > 0:
		return +1
	case bb.Bull < 0 && bb.Bear < 0:
		return -1
	}
	return 0
}

func ultimateVote(uo float64, ok bool) int {
	if !ok {
		return 0
	}
	switch {
	case uo > 70:
		return +1
	case uo < 30:
		return -1
	}
	return 0
}
