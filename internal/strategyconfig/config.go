// Package strategyconfig loads and validates the rotation strategy
// YAML. One file describes a full run: universe, scoring mode,
// rotation policy and backtest parameters.
package strategyconfig

import "time"

// Config는 로테이션 전략의 전체 설정
type Config struct {
	Meta     Meta     `yaml:"meta" json:"meta"`
	Universe Universe `yaml:"universe" json:"universe"`
	Scoring  Scoring  `yaml:"scoring" json:"scoring"`
	Rotation Rotation `yaml:"rotation" json:"rotation"`
	Backtest Backtest `yaml:"backtest" json:"backtest"`
}

// Meta 메타 정보
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// Universe: 어떤 종목 풀 위에서 돌릴지
type Universe struct {
	// File points at a universe file; Tokens lists tickers and index
	// keys inline. At least one must be set, both combine.
	File   string   `yaml:"file" json:"file"`
	Tokens []string `yaml:"tokens" json:"tokens"`

	Benchmark string `yaml:"benchmark" json:"benchmark"`
	Safety    string `yaml:"safety" json:"safety"`
}

// Scoring: 점수 산출 방식
type Scoring struct {
	Mode          string `yaml:"mode" json:"mode"` // momentum | return6m | technical
	LookbacksDays []int  `yaml:"lookbacks_days" json:"lookbacks_days"`
}

// Rotation: 종목 교체 정책
type Rotation struct {
	Speed              string `yaml:"speed" json:"speed"` // fast | slow
	TopN               int    `yaml:"top_n" json:"top_n"`
	KeepRankMultiplier int    `yaml:"keep_rank_multiplier" json:"keep_rank_multiplier"`
}

// Backtest 실행 파라미터
type Backtest struct {
	MAPeriod       int     `yaml:"ma_period" json:"ma_period"`
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital"`
	StartDate      string  `yaml:"start_date" json:"start_date"` // YYYY-MM-DD, optional
}

// RunSnapshot records the exact config a run used (재현성용)
type RunSnapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigYAML string    `json:"config_yaml"`
	StrategyID string    `json:"strategy_id"`
	CreatedAt  time.Time `json:"created_at"`
}
