package strategyconfig

import (
	"fmt"
	"time"

	"github.com/wonny/rotation/internal/scoring"
	"github.com/wonny/rotation/internal/selection"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	// === Universe ===
	if cfg.Universe.File == "" && len(cfg.Universe.Tokens) == 0 {
		return ValidationError{"universe", "either file or tokens is required"}
	}
	if cfg.Universe.Benchmark == "" {
		return ValidationError{"universe.benchmark", "required"}
	}
	if cfg.Universe.Safety == "" {
		return ValidationError{"universe.safety", "required"}
	}

	// === Scoring ===
	switch scoring.Mode(cfg.Scoring.Mode) {
	case scoring.ModeMomentum, scoring.ModeReturn6M, scoring.ModeTechnical:
	default:
		return ValidationError{"scoring.mode", "must be momentum, return6m or technical"}
	}
	for i, lb := range cfg.Scoring.LookbacksDays {
		if lb <= 0 {
			return ValidationError{
				Field:   fmt.Sprintf("scoring.lookbacks_days[%d]", i),
				Message: "must be > 0",
			}
		}
	}

	// === Rotation ===
	if !selection.Speed(cfg.Rotation.Speed).Valid() {
		return ValidationError{"rotation.speed", "must be fast or slow"}
	}
	if cfg.Rotation.TopN < 1 {
		return ValidationError{"rotation.top_n", "must be >= 1"}
	}
	if selection.Speed(cfg.Rotation.Speed) == selection.Slow && cfg.Rotation.KeepRankMultiplier < 1 {
		return ValidationError{"rotation.keep_rank_multiplier", "must be >= 1 for slow rotation"}
	}

	// === Backtest ===
	if cfg.Backtest.MAPeriod < 1 {
		return ValidationError{"backtest.ma_period", "must be >= 1"}
	}
	if cfg.Backtest.InitialCapital <= 0 {
		return ValidationError{"backtest.initial_capital", "must be > 0"}
	}
	if cfg.Backtest.StartDate != "" {
		if _, err := time.Parse("2006-01-02", cfg.Backtest.StartDate); err != nil {
			return ValidationError{"backtest.start_date", "must be YYYY-MM-DD"}
		}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	// 짧은 MA는 위험 판단이 자주 뒤집힘
	if cfg.Backtest.MAPeriod < 50 {
		warnings = append(warnings, Warning{
			Code:    "SHORT_MA_PERIOD",
			Message: fmt.Sprintf("ma_period=%d: 리스크 온/오프 전환이 잦아질 수 있음", cfg.Backtest.MAPeriod),
		})
	}

	// 긴 lookback은 히스토리 요구량을 키움
	for _, lb := range cfg.Scoring.LookbacksDays {
		if lb > 504 {
			warnings = append(warnings, Warning{
				Code:    "LONG_LOOKBACK",
				Message: fmt.Sprintf("lookback %d일: 상장 기간이 짧은 종목은 점수에서 제외됨", lb),
			})
			break
		}
	}

	// slow인데 multiplier=1이면 사실상 fast와 동일
	if selection.Speed(cfg.Rotation.Speed) == selection.Slow && cfg.Rotation.KeepRankMultiplier == 1 {
		warnings = append(warnings, Warning{
			Code:    "SLOW_WITHOUT_SLACK",
			Message: "keep_rank_multiplier=1: slow 회전이 fast와 거의 같게 동작함",
		})
	}

	return warnings
}
