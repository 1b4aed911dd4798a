package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/averhoef/thesisflow/internal/domain"
)

// FileConfig is the TOML policy file. All fields are optional; unset
// fields keep their defaults.
type FileConfig struct {
	Planning PlanningConfig `toml:"planning"`
	Tracking TrackingConfig `toml:"tracking"`
}

type PlanningConfig struct {
	BufferLow    *float64 `toml:"buffer-low"`
	BufferMedium *float64 `toml:"buffer-medium"`
	BufferHigh   *float64 `toml:"buffer-high"`
	WorkDays     []string `toml:"work-days"`
}

type TrackingConfig struct {
	BehindThreshold      *float64 `toml:"behind-threshold"`
	GoodThreshold        *float64 `toml:"good-threshold"`
	LookbackDays         *int     `toml:"lookback-days"`
	DaysBehindTrigger    *int     `toml:"days-behind-trigger"`
	LowRateSustainedDays *int     `toml:"low-rate-sustained-days"`
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// LoadPolicy reads the policy file at path and merges it over the default
// policy. A missing file is not an error; a malformed one is.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return applyEnv(policy), nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return applyEnv(policy), nil
		}
		return policy, fmt.Errorf("statting policy file: %w", err)
	}

	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return policy, fmt.Errorf("decoding policy file: %w", err)
	}

	if cfg.Planning.BufferLow != nil {
		policy.BufferFractions[domain.ProcrastinationLow] = *cfg.Planning.BufferLow
	}
	if cfg.Planning.BufferMedium != nil {
		policy.BufferFractions[domain.ProcrastinationMedium] = *cfg.Planning.BufferMedium
	}
	if cfg.Planning.BufferHigh != nil {
		policy.BufferFractions[domain.ProcrastinationHigh] = *cfg.Planning.BufferHigh
	}
	if len(cfg.Planning.WorkDays) > 0 {
		days := make([]time.Weekday, 0, len(cfg.Planning.WorkDays))
		for _, name := range cfg.Planning.WorkDays {
			d, ok := weekdayNames[name]
			if !ok {
				return policy, fmt.Errorf("unknown weekday %q in work-days", name)
			}
			days = append(days, d)
		}
		policy.WorkDays = days
	}

	if cfg.Tracking.BehindThreshold != nil {
		policy.BehindThreshold = *cfg.Tracking.BehindThreshold
	}
	if cfg.Tracking.GoodThreshold != nil {
		policy.GoodThreshold = *cfg.Tracking.GoodThreshold
	}
	if cfg.Tracking.LookbackDays != nil {
		policy.LookbackDays = *cfg.Tracking.LookbackDays
	}
	if cfg.Tracking.DaysBehindTrigger != nil {
		policy.DaysBehindTrigger = *cfg.Tracking.DaysBehindTrigger
	}
	if cfg.Tracking.LowRateSustainedDays != nil {
		policy.LowRateSustainedDays = *cfg.Tracking.LowRateSustainedDays
	}

	return applyEnv(policy), nil
}

// applyEnv layers THESISFLOW_* environment overrides over the loaded
// policy. Env wins over the file.
func applyEnv(policy Policy) Policy {
	if v := os.Getenv("THESISFLOW_BEHIND_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			policy.BehindThreshold = f
		}
	}
	if v := os.Getenv("THESISFLOW_GOOD_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			policy.GoodThreshold = f
		}
	}
	if v := os.Getenv("THESISFLOW_LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			policy.LookbackDays = n
		}
	}
	if v := os.Getenv("THESISFLOW_DAYS_BEHIND_TRIGGER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			policy.DaysBehindTrigger = n
		}
	}
	return policy
}
