// Package config loads and validates the scheduling engine's tunables,
// grounded on the original Python implementation's config_loader module:
// the same section names, the same defaults, and the same "warn on missing
// keys, fall back to defaults" behavior, expressed as Go structs loaded via
// gopkg.in/yaml.v3 (JSON is handled by the same unmarshaler via struct
// tags, since YAML is a JSON superset for our purposes).
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DemandMode selects how window demand is projected onto segments.
type DemandMode string

const (
	DemandModeHeadcount     DemandMode = "headcount"
	DemandModePersonMinutes DemandMode = "person_minutes"
)

// MidnightPolicy selects how overnight shifts map onto (day, role) timelines.
type MidnightPolicy string

const (
	MidnightPolicySplit  MidnightPolicy = "split"
	MidnightPolicyExtend MidnightPolicy = "extend"
)

// SkillMode selects where skill requirements live.
type SkillMode string

const (
	SkillModeByShift   SkillMode = "by_shift"
	SkillModeBySegment SkillMode = "by_segment"
)

// ObjectiveMode selects single weighted-sum vs. lexicographic cascade.
type ObjectiveMode string

const (
	ObjectiveModeWeighted ObjectiveMode = "weighted"
	ObjectiveModeLex      ObjectiveMode = "lex"
)

// PriorityKeys enumerates the recognized objective term keys, in the
// default priority order.
var PriorityKeys = []string{
	"unmet_window", "unmet_demand", "unmet_skill", "overstaff",
	"overtime", "external_use", "preferences", "fairness",
}

type Hours struct {
	MinWeekly float64 `yaml:"min_weekly"`
	MaxWeekly float64 `yaml:"max_weekly"`
	MaxDaily  float64 `yaml:"max_daily"`
	// MaxTotalOvertimeHours, when set, caps the sum of every contracted
	// employee's overtime across the whole model (spec §4.5 hard
	// constraint 10, "optional global overtime cap"). Nil disables it.
	MaxTotalOvertimeHours *float64 `yaml:"max_total_overtime_hours,omitempty"`
}

type Rest struct {
	MinBetweenShifts float64 `yaml:"min_between_shifts"`
}

type Skills struct {
	EnableSlack bool      `yaml:"enable_slack"`
	SkillMode   SkillMode `yaml:"skill_mode"`
}

type Windows struct {
	MidnightPolicy      MidnightPolicy `yaml:"midnight_policy"`
	WarnSlotsThreshold  int            `yaml:"warn_slots_threshold"`
	HardSlotsThreshold  int            `yaml:"hard_slots_threshold"`
}

type Shifts struct {
	DemandMode     DemandMode `yaml:"demand_mode"`
	CoverageSource string     `yaml:"coverage_source"`
}

type Penalties struct {
	UnmetWindow float64 `yaml:"unmet_window"`
	UnmetDemand float64 `yaml:"unmet_demand"`
	UnmetSkill  float64 `yaml:"unmet_skill"`
	Overstaff   float64 `yaml:"overstaff"`
	Overtime    float64 `yaml:"overtime"`
	ExternalUse float64 `yaml:"external_use"`
	Preferences float64 `yaml:"preferences"`
	Fairness    float64 `yaml:"fairness"`
}

type Objective struct {
	Mode     ObjectiveMode `yaml:"mode"`
	Priority []string      `yaml:"priority"`
}

type Random struct {
	Seed int64 `yaml:"seed"`
}

type Solver struct {
	TimeLimitSec float64 `yaml:"time_limit_sec"`
	MipGap       float64 `yaml:"mip_gap"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// Config is the fully resolved set of options recognized by the engine,
// matching spec.md §6's configuration table.
type Config struct {
	Hours     Hours     `yaml:"hours"`
	Rest      Rest      `yaml:"rest"`
	Skills    Skills    `yaml:"skills"`
	Windows   Windows   `yaml:"windows"`
	Shifts    Shifts    `yaml:"shifts"`
	Penalties Penalties `yaml:"penalties"`
	Objective Objective `yaml:"objective"`
	Random    Random    `yaml:"random"`
	Solver    Solver    `yaml:"solver"`
	Logging   Logging   `yaml:"logging"`
}

// Default returns the engine's built-in defaults, mirroring the Python
// loader's Pydantic field defaults.
func Default() Config {
	return Config{
		Hours:   Hours{MinWeekly: 0, MaxWeekly: 40, MaxDaily: 8},
		Rest:    Rest{MinBetweenShifts: 8},
		Skills:  Skills{EnableSlack: true, SkillMode: SkillModeByShift},
		Windows: Windows{MidnightPolicy: MidnightPolicySplit},
		Shifts:  Shifts{DemandMode: DemandModeHeadcount, CoverageSource: "windows"},
		Penalties: Penalties{
			UnmetWindow: 2.0, UnmetDemand: 1.0, UnmetSkill: 0.8,
			Overstaff: 0.15, Overtime: 0.30, ExternalUse: 0.25,
			Preferences: 0.33, Fairness: 0.05,
		},
		Objective: Objective{Mode: ObjectiveModeWeighted, Priority: append([]string{}, PriorityKeys...)},
		Random:    Random{Seed: 123},
		Logging:   Logging{Level: "INFO"},
	}
}

// Load reads a YAML or JSON configuration file at path, merging it over
// Default(). An empty path returns Default() unmodified and a nil report.
// Keys unknown to the schema are rejected by the strict decoder below; a
// supplied file that omits top-level sections keeps their defaults and
// names them in the returned MissingKeysReport.
func Load(path string) (Config, *MissingKeysReport, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	report := diffMissingKeys(data, path)
	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	return cfg, report, nil
}

// MissingKeysReport names config sections present in Default() but not
// supplied by the loaded file, mirroring the Python loader's
// _log_missing_keys diagnostic. Load returns a nil report when every
// section was supplied.
type MissingKeysReport struct {
	Missing []string
}

func diffMissingKeys(raw []byte, origin string) *MissingKeysReport {
	var provided map[string]interface{}
	if err := yaml.Unmarshal(raw, &provided); err != nil {
		return nil
	}
	var missing []string
	for _, section := range []string{"hours", "rest", "skills", "windows", "shifts", "penalties", "objective", "random", "solver", "logging"} {
		if _, ok := provided[section]; !ok {
			missing = append(missing, section)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingKeysReport{Missing: missing}
}

// Validate rejects semantically invalid configuration: unknown
// objective.priority keys, duplicate priority keys, unknown enum values,
// and max < min hour bounds.
func (c Config) Validate() error {
	if c.Hours.MaxWeekly < c.Hours.MinWeekly {
		return fmt.Errorf("config: hours.max_weekly (%v) must be >= hours.min_weekly (%v)", c.Hours.MaxWeekly, c.Hours.MinWeekly)
	}

	switch c.Shifts.DemandMode {
	case DemandModeHeadcount, DemandModePersonMinutes:
	default:
		return fmt.Errorf("config: shifts.demand_mode must be one of headcount|person_minutes, got %q", c.Shifts.DemandMode)
	}

	switch c.Windows.MidnightPolicy {
	case MidnightPolicySplit, MidnightPolicyExtend:
	default:
		return fmt.Errorf("config: windows.midnight_policy must be one of split|extend, got %q", c.Windows.MidnightPolicy)
	}

	switch c.Skills.SkillMode {
	case SkillModeByShift, SkillModeBySegment:
	default:
		return fmt.Errorf("config: skills.skill_mode must be one of by_shift|by_segment, got %q", c.Skills.SkillMode)
	}

	switch c.Objective.Mode {
	case ObjectiveModeWeighted, ObjectiveModeLex:
	default:
		return fmt.Errorf("config: objective.mode must be one of weighted|lex, got %q", c.Objective.Mode)
	}

	seen := map[string]struct{}{}
	known := map[string]struct{}{}
	for _, k := range PriorityKeys {
		known[k] = struct{}{}
	}
	for _, key := range c.Objective.Priority {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("config: objective.priority contains unrecognized key %q", key)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("config: objective.priority contains duplicate key %q", key)
		}
		seen[key] = struct{}{}
	}

	return nil
}
