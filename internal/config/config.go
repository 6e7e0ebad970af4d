package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// #region sections

// LinkCountSection configures the link-count check.
type LinkCountSection struct {
	Enable   bool    `toml:"enable"`
	Weight   float32 `toml:"weight"`
	MaxLinks int     `toml:"max_links"`
}

// PatternsSection configures the banned-pattern check.
type PatternsSection struct {
	Enable bool     `toml:"enable"`
	Weight float32  `toml:"weight"`
	Banned []string `toml:"banned"`
}

// RepetitionSection configures the lexical-diversity check.
type RepetitionSection struct {
	Enable       bool    `toml:"enable"`
	Weight       float32 `toml:"weight"`
	MinTokens    int     `toml:"min_tokens"`
	MinDiversity float32 `toml:"min_diversity"`
}

// ChangeRateSection configures the per-subject change-rate check.
type ChangeRateSection struct {
	Enable     bool    `toml:"enable"`
	Weight     float32 `toml:"weight"`
	MaxChanges int     `toml:"max_changes"`
	WindowMS   int     `toml:"window_ms"`
}

// Window returns the configured rate window as a duration.
func (c ChangeRateSection) Window() time.Duration {
	return time.Duration(c.WindowMS) * time.Millisecond
}

// #endregion sections

// #region config

// Config is the full spamguard configuration.
type Config struct {
	// Threshold is the spam-score limit: a cumulative score at or below it
	// flags the field. Higher scores mean more trustworthy content.
	Threshold float32 `toml:"threshold"`

	// ContentField names the field classified with subject awareness.
	ContentField string `toml:"content_field"`

	// AuditDB is the path of the SQLite inspection log.
	AuditDB string `toml:"audit_db"`

	LinkCount  LinkCountSection  `toml:"linkcount"`
	Patterns   PatternsSection   `toml:"patterns"`
	Repetition RepetitionSection `toml:"repetition"`
	ChangeRate ChangeRateSection `toml:"changerate"`
}

// DefaultConfig returns the defaults used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Threshold:    0.0,
		ContentField: "content",
		AuditDB:      "spamguard.db",
		LinkCount: LinkCountSection{
			Enable:   true,
			Weight:   1.0,
			MaxLinks: 10,
		},
		Patterns: PatternsSection{
			Enable: true,
			Weight: 1.0,
		},
		Repetition: RepetitionSection{
			Enable:       true,
			Weight:       0.5,
			MinTokens:    8,
			MinDiversity: 0.3,
		},
		ChangeRate: ChangeRateSection{
			Enable:     false,
			Weight:     1.0,
			MaxChanges: 10,
			WindowMS:   3600000,
		},
	}
}

// #endregion config

// #region load

// Load reads a TOML config file on top of the defaults, then applies
// environment overrides (SPAMGUARD_THRESHOLD, SPAMGUARD_DB). An empty path
// yields defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SPAMGUARD_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Threshold = float32(f)
		}
	}
	if v := os.Getenv("SPAMGUARD_DB"); v != "" {
		cfg.AuditDB = v
	}
}

// #endregion load
