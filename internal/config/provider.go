package config

import (
	"github.com/wikiforge/spamguard/internal/heuristics"
	"github.com/wikiforge/spamguard/internal/inspect"
)

// #region provider

// Provider implements the guard's ConfigProvider seam: it turns the enabled
// heuristic sections into an inspection plan (built once, reused across
// invocations) and exposes the spam threshold.
type Provider struct {
	cfg  *Config
	plan *inspect.Plan
}

// NewProvider builds a provider. history backs the change-rate check and
// may be nil when that check is disabled.
func NewProvider(cfg *Config, history heuristics.History) *Provider {
	return &Provider{cfg: cfg, plan: buildPlan(cfg, history)}
}

// InspectionPlan returns the cached plan.
func (p *Provider) InspectionPlan() (*inspect.Plan, error) {
	return p.plan, nil
}

// SpamThreshold returns the configured spam-score limit.
func (p *Provider) SpamThreshold() float32 {
	return p.cfg.Threshold
}

// #endregion provider

// #region build-plan

func buildPlan(cfg *Config, history heuristics.History) *inspect.Plan {
	var checks []inspect.WeightedInspector
	if cfg.LinkCount.Enable {
		checks = append(checks, inspect.WeightedInspector{
			Inspector: heuristics.LinkCount{MaxLinks: cfg.LinkCount.MaxLinks},
			Weight:    cfg.LinkCount.Weight,
		})
	}
	if cfg.Patterns.Enable {
		checks = append(checks, inspect.WeightedInspector{
			Inspector: heuristics.Patterns{Banned: cfg.Patterns.Banned},
			Weight:    cfg.Patterns.Weight,
		})
	}
	if cfg.Repetition.Enable {
		checks = append(checks, inspect.WeightedInspector{
			Inspector: heuristics.Repetition{
				MinTokens:    cfg.Repetition.MinTokens,
				MinDiversity: cfg.Repetition.MinDiversity,
			},
			Weight: cfg.Repetition.Weight,
		})
	}
	if cfg.ChangeRate.Enable {
		checks = append(checks, inspect.WeightedInspector{
			Inspector: heuristics.ChangeRate{
				History:    history,
				MaxChanges: cfg.ChangeRate.MaxChanges,
				Window:     cfg.ChangeRate.Window(),
			},
			Weight: cfg.ChangeRate.Weight,
		})
	}
	return inspect.NewPlan(checks...)
}

// #endregion build-plan
