package heuristics

import (
	"fmt"
	"time"

	"github.com/wikiforge/spamguard/internal/change"
	"github.com/wikiforge/spamguard/internal/inspect"
)

// #region history

// History answers how often a subject has been modified recently. The audit
// store implements it; tests inject fakes.
type History interface {
	CountRecent(subject string, window time.Duration) (int, error)
}

// #endregion history

// #region change-rate

// ChangeRate penalizes subjects that are being modified faster than the
// configured rate. Only page changes are judged; generic text has no
// subject to rate-limit against.
type ChangeRate struct {
	History    History
	MaxChanges int
	Window     time.Duration
}

// Name implements inspect.Inspector.
func (c ChangeRate) Name() string { return "changerate" }

// Topic implements inspect.Inspector.
func (c ChangeRate) Topic() inspect.Topic { return inspect.TopicSpam }

// Inspect implements inspect.Inspector.
func (c ChangeRate) Inspect(value string, ch change.Change) (float32, string, error) {
	if ch.Kind != change.KindPage || ch.Subject == "" || c.History == nil {
		return 0, "no subject to rate", nil
	}
	count, err := c.History.CountRecent(ch.Subject, c.Window)
	if err != nil {
		return 0, "", fmt.Errorf("change rate history: %w", err)
	}
	if count > c.MaxChanges {
		return -1.0, fmt.Sprintf("subject %s changed %d times in window", ch.Subject, count), nil
	}
	return 0, "change rate within cap", nil
}

// #endregion change-rate
