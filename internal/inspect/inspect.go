package inspect

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wikiforge/spamguard/internal/change"
)

// #region inspection

// Inspection is a per-invocation execution context binding a plan to a
// request. Scores accumulate across fields of the same invocation, so later
// fields are judged against the context earlier fields built up. Not safe
// for sharing across invocations or goroutines.
type Inspection struct {
	id       string
	ctx      context.Context
	plan     *Plan
	scores   map[Topic]float32
	findings []Finding
}

// ID returns the inspection's unique id.
func (i *Inspection) ID() string { return i.id }

// Score returns the accumulated score for a topic. Unknown topics score 0.
func (i *Inspection) Score(topic Topic) float32 {
	return i.scores[topic]
}

// Findings returns every inspector contribution so far, in execution order.
func (i *Inspection) Findings() []Finding {
	return i.findings
}

// #endregion inspection

// #region inspect

// Inspect runs every check in the plan against one field value, folding the
// weighted deltas into the per-topic scores. Any inspector error aborts the
// inspection; partial scores from a failed pass must not be trusted.
func (i *Inspection) Inspect(value string, ch change.Change) error {
	for _, wi := range i.plan.Inspectors() {
		delta, reason, err := wi.Inspector.Inspect(value, ch)
		if err != nil {
			return fmt.Errorf("inspector %s: %w", wi.Inspector.Name(), err)
		}
		weighted := delta * wi.Weight
		topic := wi.Inspector.Topic()
		i.scores[topic] += weighted
		i.findings = append(i.findings, Finding{
			Inspector: wi.Inspector.Name(),
			Topic:     topic,
			Delta:     weighted,
			Reason:    reason,
		})
	}
	return nil
}

// #endregion inspect

// #region engine

// Engine mints fresh Inspection contexts. It is the default implementation
// of the guard's engine seam; alternative scoring strategies can replace it
// without touching the orchestrator.
type Engine struct{}

// NewEngine creates the built-in engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Begin creates a fresh Inspection bound to the request context and plan.
func (e *Engine) Begin(ctx context.Context, plan *Plan) (*Inspection, error) {
	if plan == nil {
		return nil, fmt.Errorf("begin inspection: nil plan")
	}
	return &Inspection{
		id:     uuid.New().String(),
		ctx:    ctx,
		plan:   plan,
		scores: make(map[Topic]float32),
	}, nil
}

// #endregion engine
