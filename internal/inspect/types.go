package inspect

import "github.com/wikiforge/spamguard/internal/change"

// #region topic

// Topic names an inspection score bucket.
type Topic string

// TopicSpam is the score bucket the guard's decision rule reads.
const TopicSpam Topic = "spam"

// #endregion topic

// #region inspector

// Inspector is one pluggable content check. Inspect returns a score delta
// for its topic: positive deltas mean the content looks trustworthy,
// negative deltas mean suspicion. The reason string is kept for audit.
type Inspector interface {
	Name() string
	Topic() Topic
	Inspect(value string, ch change.Change) (delta float32, reason string, err error)
}

// #endregion inspector

// #region plan

// WeightedInspector pairs an inspector with its plan weight.
type WeightedInspector struct {
	Inspector Inspector
	Weight    float32
}

// Plan is the ordered set of checks an Inspection runs. Owned by the engine
// configuration; read-only once built.
type Plan struct {
	inspectors []WeightedInspector
}

// NewPlan builds a plan from weighted inspectors, preserving order.
func NewPlan(inspectors ...WeightedInspector) *Plan {
	cp := make([]WeightedInspector, len(inspectors))
	copy(cp, inspectors)
	return &Plan{inspectors: cp}
}

// Inspectors returns the plan's checks in execution order.
func (p *Plan) Inspectors() []WeightedInspector {
	return p.inspectors
}

// #endregion plan

// #region finding

// Finding records one inspector's contribution to an inspection.
type Finding struct {
	Inspector string
	Topic     Topic
	Delta     float32 // weighted delta applied to the topic score
	Reason    string
}

// #endregion finding
