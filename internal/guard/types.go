package guard

import (
	"context"

	"github.com/wikiforge/spamguard/internal/change"
	"github.com/wikiforge/spamguard/internal/fields"
	"github.com/wikiforge/spamguard/internal/inspect"
)

// #region invocation

// Invocation is one protected action invocation as handed over by the
// dispatch layer: the resolved handler id, the live instance's fields, and
// the subject being modified (used for page-aware change classification).
type Invocation struct {
	HandlerID string
	Source    fields.Source
	Subject   string
}

// #endregion invocation

// #region engine-seam

// Inspection is the per-invocation scoring context the engine hands back.
// Inspect mutates the inspection's internal score state; Score reads the
// accumulated score for a topic.
type Inspection interface {
	Inspect(value string, ch change.Change) error
	Score(topic inspect.Topic) float32
}

// Engine mints a fresh Inspection bound to a request context and plan.
// The seam exists so alternative scoring strategies are swappable without
// touching the orchestrator.
type Engine interface {
	Begin(ctx context.Context, plan *inspect.Plan) (Inspection, error)
}

// ConfigProvider supplies the inspection plan and the spam-score threshold.
type ConfigProvider interface {
	InspectionPlan() (*inspect.Plan, error)
	SpamThreshold() float32
}

// #endregion engine-seam

// #region validation-errors

// ValidationError is a field-attributed, localizable failure record.
// MessageKey is resolved to user-facing text by the presentation layer.
type ValidationError struct {
	Field      string
	MessageKey string
	Args       []any
}

// ValidationErrors is the append-only error sink for one invocation.
// Entries follow field declaration order so user-facing messages are
// deterministic.
type ValidationErrors []ValidationError

// Add appends a field-attributed error.
func (v *ValidationErrors) Add(field, messageKey string, args ...any) {
	*v = append(*v, ValidationError{Field: field, MessageKey: messageKey, Args: args})
}

// #endregion validation-errors

// #region result

// FieldOutcome records the cumulative spam score observed right after one
// field was inspected, and whether that score flagged the field.
type FieldOutcome struct {
	Field string
	Score float32
	Spam  bool
}

// Result is the orchestration outcome for one invocation. The caller
// interprets a non-empty error collection as cause to halt the pipeline.
type Result struct {
	HandlerID    string
	InspectionID string
	Threshold    float32
	Fields       []FieldOutcome
	Errors       ValidationErrors
}

// Allowed reports whether the invocation may proceed to the next pipeline
// stage.
func (r *Result) Allowed() bool {
	return len(r.Errors) == 0
}

// #endregion result
