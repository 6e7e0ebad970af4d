package guard

import (
	"context"
	"fmt"
	"log"

	"github.com/wikiforge/spamguard/internal/change"
	"github.com/wikiforge/spamguard/internal/fields"
	"github.com/wikiforge/spamguard/internal/inspect"
	"github.com/wikiforge/spamguard/internal/registry"
)

// #region message-keys

// MessageKeySpam is the localizable key attached to spam validation errors.
const MessageKeySpam = "message.spam"

// #endregion message-keys

// #region options

// Options wires a Guard. Registry, Config, and Engine are required.
type Options struct {
	Registry *registry.Registry
	Config   ConfigProvider
	Engine   Engine

	// ContentField names the field that carries the primary content target;
	// it is classified with subject awareness. Defaults to "content".
	ContentField string
}

// #endregion options

// #region guard-struct

// Guard runs the interception pipeline between parameter binding and the
// main validation stage: decide whether the invocation is protected,
// extract the declared fields, score each one, and turn threshold breaches
// into field-attributed validation errors.
type Guard struct {
	registry     *registry.Registry
	config       ConfigProvider
	engine       Engine
	contentField string
}

// New creates a Guard from options.
func New(opts Options) (*Guard, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("new guard: nil registry")
	}
	if opts.Config == nil {
		return nil, fmt.Errorf("new guard: nil config provider")
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("new guard: nil engine")
	}
	contentField := opts.ContentField
	if contentField == "" {
		contentField = "content"
	}
	return &Guard{
		registry:     opts.Registry,
		config:       opts.Config,
		engine:       opts.Engine,
		contentField: contentField,
	}, nil
}

// #endregion guard-struct

// #region intercept

// Intercept runs one invocation through the protection pipeline.
//
// Spam findings are recorded into the result's error collection and never
// returned as a Go error. A returned error is a defect: an unregistered
// handler id, a plan retrieval failure, or a scoring failure. Defects
// terminate the invocation's normal flow; the caller must not treat them as
// an Allow.
func (g *Guard) Intercept(ctx context.Context, inv Invocation) (*Result, error) {
	info, err := g.registry.Lookup(inv.HandlerID)
	if err != nil {
		// Registry has no entry: internal configuration error, not a
		// validation failure.
		log.Printf("[GUARD] handler %q has no metadata entry: %v", inv.HandlerID, err)
		return nil, fmt.Errorf("intercept %q: %w", inv.HandlerID, err)
	}

	result := &Result{HandlerID: inv.HandlerID}
	if !info.Protected {
		return result, nil
	}

	extracted := fields.Extract(inv.Source, info.Fields)
	if len(extracted) == 0 {
		// Nothing resolvable to inspect.
		return result, nil
	}

	plan, err := g.config.InspectionPlan()
	if err != nil {
		return nil, fmt.Errorf("inspection plan: %w", err)
	}
	threshold := g.config.SpamThreshold()
	result.Threshold = threshold

	insp, err := g.engine.Begin(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("begin inspection: %w", err)
	}
	if ider, ok := insp.(interface{ ID() string }); ok {
		result.InspectionID = ider.ID()
	}

	for _, fv := range extracted {
		var ch change.Change
		if fv.Name == g.contentField {
			ch = change.PageChange(inv.Subject, fv.Value)
		} else {
			ch = change.Generic(fv.Value)
		}

		if err := insp.Inspect(fv.Value, ch); err != nil {
			return nil, fmt.Errorf("inspect field %q: %w", fv.Name, err)
		}

		// The score is cumulative inspection state, not just this field's
		// contribution: later fields are judged against the context earlier
		// fields built up.
		score := insp.Score(inspect.TopicSpam)

		// Lower scores mean higher suspicion, so a score at or below the
		// threshold flags the field. The direction is easy to invert by
		// accident; see the decision-rule tests.
		spam := score <= threshold
		if spam {
			result.Errors.Add(fv.Name, MessageKeySpam, fv.Name)
		}
		result.Fields = append(result.Fields, FieldOutcome{
			Field: fv.Name,
			Score: score,
			Spam:  spam,
		})
	}

	if !result.Allowed() {
		log.Printf("[GUARD] block handler=%s flagged=%d/%d threshold=%.2f",
			inv.HandlerID, len(result.Errors), len(extracted), threshold)
	}
	return result, nil
}

// #endregion intercept
