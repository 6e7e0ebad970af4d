package guard

import (
	"context"

	"github.com/wikiforge/spamguard/internal/inspect"
)

// #region default-engine

type defaultEngine struct {
	engine *inspect.Engine
}

// DefaultEngine adapts the built-in scoring engine to the Engine seam.
func DefaultEngine() Engine {
	return defaultEngine{engine: inspect.NewEngine()}
}

// Begin implements Engine.
func (d defaultEngine) Begin(ctx context.Context, plan *inspect.Plan) (Inspection, error) {
	return d.engine.Begin(ctx, plan)
}

// #endregion default-engine
