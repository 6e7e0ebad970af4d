package inspect

import (
	"context"
	"fmt"
	"testing"

	"github.com/wikiforge/spamguard/internal/change"
)

// #region fakes

type fixedInspector struct {
	name  string
	delta float32
	err   error
}

func (f fixedInspector) Name() string { return f.name }
func (f fixedInspector) Topic() Topic { return TopicSpam }
func (f fixedInspector) Inspect(value string, ch change.Change) (float32, string, error) {
	return f.delta, "fixed", f.err
}

// #endregion fakes

func TestBeginRequiresPlan(t *testing.T) {
	e := NewEngine()
	if _, err := e.Begin(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil plan")
	}
}

func TestInspectionIDsAreUnique(t *testing.T) {
	e := NewEngine()
	plan := NewPlan()
	a, err := e.Begin(context.Background(), plan)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	b, _ := e.Begin(context.Background(), plan)
	if a.ID() == b.ID() {
		t.Fatal("expected distinct inspection ids")
	}
}

func TestScoresAccumulateAcrossInspects(t *testing.T) {
	plan := NewPlan(WeightedInspector{Inspector: fixedInspector{name: "a", delta: -0.4}, Weight: 1.0})
	insp, _ := NewEngine().Begin(context.Background(), plan)

	if err := insp.Inspect("first", change.Generic("first")); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if got := insp.Score(TopicSpam); got != -0.4 {
		t.Fatalf("expected -0.4 after first field, got %.4f", got)
	}

	if err := insp.Inspect("second", change.Generic("second")); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if got := insp.Score(TopicSpam); got != -0.8 {
		t.Fatalf("expected -0.8 after second field, got %.4f", got)
	}
}

func TestWeightsApplied(t *testing.T) {
	plan := NewPlan(WeightedInspector{Inspector: fixedInspector{name: "a", delta: -1.0}, Weight: 0.5})
	insp, _ := NewEngine().Begin(context.Background(), plan)

	if err := insp.Inspect("text", change.Generic("text")); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if got := insp.Score(TopicSpam); got != -0.5 {
		t.Fatalf("expected weighted -0.5, got %.4f", got)
	}
}

func TestPlanRunsInspectorsInOrder(t *testing.T) {
	plan := NewPlan(
		WeightedInspector{Inspector: fixedInspector{name: "first", delta: 0.1}, Weight: 1.0},
		WeightedInspector{Inspector: fixedInspector{name: "second", delta: 0.2}, Weight: 1.0},
	)
	insp, _ := NewEngine().Begin(context.Background(), plan)

	if err := insp.Inspect("text", change.Generic("text")); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	findings := insp.Findings()
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	if findings[0].Inspector != "first" || findings[1].Inspector != "second" {
		t.Fatalf("expected plan order, got %s then %s", findings[0].Inspector, findings[1].Inspector)
	}
}

func TestInspectorErrorAborts(t *testing.T) {
	plan := NewPlan(
		WeightedInspector{Inspector: fixedInspector{name: "bad", err: fmt.Errorf("boom")}, Weight: 1.0},
	)
	insp, _ := NewEngine().Begin(context.Background(), plan)

	if err := insp.Inspect("text", change.Generic("text")); err == nil {
		t.Fatal("expected inspector error to propagate")
	}
}

func TestUnknownTopicScoresZero(t *testing.T) {
	insp, _ := NewEngine().Begin(context.Background(), NewPlan())
	if got := insp.Score(Topic("other")); got != 0 {
		t.Fatalf("expected 0 for unknown topic, got %.4f", got)
	}
}
