package heuristics

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/wikiforge/spamguard/internal/change"
)

func TestLinkCountWithinCap(t *testing.T) {
	l := LinkCount{MaxLinks: 2}
	delta, _, err := l.Inspect("see https://example.org and http://example.net", change.Generic(""))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta <= 0 {
		t.Fatalf("expected trust reward, got %.4f", delta)
	}
}

func TestLinkCountOverCap(t *testing.T) {
	l := LinkCount{MaxLinks: 1}
	text := "https://a.example https://b.example https://c.example"
	delta, _, err := l.Inspect(text, change.Generic(""))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta != -1.0 {
		t.Fatalf("expected -0.5 per excess link (2 over), got %.4f", delta)
	}
}

func TestPatternsMatchIsCaseInsensitive(t *testing.T) {
	p := Patterns{Banned: []string{"cheap pills"}}
	delta, reason, err := p.Inspect("Buy CHEAP PILLS now", change.Generic(""))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta != -1.0 {
		t.Fatalf("expected -1.0 on match, got %.4f", delta)
	}
	if !strings.Contains(reason, "cheap pills") {
		t.Fatalf("reason should name the pattern, got %q", reason)
	}
}

func TestPatternsNoMatch(t *testing.T) {
	p := Patterns{Banned: []string{"cheap pills"}}
	delta, _, err := p.Inspect("a perfectly normal sentence", change.Generic(""))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta <= 0 {
		t.Fatalf("expected trust reward, got %.4f", delta)
	}
}

func TestPatternsIgnoresEmptyEntries(t *testing.T) {
	p := Patterns{Banned: []string{""}}
	delta, _, err := p.Inspect("anything", change.Generic(""))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta < 0 {
		t.Fatalf("empty pattern must not match, got %.4f", delta)
	}
}

func TestRepetitionShortTextIsNeutral(t *testing.T) {
	r := Repetition{}
	delta, _, err := r.Inspect("just a few words", change.Generic(""))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta != 0 {
		t.Fatalf("short text must be neutral, got %.4f", delta)
	}
}

func TestRepetitionLowDiversityPenalized(t *testing.T) {
	r := Repetition{}
	text := strings.Repeat("buy now ", 20)
	delta, _, err := r.Inspect(text, change.Generic(""))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta >= 0 {
		t.Fatalf("expected penalty for repeated tokens, got %.4f", delta)
	}
}

func TestRepetitionNormalTextRewarded(t *testing.T) {
	r := Repetition{}
	text := "this sentence uses a reasonable variety of distinct words overall today"
	delta, _, err := r.Inspect(text, change.Generic(""))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta <= 0 {
		t.Fatalf("expected reward for diverse text, got %.4f", delta)
	}
}

// #region change-rate

type fakeHistory struct {
	count int
	err   error
}

func (f fakeHistory) CountRecent(subject string, window time.Duration) (int, error) {
	return f.count, f.err
}

func TestChangeRateIgnoresGenericChanges(t *testing.T) {
	c := ChangeRate{History: fakeHistory{count: 100}, MaxChanges: 1, Window: time.Hour}
	delta, _, err := c.Inspect("text", change.Generic("text"))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta != 0 {
		t.Fatalf("generic change has no subject to rate, got %.4f", delta)
	}
}

func TestChangeRateOverCap(t *testing.T) {
	c := ChangeRate{History: fakeHistory{count: 5}, MaxChanges: 3, Window: time.Hour}
	delta, _, err := c.Inspect("text", change.PageChange("Main", "text"))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta != -1.0 {
		t.Fatalf("expected -1.0 over cap, got %.4f", delta)
	}
}

func TestChangeRateWithinCap(t *testing.T) {
	c := ChangeRate{History: fakeHistory{count: 1}, MaxChanges: 3, Window: time.Hour}
	delta, _, err := c.Inspect("text", change.PageChange("Main", "text"))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta != 0 {
		t.Fatalf("expected neutral within cap, got %.4f", delta)
	}
}

func TestChangeRateHistoryErrorPropagates(t *testing.T) {
	c := ChangeRate{History: fakeHistory{err: fmt.Errorf("db gone")}, MaxChanges: 3, Window: time.Hour}
	if _, _, err := c.Inspect("text", change.PageChange("Main", "text")); err == nil {
		t.Fatal("expected history error to propagate")
	}
}

func TestChangeRateNilHistoryIsNeutral(t *testing.T) {
	c := ChangeRate{MaxChanges: 3, Window: time.Hour}
	delta, _, err := c.Inspect("text", change.PageChange("Main", "text"))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if delta != 0 {
		t.Fatalf("expected neutral with nil history, got %.4f", delta)
	}
}

// #endregion change-rate
