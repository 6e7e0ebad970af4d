package heuristics

import (
	"strings"

	"github.com/wikiforge/spamguard/internal/change"
	"github.com/wikiforge/spamguard/internal/inspect"
)

// #region link-count

// LinkCount penalizes submissions that carry more links than a cap.
// Submissions at or under the cap earn a small trust reward.
type LinkCount struct {
	MaxLinks int
}

// Name implements inspect.Inspector.
func (l LinkCount) Name() string { return "linkcount" }

// Topic implements inspect.Inspector.
func (l LinkCount) Topic() inspect.Topic { return inspect.TopicSpam }

// Inspect implements inspect.Inspector.
func (l LinkCount) Inspect(value string, ch change.Change) (float32, string, error) {
	links := countLinks(value)
	if links <= l.MaxLinks {
		return 0.25, "link count within cap", nil
	}
	over := links - l.MaxLinks
	return -0.5 * float32(over), "link count exceeds cap", nil
}

// countLinks counts http/https URL occurrences.
func countLinks(text string) int {
	lower := strings.ToLower(text)
	return strings.Count(lower, "http://") + strings.Count(lower, "https://")
}

// #endregion link-count

// #region patterns

// Patterns penalizes submissions containing any banned substring.
// Matching is case-insensitive.
type Patterns struct {
	Banned []string
}

// Name implements inspect.Inspector.
func (p Patterns) Name() string { return "patterns" }

// Topic implements inspect.Inspector.
func (p Patterns) Topic() inspect.Topic { return inspect.TopicSpam }

// Inspect implements inspect.Inspector.
func (p Patterns) Inspect(value string, ch change.Change) (float32, string, error) {
	lower := strings.ToLower(value)
	for _, banned := range p.Banned {
		if banned == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(banned)) {
			return -1.0, "matched banned pattern: " + banned, nil
		}
	}
	return 0.25, "no banned patterns", nil
}

// #endregion patterns

// #region repetition

// Repetition penalizes low lexical diversity: long submissions made of a
// handful of repeated tokens are a common spam shape. Short submissions are
// passed through neutrally since diversity is meaningless there.
type Repetition struct {
	MinTokens    int     // below this, no judgment (default 8)
	MinDiversity float32 // unique/total ratio under this is penalized (default 0.3)
}

// Name implements inspect.Inspector.
func (r Repetition) Name() string { return "repetition" }

// Topic implements inspect.Inspector.
func (r Repetition) Topic() inspect.Topic { return inspect.TopicSpam }

// Inspect implements inspect.Inspector.
func (r Repetition) Inspect(value string, ch change.Change) (float32, string, error) {
	minTokens := r.MinTokens
	if minTokens <= 0 {
		minTokens = 8
	}
	minDiversity := r.MinDiversity
	if minDiversity <= 0 {
		minDiversity = 0.3
	}

	tokens := tokenize(value)
	if len(tokens) < minTokens {
		return 0, "too short to judge", nil
	}

	unique := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		unique[t] = struct{}{}
	}
	diversity := float32(len(unique)) / float32(len(tokens))
	if diversity < minDiversity {
		return -0.75, "lexical diversity below threshold", nil
	}
	return 0.25, "lexical diversity normal", nil
}

// tokenize splits text into lowercase whitespace-delimited tokens.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// #endregion repetition
