// Package intent classifies chat messages before retrieval: configured
// keyword intents and greeting-only messages.
package intent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"domainbot/internal/contextutil"
	"domainbot/internal/storage"
)

// MatchIntent returns the first enabled intent with a keyword contained in
// message, trying intents by priority descending then id descending.
// Matching is a case-insensitive literal substring test.
func MatchIntent(intents []storage.Intent, message string) *storage.Intent {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return nil
	}

	candidates := make([]storage.Intent, 0, len(intents))
	for _, in := range intents {
		if in.Enabled {
			candidates = append(candidates, in)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].ID > candidates[j].ID
	})

	for i := range candidates {
		for _, kw := range Keywords(candidates[i].Keywords) {
			if strings.Contains(msg, kw) {
				return &candidates[i]
			}
		}
	}
	return nil
}

// Keywords splits a comma-separated keyword list into trimmed, lowercased,
// non-empty keywords.
func Keywords(list string) []string {
	var out []string
	for _, kw := range strings.Split(list, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// Matcher resolves intents and greetings from storage.
type Matcher struct {
	intents         storage.IntentStore
	greetings       storage.GreetingStore
	defaultGreeting string
}

// NewMatcher creates a new Matcher. defaultGreeting is used when no
// greeting is enabled.
func NewMatcher(intents storage.IntentStore, greetings storage.GreetingStore, defaultGreeting string) *Matcher {
	return &Matcher{
		intents:         intents,
		greetings:       greetings,
		defaultGreeting: defaultGreeting,
	}
}

// Match returns the intent message triggers, or nil.
func (m *Matcher) Match(ctx context.Context, message string) (*storage.Intent, error) {
	intents, err := m.intents.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list intents: %w", err)
	}

	matched := MatchIntent(intents, message)
	if matched != nil {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "intent matched",
			"intent", matched.Name,
			"intent_id", matched.ID,
		)
	}
	return matched, nil
}

// Greeting returns the highest-priority enabled greeting, falling back to
// the configured default.
func (m *Matcher) Greeting(ctx context.Context) (string, error) {
	g, err := m.greetings.Top(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return m.defaultGreeting, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load greeting: %w", err)
	}
	return g.Message, nil
}
