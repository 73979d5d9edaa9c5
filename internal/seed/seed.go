// Package seed loads operator-authored YAML seed files into the database.
//
// A seed file may carry any of four sections:
//
//	kb:
//	  - question: ساعات کاری شما چیست؟
//	    answer: شنبه تا چهارشنبه از ۹ تا ۱۷
//	intents:
//	  - name: hours
//	    keywords: [ساعت کاری, ساعات کاری]
//	    response: شنبه تا چهارشنبه از ۹ تا ۱۷
//	    priority: 10
//	greetings:
//	  - message: سلام! چطور می‌تونم کمکتون کنم؟
//	sources:
//	  - base_url: https://example.com
//
// Applying a file is idempotent: entries are matched by question, intent
// name, greeting message and base URL, and only differing rows are written.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"domainbot/internal/service"
	"domainbot/internal/storage"
)

// File is the parsed content of a seed file.
type File struct {
	KB        []QA       `yaml:"kb"`
	Intents   []Intent   `yaml:"intents"`
	Greetings []Greeting `yaml:"greetings"`
	Sources   []Source   `yaml:"sources"`
}

type QA struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Intent keywords are listed individually and stored comma-separated.
type Intent struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
	Enabled  *bool    `yaml:"enabled"`
	Priority int      `yaml:"priority"`
}

type Greeting struct {
	Message  string `yaml:"message"`
	Enabled  *bool  `yaml:"enabled"`
	Priority int    `yaml:"priority"`
}

type Source struct {
	BaseURL string `yaml:"base_url"`
	Enabled *bool  `yaml:"enabled"`
}

// Load reads and validates the seed file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates seed YAML. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	for i := range f.KB {
		q := &f.KB[i]
		q.Question, q.Answer = strings.TrimSpace(q.Question), strings.TrimSpace(q.Answer)
		if q.Question == "" || q.Answer == "" {
			return fmt.Errorf("kb[%d]: question and answer are required", i)
		}
	}
	for i := range f.Intents {
		in := &f.Intents[i]
		in.Name, in.Response = strings.TrimSpace(in.Name), strings.TrimSpace(in.Response)
		if in.Name == "" || in.Response == "" {
			return fmt.Errorf("intents[%d]: name and response are required", i)
		}
		if in.keywords() == "" {
			return fmt.Errorf("intents[%d]: at least one keyword is required", i)
		}
	}
	for i := range f.Greetings {
		g := &f.Greetings[i]
		g.Message = strings.TrimSpace(g.Message)
		if g.Message == "" {
			return fmt.Errorf("greetings[%d]: message is required", i)
		}
	}
	for i := range f.Sources {
		s := &f.Sources[i]
		normalized, err := service.NormalizeBaseURL(s.BaseURL)
		if err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
		s.BaseURL = normalized
	}
	return nil
}

func (in Intent) keywords() string {
	kept := make([]string, 0, len(in.Keywords))
	for _, k := range in.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			kept = append(kept, k)
		}
	}
	return strings.Join(kept, ",")
}

func enabled(b *bool) bool {
	return b == nil || *b
}

// Stores groups the stores a seed file writes to.
type Stores struct {
	QA        storage.QAStore
	Intents   storage.IntentStore
	Greetings storage.GreetingStore
	Sources   storage.SourceStore
}

// Counts tallies what applying one section did.
type Counts struct {
	Created   int
	Updated   int
	Unchanged int
}

func (c *Counts) add(created, changed bool) {
	switch {
	case created:
		c.Created++
	case changed:
		c.Updated++
	default:
		c.Unchanged++
	}
}

// Summary reports the outcome of Apply per section.
type Summary struct {
	KB        Counts
	Intents   Counts
	Greetings Counts
	Sources   Counts
}

// Apply writes f through stores.
func Apply(ctx context.Context, f *File, stores Stores) (Summary, error) {
	var sum Summary
	for _, q := range f.KB {
		created, changed, err := applyQA(ctx, stores.QA, q)
		if err != nil {
			return sum, fmt.Errorf("kb %q: %w", q.Question, err)
		}
		sum.KB.add(created, changed)
	}
	for _, in := range f.Intents {
		created, changed, err := applyIntent(ctx, stores.Intents, in)
		if err != nil {
			return sum, fmt.Errorf("intent %q: %w", in.Name, err)
		}
		sum.Intents.add(created, changed)
	}
	for _, g := range f.Greetings {
		created, changed, err := applyGreeting(ctx, stores.Greetings, g)
		if err != nil {
			return sum, fmt.Errorf("greeting %q: %w", g.Message, err)
		}
		sum.Greetings.add(created, changed)
	}
	for _, s := range f.Sources {
		created, changed, err := applySource(ctx, stores.Sources, s)
		if err != nil {
			return sum, fmt.Errorf("source %q: %w", s.BaseURL, err)
		}
		sum.Sources.add(created, changed)
	}
	return sum, nil
}

// ApplyFile loads path and applies it.
func ApplyFile(ctx context.Context, path string, stores Stores) (Summary, error) {
	f, err := Load(path)
	if err != nil {
		return Summary{}, err
	}
	return Apply(ctx, f, stores)
}

func applyQA(ctx context.Context, store storage.QAStore, q QA) (created, changed bool, err error) {
	existing, err := store.GetByQuestion(ctx, q.Question)
	if errors.Is(err, storage.ErrNotFound) {
		return true, false, store.Create(ctx, &storage.QAEntry{Question: q.Question, Answer: q.Answer})
	}
	if err != nil {
		return false, false, err
	}
	if existing.Answer == q.Answer {
		return false, false, nil
	}
	existing.Answer = q.Answer
	return false, true, store.Update(ctx, existing)
}

func applyIntent(ctx context.Context, store storage.IntentStore, in Intent) (created, changed bool, err error) {
	want := storage.Intent{
		Name:     in.Name,
		Keywords: in.keywords(),
		Response: in.Response,
		Enabled:  enabled(in.Enabled),
		Priority: in.Priority,
	}
	existing, err := store.GetByName(ctx, in.Name)
	if errors.Is(err, storage.ErrNotFound) {
		return true, false, store.Create(ctx, &want)
	}
	if err != nil {
		return false, false, err
	}
	if existing.Keywords == want.Keywords && existing.Response == want.Response &&
		existing.Enabled == want.Enabled && existing.Priority == want.Priority {
		return false, false, nil
	}
	want.ID = existing.ID
	return false, true, store.Update(ctx, &want)
}

func applyGreeting(ctx context.Context, store storage.GreetingStore, g Greeting) (created, changed bool, err error) {
	existing, err := store.GetByMessage(ctx, g.Message)
	if errors.Is(err, storage.ErrNotFound) {
		return true, false, store.Create(ctx, &storage.Greeting{
			Message:  g.Message,
			Enabled:  enabled(g.Enabled),
			Priority: g.Priority,
		})
	}
	if err != nil {
		return false, false, err
	}
	if existing.Enabled == enabled(g.Enabled) && existing.Priority == g.Priority {
		return false, false, nil
	}
	existing.Enabled = enabled(g.Enabled)
	existing.Priority = g.Priority
	return false, true, store.Update(ctx, existing)
}

func applySource(ctx context.Context, store storage.SourceStore, s Source) (created, changed bool, err error) {
	existing, err := store.GetByBaseURL(ctx, s.BaseURL)
	if errors.Is(err, storage.ErrNotFound) {
		return true, false, store.Create(ctx, &storage.Source{BaseURL: s.BaseURL, Enabled: enabled(s.Enabled)})
	}
	if err != nil {
		return false, false, err
	}
	if existing.Enabled == enabled(s.Enabled) {
		return false, false, nil
	}
	return false, true, store.SetEnabled(ctx, existing.ID, enabled(s.Enabled))
}
