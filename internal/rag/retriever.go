package rag

import (
	"context"
	"fmt"
	"sort"

	"domainbot/internal/config"
	"domainbot/internal/contextutil"
	"domainbot/internal/similarity"
	"domainbot/internal/storage"
	"domainbot/internal/textnorm"
)

const (
	// answerWeight discounts matches against KB answers relative to questions.
	answerWeight = 0.8
	// contentWeight discounts matches against page bodies relative to titles.
	contentWeight = 0.7
)

// Retriever scores the whole corpus against a query. It holds no state
// between calls.
type Retriever struct {
	qa      storage.QAStore
	sources storage.SourceStore
	pages   storage.PageStore
	cfg     config.Retrieval
}

// NewRetriever creates a new Retriever.
func NewRetriever(qa storage.QAStore, sources storage.SourceStore, pages storage.PageStore, cfg config.Retrieval) *Retriever {
	return &Retriever{
		qa:      qa,
		sources: sources,
		pages:   pages,
		cfg:     cfg,
	}
}

// RetrieveKB scores every QA entry and returns at most topK hits at or above
// the confidence floor. topK <= 0 uses the configured default.
func (r *Retriever) RetrieveKB(ctx context.Context, query string, topK int) ([]ScoredQA, error) {
	if topK <= 0 {
		topK = r.cfg.KBTopK
	}

	entries, err := r.qa.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list kb entries: %w", err)
	}

	scored := make([]ScoredQA, 0, len(entries))
	for _, e := range entries {
		score := max(similarity.Score(query, e.Question), similarity.Score(query, e.Answer)*answerWeight)
		if score >= r.cfg.MinConfidence {
			scored = append(scored, ScoredQA{Entry: e, Score: score})
		}
	}

	// Entries arrive in id order, so equal scores keep the lower id first.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

// RetrieveWebsite scores pages of enabled sources only. Pages whose source is
// disabled are never scored.
func (r *Retriever) RetrieveWebsite(ctx context.Context, query string, topK int) ([]ScoredPage, error) {
	if topK <= 0 {
		topK = r.cfg.WebsiteTopK
	}

	enabled, err := r.sources.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled sources: %w", err)
	}
	if len(enabled) == 0 {
		return nil, nil
	}

	enabledIDs := make(map[int64]struct{}, len(enabled))
	ids := make([]int64, 0, len(enabled))
	for _, s := range enabled {
		if !s.Enabled {
			continue
		}
		enabledIDs[s.ID] = struct{}{}
		ids = append(ids, s.ID)
	}

	pages, err := r.pages.ListBySources(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	scored := make([]ScoredPage, 0, len(pages))
	for _, p := range pages {
		if _, ok := enabledIDs[p.SourceID]; !ok {
			continue
		}
		excerpt := textnorm.Prefix(p.Content, r.cfg.ScoreExcerptChars)
		score := max(similarity.Score(query, p.Title), similarity.Score(query, excerpt)*contentWeight)
		if score >= r.cfg.MinConfidence {
			scored = append(scored, ScoredPage{Page: p, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

// RetrieveAll runs both retrievals with the configured top-K values. Store
// failures are returned as errors and never reported as an empty result.
func (r *Retriever) RetrieveAll(ctx context.Context, query string) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	kb, err := r.RetrieveKB(ctx, query, 0)
	if err != nil {
		return Result{}, err
	}
	web, err := r.RetrieveWebsite(ctx, query, 0)
	if err != nil {
		return Result{}, err
	}

	res := Result{KB: kb, Website: web}
	if len(kb) > 0 {
		res.MaxConfidence = max(res.MaxConfidence, kb[0].Score)
	}
	if len(web) > 0 {
		res.MaxConfidence = max(res.MaxConfidence, web[0].Score)
	}
	res.HasResults = len(kb) > 0 || len(web) > 0

	logger.DebugContext(ctx, "retrieval completed",
		"kb_hits", len(kb),
		"website_hits", len(web),
		"max_confidence", res.MaxConfidence,
	)
	return res, nil
}
