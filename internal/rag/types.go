package rag

import "domainbot/internal/storage"

// Source types used in citations.
const (
	SourceTypeKB      = "kb"
	SourceTypeWebsite = "website"
)

// ScoredQA pairs a knowledge-base entry with its relevance to the query.
type ScoredQA struct {
	Entry storage.QAEntry
	Score float64
}

// ScoredPage pairs a crawled page with its relevance to the query.
type ScoredPage struct {
	Page  storage.WebPage
	Score float64
}

// Result is the outcome of one retrieval pass. It is built per query and
// never cached.
type Result struct {
	// KB holds knowledge-base hits, best first.
	KB []ScoredQA
	// Website holds page hits from enabled sources, best first.
	Website []ScoredPage
	// MaxConfidence is the best top score of either corpus, 0 when both are empty.
	MaxConfidence float64
	// HasResults is true when either corpus returned a hit.
	HasResults bool
}

// SourceRef is one entry of the citation list shown to users and to the generator.
type SourceRef struct {
	// Type is SourceTypeKB or SourceTypeWebsite.
	Type string `json:"type"`
	// ID is the QA entry id or the web page id.
	ID int64 `json:"id"`
	// Title is the KB question or the page title.
	Title string `json:"title,omitempty"`
	// URL is set for website sources only.
	URL string `json:"url,omitempty"`
	// Score is the retrieval confidence of the source.
	Score float64 `json:"score"`
}

// State is a terminal answer-guard state.
type State string

const (
	StateRefuse State = "refuse"
	StateAnswer State = "answer"
)

// Refusal reasons logged and returned in missing-info payloads.
const (
	ReasonNoMatchingSource = "NO_MATCHING_SOURCE"
	reasonLowConfidence    = "LOW_CONFIDENCE_%.2f_BELOW_%s"
)

// Decision is the guard's verdict on a retrieval result.
type Decision struct {
	State  State
	Reason string // empty when answering
}
