package rag

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"domainbot/internal/config"
	"domainbot/internal/storage"
	"domainbot/internal/textnorm"
)

// RefusalMessage is shown whenever the guard refuses to answer.
const RefusalMessage = "اطلاعات کافی در پایگاه دانش یا صفحات وب‌سایت ندارم. لطفاً سوال خود را به شکل دیگری مطرح کنید یا با پشتیبانی تماس بگیرید."

// NotFoundMessage replaces generated answers that are not grounded in the context.
const NotFoundMessage = "در منابع موجود نیست"

// Guard decides between refusing and answering for a retrieval result.
type Guard struct {
	cfg config.Retrieval
}

// NewGuard creates a new Guard.
func NewGuard(cfg config.Retrieval) *Guard {
	return &Guard{cfg: cfg}
}

// Threshold returns the minimum confidence required to answer.
func (g *Guard) Threshold() float64 {
	return g.cfg.MinConfidence
}

// ShouldRefuse reports whether the result is too weak to answer from.
func (g *Guard) ShouldRefuse(res Result) bool {
	return !res.HasResults || res.MaxConfidence < g.cfg.MinConfidence
}

// Decide returns the terminal state for res along with the refusal reason.
func (g *Guard) Decide(res Result) Decision {
	if !res.HasResults {
		return Decision{State: StateRefuse, Reason: ReasonNoMatchingSource}
	}
	if res.MaxConfidence < g.cfg.MinConfidence {
		return Decision{
			State:  StateRefuse,
			Reason: fmt.Sprintf(reasonLowConfidence, res.MaxConfidence, strconv.FormatFloat(g.cfg.MinConfidence, 'f', -1, 64)),
		}
	}
	return Decision{State: StateAnswer}
}

// BuildContext renders the retrieved sources as the generator's grounding text.
func (g *Guard) BuildContext(res Result) string {
	var lines []string

	if len(res.KB) > 0 {
		lines = append(lines, "=== Knowledge Base ===")
		for _, hit := range res.KB {
			lines = append(lines,
				"Q: "+hit.Entry.Question,
				"A: "+hit.Entry.Answer,
				"",
			)
		}
	}

	if len(res.Website) > 0 {
		lines = append(lines, "=== Website Content ===")
		for _, hit := range res.Website {
			title := hit.Page.Title
			if title == "" {
				title = "Untitled"
			}
			excerpt := textnorm.Prefix(hit.Page.Content, g.cfg.ContextExcerptChars)
			if utf8.RuneCountInString(hit.Page.Content) > g.cfg.ContextExcerptChars {
				excerpt += "..."
			}
			lines = append(lines,
				"Title: "+title,
				"URL: "+hit.Page.URL,
				"Content: "+excerpt,
				"",
			)
		}
	}

	return strings.Join(lines, "\n")
}

// ExtractSourceIDs returns the ids cited by res, in rank order.
func ExtractSourceIDs(res Result) storage.SourceIDs {
	ids := storage.SourceIDs{
		KBIDs:      make([]int64, 0, len(res.KB)),
		WebPageIDs: make([]int64, 0, len(res.Website)),
	}
	for _, hit := range res.KB {
		ids.KBIDs = append(ids.KBIDs, hit.Entry.ID)
	}
	for _, hit := range res.Website {
		ids.WebPageIDs = append(ids.WebPageIDs, hit.Page.ID)
	}
	return ids
}

// Sources returns the citation list for res: KB hits first, then pages.
func Sources(res Result) []SourceRef {
	refs := make([]SourceRef, 0, len(res.KB)+len(res.Website))
	for _, hit := range res.KB {
		refs = append(refs, SourceRef{
			Type:  SourceTypeKB,
			ID:    hit.Entry.ID,
			Title: hit.Entry.Question,
			Score: hit.Score,
		})
	}
	for _, hit := range res.Website {
		refs = append(refs, SourceRef{
			Type:  SourceTypeWebsite,
			ID:    hit.Page.ID,
			Title: hit.Page.Title,
			URL:   hit.Page.URL,
			Score: hit.Score,
		})
	}
	return refs
}
