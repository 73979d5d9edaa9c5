// Package similarity scores free-text queries against candidate texts with a
// weighted ensemble of lexical signals.
//
// The weights are calibrated together with the refusal threshold in
// config.Retrieval; changing either moves which questions get answered.
package similarity

import (
	"strings"
	"unicode/utf8"

	"domainbot/internal/textnorm"
)

const (
	WeightTokenJaccard   = 0.35
	WeightTrigramJaccard = 0.25
	WeightSequenceRatio  = 0.20
	WeightSubstring      = 0.10
	WeightOverlapRatio   = 0.10
)

const (
	substringBase        = 0.5
	substringLengthScale = 0.4
	substringCap         = 0.9
	// candidate wholly inside the query
	substringReverse = 0.6
)

// Components holds the individual signals behind a score.
type Components struct {
	Substring      float64 `json:"substring"`
	TokenJaccard   float64 `json:"token_jaccard"`
	TrigramJaccard float64 `json:"trigram_jaccard"`
	SequenceRatio  float64 `json:"sequence_ratio"`
	OverlapRatio   float64 `json:"overlap_ratio"`
	Exact          bool    `json:"exact"`
	Total          float64 `json:"total"`
}

// Score returns the relevance of candidate to query in [0,1].
// It is not symmetric: containment of the query in the candidate scores
// higher than the reverse.
func Score(query, candidate string) float64 {
	return Breakdown(query, candidate).Total
}

// Breakdown computes every signal and the weighted total.
func Breakdown(query, candidate string) Components {
	q := textnorm.Normalize(query)
	c := textnorm.Normalize(candidate)
	if q == "" || c == "" {
		return Components{}
	}
	if q == c {
		return Components{
			Substring:      substringCap,
			TokenJaccard:   1,
			TrigramJaccard: 1,
			SequenceRatio:  1,
			OverlapRatio:   1,
			Exact:          true,
			Total:          1.0,
		}
	}

	var comp Components
	comp.Substring = substringScore(q, c)

	qTokens := textnorm.TokensOfNormalized(q)
	cTokens := textnorm.TokensOfNormalized(c)
	comp.TokenJaccard = textnorm.Jaccard(qTokens, cTokens)
	comp.TrigramJaccard = textnorm.Jaccard(textnorm.TrigramsOfNormalized(q), textnorm.TrigramsOfNormalized(c))
	comp.SequenceRatio = SequenceRatio([]rune(q), []rune(c))
	if len(qTokens) > 0 {
		comp.OverlapRatio = float64(textnorm.Intersection(qTokens, cTokens)) / float64(len(qTokens))
	}

	total := comp.TokenJaccard*WeightTokenJaccard +
		comp.TrigramJaccard*WeightTrigramJaccard +
		comp.SequenceRatio*WeightSequenceRatio +
		comp.Substring*WeightSubstring +
		comp.OverlapRatio*WeightOverlapRatio
	if total > 1.0 {
		total = 1.0
	}
	comp.Total = total
	return comp
}

func substringScore(q, c string) float64 {
	switch {
	case strings.Contains(c, q):
		ratio := float64(utf8.RuneCountInString(q)) / float64(utf8.RuneCountInString(c))
		return min(substringCap, substringBase+ratio*substringLengthScale)
	case strings.Contains(q, c):
		return substringReverse
	default:
		return 0
	}
}
