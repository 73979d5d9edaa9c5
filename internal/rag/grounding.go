package rag

import (
	"strings"

	"domainbot/internal/textnorm"
)

const (
	minOverlapTokens = 2
	minOverlapRatio  = 0.20
)

// refusalIndicators mark answers in which the generator declines. Such
// answers are accepted as honest without an overlap check.
var refusalIndicators = []string{
	NotFoundMessage,
	"پاسخی برای این سوال ندارم",
	"موجود نیست",
	"پایگاه دانش",
	"don't have",
	"not available",
	"no information",
}

// IsGroundedAnswer reports whether answer is supported by context: at least
// two answer tokens, and at least a fifth of them, must appear in the context.
func IsGroundedAnswer(answer, context string) bool {
	if answer == "" || context == "" {
		return false
	}

	lower := strings.ToLower(answer)
	for _, indicator := range refusalIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}

	contextTokens := textnorm.Tokens(context)
	answerTokens := textnorm.Tokens(answer)
	if len(contextTokens) == 0 || len(answerTokens) == 0 {
		return false
	}

	overlap := textnorm.Intersection(contextTokens, answerTokens)
	ratio := float64(overlap) / float64(len(answerTokens))
	return overlap >= minOverlapTokens && ratio >= minOverlapRatio
}
