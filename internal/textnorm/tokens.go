package textnorm

import "strings"

// Set is an unordered set of strings.
type Set map[string]struct{}

// Tokens returns the set of whitespace-delimited tokens of the normalized text.
func Tokens(text string) Set {
	return TokensOfNormalized(Normalize(text))
}

// TokensOfNormalized is Tokens for text that has already been normalized.
func TokensOfNormalized(normalized string) Set {
	fields := strings.Fields(normalized)
	set := make(Set, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Trigrams returns the character 3-grams of the normalized text.
// Texts shorter than three runes have no trigrams.
func Trigrams(text string) Set {
	return TrigramsOfNormalized(Normalize(text))
}

// TrigramsOfNormalized is Trigrams for text that has already been normalized.
func TrigramsOfNormalized(normalized string) Set {
	runes := []rune(normalized)
	if len(runes) < 3 {
		return Set{}
	}
	set := make(Set, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
	return set
}

// Intersection counts the elements present in both sets.
func Intersection(a, b Set) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// Jaccard returns |a∩b| / |a∪b|. Two empty sets are identical (1.0);
// one empty set shares nothing (0.0).
func Jaccard(a, b Set) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	inter := Intersection(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// Prefix returns the first n runes of s.
func Prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
