package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"domainbot/internal/textnorm"
)

const maxGreetingRunes = 50

var greetingPhrases = []string{
	"سلام",
	"سلام علیکم",
	"درود",
	"وقت بخیر",
	"صبح بخیر",
	"عصر بخیر",
	"شب بخیر",
	"خداحافظ",
	"خداحفظ",
	"بدرود",
	"hi",
	"hello",
	"hey",
	"good morning",
	"good afternoon",
	"good evening",
	"good night",
}

// questionMarkers are matched as substrings, so short words like "is" also
// hit inside longer words.
var questionMarkers = []string{
	"؟",
	"?",
	"چیست",
	"چیه",
	"چی",
	"چطور",
	"چگونه",
	"کجا",
	"کی",
	"چه",
	"کدام",
	"آیا",
	"what",
	"how",
	"where",
	"when",
	"who",
	"why",
	"which",
	"is",
	"are",
	"do",
	"does",
	"can",
	"could",
	"will",
	"would",
}

var infoKeywords = []string{
	"قیمت",
	"هزینه",
	"خدمات",
	"محصولات",
	"سوال",
	"سوالی",
	"مشکل",
	"کمک",
	"راهنمایی",
	"اطلاعات",
	"price",
	"cost",
	"service",
	"product",
	"question",
	"help",
	"information",
	"info",
}

// IsGreeting reports whether message is only a greeting, with no question
// or request attached.
func IsGreeting(message string) bool {
	normalized := lightNormalize(message)
	if normalized == "" {
		return false
	}
	if utf8.RuneCountInString(normalized) > maxGreetingRunes {
		return false
	}

	for _, marker := range questionMarkers {
		if strings.Contains(normalized, marker) {
			return false
		}
	}
	for _, kw := range infoKeywords {
		if strings.Contains(normalized, kw) {
			return false
		}
	}

	padded := " " + normalized + " "
	for _, phrase := range greetingPhrases {
		g := lightNormalize(phrase)
		if strings.HasPrefix(normalized, g) || strings.Contains(padded, " "+g+" ") {
			return true
		}
	}
	return false
}

// lightNormalize strips symbols and emoji, collapses whitespace and
// lowercases. Unlike textnorm.Normalize it keeps Arabic letter variants
// and the Persian question mark.
func lightNormalize(text string) string {
	s := strings.Map(func(r rune) rune {
		if textnorm.IsWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
