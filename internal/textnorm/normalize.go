package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// letterReplacer unifies Arabic letter forms with their Persian equivalents.
var letterReplacer = strings.NewReplacer(
	"ي", "ی", // Arabic yeh
	"ك", "ک", // Arabic kaf
	"ة", "ه", // teh marbuta
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ؤ", "و",
	"ئ", "ی",
)

// maxCompositionPasses bounds the substitute/NFC loop. Two passes are enough
// for any input; the third is a guard.
const maxCompositionPasses = 3

// Normalize canonicalizes text for comparison: lowercase, unified
// Arabic/Persian letters, NFC, punctuation replaced by spaces and
// whitespace collapsed. Empty input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := letterReplacer.Replace(strings.ToLower(text))

	// NFC can compose a bare alef and a combining madda into a letter the
	// table maps again, so repeat until the output is stable.
	for i := 0; i < maxCompositionPasses; i++ {
		next := letterReplacer.Replace(norm.NFC.String(s))
		if next == s {
			break
		}
		s = next
	}

	s = strings.Map(func(r rune) rune {
		if IsWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// IsWordRune reports whether r survives punctuation stripping: letters,
// numbers, underscore, and anything in the Arabic script blocks.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || inArabicBlocks(r)
}

func inArabicBlocks(r rune) bool {
	switch {
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	case r >= 0x0750 && r <= 0x077F: // Arabic Supplement
		return true
	case r >= 0x08A0 && r <= 0x08FF: // Arabic Extended-A
		return true
	case r >= 0xFB50 && r <= 0xFDFF: // Presentation Forms-A
		return true
	case r >= 0xFE70 && r <= 0xFEFF: // Presentation Forms-B
		return true
	}
	return false
}
