// Package slug builds URL-safe identifiers from titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const MaxLength = 64

var (
	validSlug  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	separators = regexp.MustCompile(`[-\s]+`)
)

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "c",
	'ч': "ch", 'ш': "sh", 'щ': "sh", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu",
	'я': "ya",
}

// Make lowercases s, transliterates Cyrillic, strips diacritics and joins
// words with hyphens. The result is at most MaxLength bytes and may be empty.
func Make(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if t, ok := cyrillic[r]; ok {
			b.WriteString(t)
			continue
		}
		b.WriteRune(r)
	}

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, b.String())
	if err != nil {
		ascii = b.String()
	}

	var kept strings.Builder
	for _, r := range ascii {
		switch {
		case r > unicode.MaxASCII:
		case r == '-' || r == '_' || unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsDigit(r):
			kept.WriteRune(r)
		}
	}

	out := separators.ReplaceAllString(strings.TrimSpace(kept.String()), "-")
	if len(out) > MaxLength {
		out = out[:MaxLength]
	}
	return strings.Trim(out, "-_")
}

// Valid reports whether s consists only of letters, digits, hyphens and underscores.
func Valid(s string) bool {
	return validSlug.MatchString(s)
}
