// Package flags maps language names to flag emoji for group labels.
package flags

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fallback is shown for names that match no known language.
const Fallback = "🇺🇳"

type language struct {
	code  string
	names []string
}

// languages is ordered; substring matches take the first hit.
var languages = []language{
	{"ru", []string{"russian", "русский"}},
	{"gb", []string{"english", "английский"}},
	{"cn", []string{"chinese", "китайский"}},
	{"es", []string{"spanish", "испанский"}},
	{"ae", []string{"arabic", "арабский"}},
	{"in", []string{"hindi", "хинди"}},
	{"bd", []string{"bengali", "бенгальский"}},
	{"pt", []string{"portuguese", "португальский"}},
	{"id", []string{"indonesian", "индонезийский"}},
	{"pk", []string{"urdu", "урду"}},
	{"de", []string{"german", "немецкий"}},
	{"jp", []string{"japanese", "японский"}},
	{"tz", []string{"swahili", "суахили"}},
	{"in", []string{"marathi", "маратхи"}},
	{"in", []string{"telugu", "телугу"}},
	{"tr", []string{"turkish", "турецкий"}},
	{"kr", []string{"korean", "корейский"}},
	{"fr", []string{"french", "французский"}},
	{"it", []string{"italian", "итальянский"}},
	{"vn", []string{"vietnamese", "вьетнамский"}},
}

// Lookup returns the flag for a language name. An exact name wins over a
// name that merely contains a language, e.g. "Spanish verbs".
func Lookup(name string) string {
	key := cases.Fold().String(strings.TrimSpace(name))
	if key == "" {
		return Fallback
	}
	for _, lang := range languages {
		for _, n := range lang.names {
			if key == n {
				return Emoji(lang.code)
			}
		}
	}
	for _, lang := range languages {
		for _, n := range lang.names {
			if strings.Contains(key, n) {
				return Emoji(lang.code)
			}
		}
	}
	return Fallback
}

// Emoji turns a two-letter ISO country code into regional indicator symbols.
func Emoji(code string) string {
	if len(code) != 2 {
		return Fallback
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r < 'A' || r > 'Z' {
			return Fallback
		}
		b.WriteRune(0x1F1E6 + r - 'A')
	}
	return b.String()
}

// Label prefixes name with its flag.
func Label(name string) string {
	return Lookup(name) + " " + name
}
