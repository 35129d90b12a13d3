// Package answer normalizes and checks drill answers.
package answer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verte-zerg/lexdrill/internal/generator"
)

// Normalize trims surrounding whitespace and lower-cases s.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Equal reports whether two answers match after normalization.
func Equal(expected, actual string) bool {
	return Normalize(expected) == Normalize(actual)
}

// Reconstruct fills the blanks of template with the runes of input, left to
// right. Surplus input is ignored; blanks without input stay blank.
func Reconstruct(template, input string) string {
	in := []rune(input)
	var b strings.Builder
	b.Grow(len(template))
	next := 0
	for _, r := range template {
		if r != generator.Blank {
			b.WriteRune(r)
			continue
		}
		if next < len(in) {
			b.WriteRune(in[next])
			next++
			continue
		}
		b.WriteRune(generator.Blank)
	}
	return b.String()
}

// Check compares raw user input against expected. With a non-empty template
// the input is treated as the missing letters only.
func Check(expected, template, raw string) bool {
	actual := strings.TrimSpace(raw)
	if template != "" {
		actual = Reconstruct(template, actual)
	}
	return Equal(expected, actual)
}
