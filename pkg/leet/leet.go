// Package leet rewrites text in leetspeak.
package leet

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var replacer = strings.NewReplacer(
	"a", "4",
	"e", "3",
	"g", "9",
	"i", "1",
	"l", "1",
	"o", "0",
	"s", "5",
	"t", "7",
)

// Transform lower-cases s and substitutes look-alike digits for letters.
func Transform(s string) string {
	return replacer.Replace(cases.Lower(language.Und).String(s))
}
