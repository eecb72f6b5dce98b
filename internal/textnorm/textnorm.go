// Package textnorm normalizes extracted page text before it is matched or summarized.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var glyphs = strings.NewReplacer(
	"•", "-", // bullet
	"–", "-", // en dash
	"—", "-", // em dash
)

// Clean collapses every whitespace run (newlines included) to a single space,
// maps bullet and dash glyphs to "-" and trims the result.
func Clean(text string) string {
	text = norm.NFC.String(text)
	text = glyphs.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}
