package source

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var headerQuotes = strings.NewReplacer("«", "", "»", "", `"`, "", "'", "")

// NormalizeHeader folds a header cell to its matching key.
//
// Example:
//
//	source.NormalizeHeader("« Chef »")         // "chef"
//	source.NormalizeHeader("Avantage  compté") // "avantage compte"
func NormalizeHeader(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		stripped = s
	}
	stripped = headerQuotes.Replace(strings.ToLower(stripped))

	return strings.Join(strings.Fields(stripped), " ")
}
