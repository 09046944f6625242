// Package slug turns tag names into URL path components.
package slug

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that do not decompose into base letter + combining mark under NFD.
var ligatures = strings.NewReplacer(
	"ß", "ss", "ẞ", "SS",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ł", "l", "Ł", "L",
	"þ", "th", "Þ", "TH",
)

// ReplaceDiacritics substitutes accented letters with their ASCII base letters.
func ReplaceDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, ligatures.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// Slugify folds diacritics, downcases, and turns every whitespace rune into a dash.
// Other characters are kept; URL escaping is left to the caller.
func Slugify(s string) string {
	folded := strings.ToLower(ReplaceDiacritics(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, folded)
}

// Segment returns Slugify(s) made safe to use as a single file or directory
// name: path separators become dashes and a name made only of dots is dashed
// out, so the result never leaves its parent directory.
func Segment(s string) string {
	seg := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, Slugify(s))
	if strings.Trim(seg, ".") == "" {
		return strings.Repeat("-", len(seg))
	}
	return seg
}

// EscapedSegment is Segment(s) escaped for use as one URL path segment.
func EscapedSegment(s string) string {
	return url.PathEscape(Segment(s))
}
