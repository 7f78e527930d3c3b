// Package slug generates URL-safe, collection-unique identifiers from
// display titles.
//
// Make handles the common case: Latin/Vietnamese titles are folded to ASCII
// (diacritics stripped, đ mapped to d). MakeJapanese transliterates kana to
// romaji first so a Japanese title gets a phonetic slug instead of an empty
// one. Assign layers a uniqueness probe with a numeric suffix on top, and a
// timestamp fallback guarantees that every title, even "???", yields some
// valid slug.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gojp/kana"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlug matches any run of characters that cannot appear in a slug.
	nonSlug = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// asciiFold decomposes accented characters and drops the combining marks,
// so "é" becomes "e" and Vietnamese "ướ" becomes "uo".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts an arbitrary Unicode string into a URL-safe ASCII slug.
// Characters with no ASCII equivalent are dropped, so a title written
// entirely in an unsupported script yields "". Callers that need a
// guaranteed non-empty result should use Assign.
func Make(s string) string {
	// đ/Đ survive NFD untouched; map them before folding.
	s = strings.NewReplacer("đ", "d", "Đ", "d").Replace(s)

	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}

	folded = strings.ToLower(folded)
	folded = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
			return r
		}
		if unicode.IsSpace(r) || r == '_' {
			return '-'
		}
		return -1
	}, folded)

	folded = nonSlug.ReplaceAllString(folded, "")
	folded = multiHyphen.ReplaceAllString(folded, "-")
	return strings.Trim(folded, "-")
}

// MakeJapanese converts a Japanese title into a romaji slug.
// Kana (hiragana and katakana) transliterate phonetically; kanji has no
// deterministic reading, so kanji-only titles still come back empty and
// fall through to Assign's timestamp fallback.
func MakeJapanese(s string) string {
	romaji := kana.KanaToRomaji(s)
	if out := Make(romaji); out != "" {
		return out
	}
	// Transliteration produced nothing usable; try plain folding.
	return Make(s)
}
