// Package anchor derives URL- and DOM-safe section identifiers from
// heading text, with collision handling scoped to a single document.
package anchor

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxLength is the truncation limit applied when Options.MaxLength is zero.
	DefaultMaxLength = 50

	// ValidMaxLength is the hard upper bound accepted by IsValid.
	ValidMaxLength = 100

	fallbackID  = "untitled-section"
	digitPrefix = "section-"
)

// Options controls how heading text is turned into an anchor ID.
// The zero value is ready to use.
type Options struct {
	// Replacements are applied first, in order, as literal find/replace pairs.
	Replacements []Replacement
	// PreserveCase skips the default lower-casing.
	PreserveCase bool
	// AllowUnicode skips the accented-character transliteration table.
	AllowUnicode bool
	// Prefix and Suffix are joined to the ID with hyphens when non-empty.
	Prefix string
	Suffix string
	// MaxLength truncates the ID; zero means DefaultMaxLength.
	MaxLength int
}

// Replacement is a literal find/replace pair applied before normalization.
type Replacement struct {
	Find    string
	Replace string
}

// translit maps common accented characters to ASCII equivalents.
var translit = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ý': "y", 'ÿ': "y",
	'ñ': "n", 'ç': "c",
	'ß': "ss", 'æ': "ae", 'œ': "oe", 'ð': "d", 'þ': "th",
	'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A", 'Ä': "A", 'Å': "A",
	'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E",
	'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I",
	'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O", 'Ö': "O", 'Ø': "O",
	'Ù': "U", 'Ú': "U", 'Û': "U", 'Ü': "U",
	'Ñ': "N", 'Ç': "C", 'Æ': "AE", 'Œ': "OE",
}

// Generate converts heading text into an anchor ID. It never fails: any
// input, including the empty string, yields a non-empty valid ID.
func Generate(text string, opts Options) string {
	maxLen := opts.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	id := text
	for _, r := range opts.Replacements {
		id = strings.ReplaceAll(id, r.Find, r.Replace)
	}

	if !opts.PreserveCase {
		id = strings.ToLower(id)
	}

	if !opts.AllowUnicode {
		id = transliterate(id)
	}

	id = normalize(id, opts.AllowUnicode)
	id = strings.Trim(id, "-")

	if opts.Prefix != "" {
		id = strings.Trim(opts.Prefix, "-") + "-" + id
	}
	if opts.Suffix != "" {
		id = id + "-" + strings.Trim(opts.Suffix, "-")
	}
	id = strings.Trim(id, "-")

	id = truncate(id, maxLen)

	// IDs must start with a letter to be usable as DOM ids and URL fragments.
	if id != "" && !startsWithLetter(id, opts.AllowUnicode) {
		id = digitPrefix + id
		if len(id) > maxLen && maxLen > len(digitPrefix) {
			id = strings.Trim(truncate(id, maxLen), "-")
		}
	}

	if id == "" {
		id = fallbackID
	}

	return id
}

// GenerateUnique returns an anchor ID that is not present in existing,
// appending -2, -3, ... on collision. The chosen ID is inserted into
// existing before return; the set is the sole source of truth for
// uniqueness within one document.
func GenerateUnique(text string, existing map[string]struct{}, opts Options) string {
	id := Generate(text, opts)

	if existing == nil {
		return id
	}

	candidate := id
	for n := 2; ; n++ {
		if _, taken := existing[candidate]; !taken {
			break
		}
		candidate = id + "-" + strconv.Itoa(n)
	}

	existing[candidate] = struct{}{}
	return candidate
}

// IsValid reports whether id is usable as a document anchor: non-empty,
// starts with a letter, contains only [a-zA-Z0-9-_.], and is at most
// ValidMaxLength characters.
func IsValid(id string) bool {
	if id == "" || len(id) > ValidMaxLength {
		return false
	}
	for i, r := range id {
		if i == 0 {
			if !isASCIILetter(r) {
				return false
			}
			continue
		}
		if !isASCIILetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' && r != '.' {
			return false
		}
	}
	return true
}

// normalize collapses whitespace runs to single hyphens, replaces any
// character outside the anchor alphabet with a hyphen, and collapses
// repeated hyphens.
func normalize(s string, allowUnicode bool) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := false
	for _, r := range s {
		var out rune
		switch {
		case unicode.IsSpace(r):
			out = '-'
		case r == '-' || r == '_' || r == '.':
			out = r
		case isASCIILetter(r) || (r >= '0' && r <= '9'):
			out = r
		case allowUnicode && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			out = r
		default:
			out = '-'
		}

		if out == '-' {
			if lastHyphen {
				continue
			}
			lastHyphen = true
		} else {
			lastHyphen = false
		}
		b.WriteRune(out)
	}

	return b.String()
}

// transliterate replaces accented characters using the fixed table.
func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := translit[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// truncate cuts id to maxLen, preferring the last hyphen when it falls
// within the final 30% of the truncation window.
func truncate(id string, maxLen int) string {
	if len(id) <= maxLen {
		return id
	}

	cut := id[:maxLen]
	if idx := strings.LastIndexByte(cut, '-'); idx >= (maxLen*7)/10 {
		return cut[:idx]
	}
	return strings.TrimRight(cut, "-")
}

func startsWithLetter(s string, allowUnicode bool) bool {
	if s == "" {
		return false
	}
	if allowUnicode {
		r, _ := utf8.DecodeRuneInString(s)
		return unicode.IsLetter(r)
	}
	return isASCIILetter(rune(s[0]))
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
