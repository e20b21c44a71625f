package cleaner

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces every maximal run of whitespace (spaces, tabs,
// newlines) with a single space and trims the ends.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// invisibleReplacer strips code points that commonly survive scraping:
// non-breaking space becomes a regular space, BOM and zero-width characters
// are removed outright.
var invisibleReplacer = strings.NewReplacer(
	" ", " ", // non-breaking space
	"\ufeff", "", // byte-order mark
	"​", "", // zero-width space
	"‌", "", // zero-width non-joiner
	"‍", "", // zero-width joiner
)

// NormalizeUnicode applies canonical composition (NFC) and removes the
// invisible code points above.
func NormalizeUnicode(text string) string {
	if text == "" {
		return ""
	}

	return invisibleReplacer.Replace(norm.NFC.String(text))
}

// SpecialCharOptions configures HandleSpecialCharacters.
type SpecialCharOptions struct {
	ReplaceControl     bool
	KeepPrintableOnly  bool
	ReplaceCurlyQuotes bool
}

// DefaultSpecialCharOptions replaces control characters and curly quotes but
// keeps non-printable filtering off.
func DefaultSpecialCharOptions() SpecialCharOptions {
	return SpecialCharOptions{
		ReplaceControl:     true,
		KeepPrintableOnly:  false,
		ReplaceCurlyQuotes: true,
	}
}

var curlyReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
)

// HandleSpecialCharacters applies, in order: curly-quote substitution,
// control-character substitution, printable filtering. Newline, carriage
// return, and tab always survive.
func HandleSpecialCharacters(text string, opts SpecialCharOptions) string {
	if text == "" {
		return ""
	}

	result := text

	if opts.ReplaceCurlyQuotes {
		result = curlyReplacer.Replace(result)
	}

	if opts.ReplaceControl {
		result = strings.Map(func(r rune) rune {
			if unicode.Is(unicode.Cc, r) && r != '\n' && r != '\r' && r != '\t' {
				return ' '
			}

			return r
		}, result)
	}

	if opts.KeepPrintableOnly {
		result = strings.Map(func(r rune) rune {
			if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
				return r
			}

			return -1
		}, result)
	}

	return result
}
