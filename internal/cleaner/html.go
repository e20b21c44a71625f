package cleaner

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// namedEntities are decoded in listed order before tag stripping. The order
// matters: "&amp;lt;" resolves to "&lt;" first and then to "<".
var namedEntities = []struct {
	entity string
	text   string
}{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&apos;", "'"},
}

var (
	decimalEntity = regexp.MustCompile(`&#(\d+);`)
	hexEntity     = regexp.MustCompile(`&#x([0-9a-fA-F]+);`)
	anyTag        = regexp.MustCompile(`<[^>]+>`)
)

// StripHTML removes markup tags, keeping only the text content. A tolerant
// streaming tokenizer handles malformed input; if the tokenizer reports an
// error other than end-of-input, a plain regex deletion runs instead so the
// operation never fails.
func StripHTML(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder

	tok := html.NewTokenizer(strings.NewReader(text))

	for {
		switch tok.Next() {
		case html.ErrorToken:
			if err := tok.Err(); err != io.EOF {
				// Fallback: simple regex-based removal.
				return anyTag.ReplaceAllString(text, "")
			}

			return b.String()
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}

// DecodeHTMLArtifacts resolves a fixed set of named entities plus decimal and
// hex character references, then strips tags. Decoding runs first so entities
// inside regions the stripper removes still resolve.
func DecodeHTMLArtifacts(text string) string {
	if text == "" {
		return ""
	}

	result := text
	for _, e := range namedEntities {
		result = strings.ReplaceAll(result, e.entity, e.text)
	}

	result = decimalEntity.ReplaceAllStringFunc(result, func(m string) string {
		return decodeCodePoint(m, m[2:len(m)-1], 10)
	})
	result = hexEntity.ReplaceAllStringFunc(result, func(m string) string {
		return decodeCodePoint(m, m[3:len(m)-1], 16)
	})

	return StripHTML(result)
}

// decodeCodePoint turns a numeric character reference into its literal rune,
// leaving the reference untouched when it names an invalid code point.
func decodeCodePoint(ref, digits string, base int) string {
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil || n < 0 || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
		return ref
	}

	return string(rune(n))
}
