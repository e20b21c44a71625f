// Package cleaner normalizes record text: HTML artifact removal, unicode
// normalization, special-character handling, whitespace collapsing, and date
// standardization. Every operation is total; dirty input degrades, it never
// errors.
package cleaner

import (
	"strings"

	"dqpipe/internal/models"
)

// Options toggles the stages of the combined cleaning pipeline. Disabling a
// stage skips it; the order of the remaining stages does not change.
type Options struct {
	RemoveHTML         bool
	NormalizeUnicode   bool
	HandleSpecial      bool
	CollapseWhitespace bool
	SpecialChars       SpecialCharOptions
}

// DefaultOptions enables every stage.
func DefaultOptions() Options {
	return Options{
		RemoveHTML:         true,
		NormalizeUnicode:   true,
		HandleSpecial:      true,
		CollapseWhitespace: true,
		SpecialChars:       DefaultSpecialCharOptions(),
	}
}

// Cleaner applies the text cleaning pipeline to strings and records.
type Cleaner struct {
	opts  Options
	dates *DateStandardizer
}

// New creates a cleaner with the default options.
func New() *Cleaner {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a cleaner with custom stage toggles.
func NewWithOptions(opts Options) *Cleaner {
	return &Cleaner{
		opts:  opts,
		dates: NewDateStandardizer(),
	}
}

// Clean runs the enabled stages in fixed order: HTML artifact removal,
// unicode normalization, special-character handling, whitespace collapsing.
// Applying Clean twice yields the same result as applying it once.
func (c *Cleaner) Clean(text string) string {
	result := text

	if c.opts.RemoveHTML {
		result = DecodeHTMLArtifacts(result)
	}

	if c.opts.NormalizeUnicode {
		result = NormalizeUnicode(result)
	}

	if c.opts.HandleSpecial {
		result = HandleSpecialCharacters(result, c.opts.SpecialChars)
	}

	if c.opts.CollapseWhitespace {
		result = CollapseWhitespace(result)
	}

	return result
}

// CleanValue cleans a field value. Null and absent-style values clean to
// empty text; lists are cleaned element-wise.
func (c *Cleaner) CleanValue(v models.Value) models.Value {
	switch v.Kind() {
	case models.KindText:
		return models.Text(c.Clean(v.Text()))
	case models.KindList:
		elems := make([]models.Value, 0, len(v.List()))
		for _, e := range v.List() {
			elems = append(elems, c.CleanValue(e))
		}

		return models.List(elems...)
	case models.KindNull:
		return models.Text("")
	default:
		return v
	}
}

// CleanRecord returns a cleaned copy of record. Title, content, and author
// run through the full text pipeline; the date field is replaced with its
// canonical form only when a confident parse exists (best-effort, the
// original spelling is kept otherwise); tags are cleaned element-wise with
// null entries dropped; url is trimmed and removed entirely when blank.
// The input record is never modified, and unknown keys pass through.
func (c *Cleaner) CleanRecord(record models.Record) models.Record {
	cleaned := record.Clone()

	for _, field := range models.TextFields {
		if v, ok := cleaned[field]; ok && v.Kind() == models.KindText {
			cleaned[field] = models.Text(c.Clean(v.Text()))
		}
	}

	if v, ok := cleaned[models.FieldDate]; ok && v.Kind() == models.KindText {
		if iso, parsed := c.dates.Standardize(v.Text()); parsed {
			cleaned[models.FieldDate] = models.Text(iso)
		}
	}

	if v, ok := cleaned[models.FieldTags]; ok && v.Kind() == models.KindList {
		elems := make([]models.Value, 0, len(v.List()))

		for _, e := range v.List() {
			if e.IsNull() {
				continue
			}

			elems = append(elems, models.Text(c.Clean(e.Text())))
		}

		cleaned[models.FieldTags] = models.List(elems...)
	}

	if v, ok := cleaned[models.FieldURL]; ok && v.Kind() == models.KindText {
		trimmed := strings.TrimSpace(v.Text())
		if trimmed == "" {
			delete(cleaned, models.FieldURL)
		} else {
			cleaned[models.FieldURL] = models.Text(trimmed)
		}
	}

	return cleaned
}
