// Package validator flags records that fail data-quality checks. Checks run
// in a fixed order and every finding is collected; a failing record reports
// all of its problems, not just the first one.
package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"dqpipe/internal/models"
	"dqpipe/pkg/utils"
)

// DefaultRequiredFields are the fields every record must carry.
var DefaultRequiredFields = []string{models.FieldTitle, models.FieldContent, models.FieldURL}

// LengthRule sets a minimum trimmed length for one field.
type LengthRule struct {
	Field string
	Min   int
}

// DefaultLengthRules require title and content to be at least one character
// after trimming. Rule order is reason order, so this is a slice, not a map.
var DefaultLengthRules = []LengthRule{
	{Field: models.FieldTitle, Min: 1},
	{Field: models.FieldContent, Min: 1},
}

// urlDisplayLimit caps how much of a bad URL appears in a reason string.
const urlDisplayLimit = 50

// urlPattern is the structural check applied on top of url.Parse: a dotted
// hostname whose final label is 2-6 letters, or localhost, or a dotted-quad
// IPv4 literal, with an optional port and path/query.
var urlPattern = regexp.MustCompile(`^(?i:https?)://` +
	`(?i:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// ValidURL reports whether raw is an absolute http(s) URL with a non-empty,
// plausible-looking host. Both the parser and the structural pattern must
// accept it.
func ValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	if parsed.Host == "" {
		return false
	}

	return urlPattern.MatchString(raw)
}

// Validator checks records against required-field, URL format, and minimum
// length rules.
type Validator struct {
	required []string
	lengths  []LengthRule
	strings  *utils.StringHelper
}

// New creates a validator with the default rules.
func New() *Validator {
	return NewWithRules(nil, nil)
}

// NewWithRules creates a validator with custom rules. Nil slices fall back
// to the defaults.
func NewWithRules(required []string, lengths []LengthRule) *Validator {
	if required == nil {
		required = DefaultRequiredFields
	}

	if lengths == nil {
		lengths = DefaultLengthRules
	}

	return &Validator{
		required: required,
		lengths:  lengths,
		strings:  utils.NewStringHelper(),
	}
}

// ValidateRecord runs every check and returns the collected reasons. Reason
// order is deterministic: required fields in configured order, then URL
// format, then length rules in configured order. Downstream reporting
// aggregates on these exact strings, so the wording is a contract.
func (v *Validator) ValidateRecord(record models.Record) models.ValidationResult {
	result := models.NewValidationResult()

	// Required fields: missing key, explicit null, and blank text are
	// distinct findings.
	for _, field := range v.required {
		value, ok := record[field]

		switch {
		case !ok:
			result.AddReason(fmt.Sprintf("Missing required field: '%s'", field))
		case value.IsNull():
			result.AddReason(fmt.Sprintf("Required field '%s' is None", field))
		case value.Kind() == models.KindText && strings.TrimSpace(value.Text()) == "":
			result.AddReason(fmt.Sprintf("Required field '%s' is empty", field))
		}
	}

	// URL format: only checked when the field is present, non-null, and
	// non-blank. Blank URLs are the required-field check's business.
	if value, ok := record[models.FieldURL]; ok && !value.IsNull() {
		raw := strings.TrimSpace(value.Text())
		if raw != "" && !ValidURL(raw) {
			result.AddReason(fmt.Sprintf("Invalid URL format: '%s'", v.strings.TruncateString(raw, urlDisplayLimit)))
		}
	}

	// Minimum lengths: absent and null fields are skipped, they are covered
	// by the required-field check when it applies.
	for _, rule := range v.lengths {
		value, ok := record[rule.Field]
		if !ok || value.IsNull() {
			continue
		}

		length := utf8.RuneCountInString(strings.TrimSpace(value.Text()))
		if length < rule.Min {
			result.AddReason(fmt.Sprintf("Field '%s' length %d is below minimum %d", rule.Field, length, rule.Min))
		}
	}

	return result
}

// ValidateRecords validates records in order, returning one result per input.
func (v *Validator) ValidateRecords(records []models.Record) []models.ValidationResult {
	results := make([]models.ValidationResult, len(records))
	for i, record := range records {
		results[i] = v.ValidateRecord(record)
	}

	return results
}

// InvalidRecord pairs a failing record with its original index and result.
type InvalidRecord struct {
	Index  int
	Record models.Record
	Result models.ValidationResult
}

// InvalidRecords returns only the records that fail validation, preserving
// their original indexes.
func (v *Validator) InvalidRecords(records []models.Record) []InvalidRecord {
	var invalid []InvalidRecord

	for i, result := range v.ValidateRecords(records) {
		if !result.IsValid {
			invalid = append(invalid, InvalidRecord{Index: i, Record: records[i], Result: result})
		}
	}

	return invalid
}
