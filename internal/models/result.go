package models

import "strings"

// ValidationResult is the outcome of validating a single record. Reasons keep
// insertion order, which matches check order; IsValid is true exactly when no
// reason was recorded.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Reasons []string `json:"reasons"`
}

// NewValidationResult returns a passing result with no reasons.
func NewValidationResult() ValidationResult {
	return ValidationResult{IsValid: true, Reasons: []string{}}
}

// AddReason records one failure reason and marks the result invalid.
func (r *ValidationResult) AddReason(reason string) {
	r.Reasons = append(r.Reasons, reason)
	r.IsValid = false
}

// String renders the result as "Valid" or "Invalid: reason; reason".
func (r ValidationResult) String() string {
	status := "Valid"
	if !r.IsValid {
		status = "Invalid"
	}

	if len(r.Reasons) > 0 {
		return status + ": " + strings.Join(r.Reasons, "; ")
	}

	return status
}
