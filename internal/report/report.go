// Package report aggregates cleaning and validation outcomes into a
// human-readable data quality report.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"dqpipe/internal/models"
)

// Counter counts occurrences of reason strings. First-seen order is kept so
// MostCommon is deterministic when counts tie.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add records one occurrence of key.
func (c *Counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}

	c.counts[key]++
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.counts)
}

// Entry is one counted reason.
type Entry struct {
	Reason string
	Count  int
}

// MostCommon returns entries ordered by descending count; ties keep
// first-seen order.
func (c *Counter) MostCommon() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, Entry{Reason: key, Count: c.counts[key]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return entries
}

// Summary aggregates one pipeline run: totals, per-field completeness
// counts, and the failure-reason histogram.
type Summary struct {
	Total        int
	Valid        int
	Invalid      int
	Completeness map[string]int
	Failures     *Counter
}

// Build folds cleaned records and their validation results into a Summary.
// A field counts as complete when it is present and non-null; text must also
// be non-blank, while any present list counts.
func Build(records []models.Record, results []models.ValidationResult) *Summary {
	summary := &Summary{
		Total:        len(records),
		Completeness: make(map[string]int, len(models.ReportFields)),
		Failures:     NewCounter(),
	}

	for _, record := range records {
		for _, field := range models.ReportFields {
			value, ok := record[field]
			if !ok || value.IsNull() {
				continue
			}

			switch value.Kind() {
			case models.KindList:
				summary.Completeness[field]++
			case models.KindText:
				if strings.TrimSpace(value.Text()) != "" {
					summary.Completeness[field]++
				}
			}
		}
	}

	for _, result := range results {
		if result.IsValid {
			summary.Valid++
		} else {
			summary.Invalid++
		}

		for _, reason := range result.Reasons {
			summary.Failures.Add(reason)
		}
	}

	return summary
}

// CompletenessPercent returns the completeness of field as a percentage of
// the total record count.
func (s *Summary) CompletenessPercent(field string) float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.Completeness[field]) / float64(s.Total) * 100
}

const reportWidth = 60

// Render produces the quality report text: totals, completeness percentages
// per field, and validation failures ordered most-common-first. The field
// column is aligned by display width so wide characters line up too.
func (s *Summary) Render() string {
	divider := strings.Repeat("=", reportWidth)
	rule := strings.Repeat("-", reportWidth)

	lines := []string{
		divider,
		"DATA QUALITY REPORT",
		divider,
		"",
		fmt.Sprintf("Total records: %d", s.Total),
		fmt.Sprintf("Valid: %d", s.Valid),
		fmt.Sprintf("Invalid: %d", s.Invalid),
		"",
		rule,
		"Field completeness percentages",
		rule,
	}

	nameWidth := 0
	for _, field := range models.ReportFields {
		if w := runewidth.StringWidth(field); w > nameWidth {
			nameWidth = w
		}
	}

	for _, field := range models.ReportFields {
		padding := strings.Repeat(" ", nameWidth-runewidth.StringWidth(field))
		lines = append(lines, fmt.Sprintf("  %s:%s %.1f%%", field, padding, s.CompletenessPercent(field)))
	}

	lines = append(lines, "", rule, "Common validation failures", rule)

	entries := s.Failures.MostCommon()
	if len(entries) == 0 {
		lines = append(lines, "  (none)")
	} else {
		for _, entry := range entries {
			lines = append(lines, fmt.Sprintf("  [%dx] %s", entry.Count, entry.Reason))
		}
	}

	lines = append(lines, "", divider)

	return strings.Join(lines, "\n")
}
