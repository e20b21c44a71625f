// Package provenance stamps pipeline artifacts with an integrity footer and
// verifies them later.
package provenance

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the provenance block.
	TagStart = "---- PROVENANCE_START"
	// TagEnd is the end of the provenance block.
	TagEnd = "PROVENANCE_END ----"
)

// Provenance verification errors.
var (
	ErrNoProvenanceBlock = errors.New("no provenance block found")
	ErrNoHashFound       = errors.New("no dataset hash found in provenance block")
	ErrHashMismatch      = errors.New("dataset hash mismatch")
)

// Record describes when a report was generated and which dataset it covers.
type Record struct {
	GeneratedAt time.Time
	Source      string
	DatasetHash string
}

// provenanceRegex matches the entire provenance block including tags.
var provenanceRegex = regexp.MustCompile(`(?s)----\s*PROVENANCE_START\s*\n(.*?)\n\s*PROVENANCE_END\s*----`)

// Extract removes the provenance block from report text and returns both the
// parsed record and the bare report.
func Extract(report string) (*Record, string) {
	match := provenanceRegex.FindStringSubmatch(report)
	bare := provenanceRegex.ReplaceAllString(report, "")
	bare = strings.TrimRight(bare, "\n")

	if len(match) < 2 {
		return nil, bare
	}

	rec := &Record{}

	lines := strings.Split(match[1], "\n")
	for _, line := range lines {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "GENERATED":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				rec.GeneratedAt = t
			}
		case "SOURCE":
			rec.Source = val
		case "DATASET_HASH":
			rec.DatasetHash = val
		}
	}

	return rec, bare
}

// DatasetHash computes the SHA-256 hash of a cleaned dataset.
func DatasetHash(dataset []byte) string {
	hash := sha256.Sum256(dataset)

	return hex.EncodeToString(hash[:])
}

// Stamp appends or replaces the provenance block on report text, binding it
// to the dataset it describes.
func Stamp(report, source string, dataset []byte) string {
	_, bare := Extract(report)

	now := time.Now().UTC().Format(time.RFC3339)

	block := fmt.Sprintf("\n\n%s\nGENERATED: %s\nSOURCE: %s\nDATASET_HASH: %s\n%s",
		TagStart, now, source, DatasetHash(dataset), TagEnd)

	return bare + block
}

// Verify checks that a stamped report matches the given dataset.
func Verify(report string, dataset []byte) (bool, error) {
	rec, _ := Extract(report)
	if rec == nil {
		return false, ErrNoProvenanceBlock
	}

	if rec.DatasetHash == "" {
		return false, ErrNoHashFound
	}

	calculated := DatasetHash(dataset)
	if calculated != rec.DatasetHash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, rec.DatasetHash, calculated)
	}

	return true, nil
}
