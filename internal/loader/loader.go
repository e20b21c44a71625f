// Package loader reads raw record sets from local files or HTTP sources.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"dqpipe/internal/config"
	"dqpipe/internal/models"
	"dqpipe/pkg/utils"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Loader fetches and decodes record sets, with config-driven retry logic for
// remote sources.
type Loader struct {
	client      *http.Client
	http        *utils.HTTPHelper
	retryPolicy *config.RetryPolicy
}

// New creates a new loader instance with default retry settings.
func New() *Loader {
	return NewWithConfig(&config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    500,
		MaxDelayMs:        30000,
		BackoffMultiplier: 2.0,
		TimeoutSec:        30,
	})
}

// NewWithConfig creates a new loader with a custom retry policy.
func NewWithConfig(retryPolicy *config.RetryPolicy) *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		http:        utils.NewHTTPHelper(),
		retryPolicy: retryPolicy,
	}
}

// Load reads records from source, which is either an HTTP(S) URL or a local
// file path.
func (l *Loader) Load(source string) ([]models.Record, error) {
	var (
		data []byte
		err  error
	)

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = l.fetch(source)
	} else {
		data, err = os.ReadFile(source)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load records from %s: %w", source, err)
	}

	return Decode(data)
}

// Decode parses a JSON array of records. A single top-level object is
// wrapped into a one-record slice.
func Decode(data []byte) ([]models.Record, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single models.Record
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("failed to parse record: %w", err)
		}

		return []models.Record{single}, nil
	}

	var records []models.Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}

	return records, nil
}

// fetch retrieves the raw bytes from a URL, retrying with exponential
// backoff per the retry policy.
func (l *Loader) fetch(url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= l.retryPolicy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if delay := l.retryPolicy.GetRetryDelay(attempt); delay > 0 {
				time.Sleep(delay)
			}
		}

		req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header = l.http.BuildHeaders(nil)

		resp, err := l.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, l.retryPolicy.MaxAttempts, err)

			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil && readErr == nil {
			readErr = closeErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("%w: %d (attempt %d/%d)", ErrUnexpectedStatusCode, resp.StatusCode, attempt, l.retryPolicy.MaxAttempts)

			continue
		}

		if readErr != nil {
			lastErr = fmt.Errorf("failed to read response (attempt %d/%d): %w", attempt, l.retryPolicy.MaxAttempts, readErr)

			continue
		}

		return body, nil
	}

	return nil, lastErr
}
