// Package summary generates the one-sentence narrative synopsis of a QC run
// by calling an external text-generation endpoint. The service is a
// non-critical enrichment: it never returns an error outward and degrades to
// fixed fallback sentences when unconfigured or unreachable.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/five82/mediaqc/internal/logging"
	"github.com/five82/mediaqc/internal/qc"
)

const userAgent = "MediaQC-Go/0.1.0"

// Fixed sentences returned without calling the remote service.
const (
	// PassSentence is returned for an empty issue list.
	PassSentence = "This file passed all quality control checks successfully."
	// NotConfiguredSentence is returned when no endpoint is configured.
	NotConfiguredSentence = "Summary service not configured. Summary not available."
	// ServiceErrorSentence is returned when the remote call fails.
	ServiceErrorSentence = "Could not generate summary due to a service error."
)

// Summarizer produces a human-readable synopsis for an issue list.
type Summarizer interface {
	Summarize(ctx context.Context, issues []qc.Issue) string
}

// Settings configures the HTTP-backed summarizer.
type Settings struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
	Retries  int
}

// NewService builds a summarizer backed by the configured endpoint. When no
// endpoint is configured, a disabled implementation is returned that always
// answers with the not-configured fallback (or the pass sentence for clean
// files).
func NewService(settings Settings) Summarizer {
	endpoint := strings.TrimSpace(settings.Endpoint)
	if endpoint == "" {
		return disabledSummarizer{}
	}

	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := settings.Retries
	if retries < 0 {
		retries = 0
	}

	return &httpSummarizer{
		endpoint: endpoint,
		token:    settings.Token,
		retries:  retries,
		client:   &http.Client{Timeout: timeout},
	}
}

type disabledSummarizer struct{}

func (disabledSummarizer) Summarize(_ context.Context, issues []qc.Issue) string {
	if len(issues) == 0 {
		return PassSentence
	}
	return NotConfiguredSentence
}

type httpSummarizer struct {
	endpoint string
	token    string
	retries  int
	client   *http.Client
}

type summaryRequest struct {
	Issues []qc.Issue `json:"issues"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

func (s *httpSummarizer) Summarize(ctx context.Context, issues []qc.Issue) string {
	if len(issues) == 0 {
		return PassSentence
	}

	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(500 * time.Millisecond):
			case <-ctx.Done():
				return ServiceErrorSentence
			}
		}
		sentence, err := s.request(ctx, issues)
		if err == nil {
			return sentence
		}
		lastErr = err
	}

	logging.Warn("summary service call failed", "error", lastErr)
	return ServiceErrorSentence
}

func (s *httpSummarizer) request(ctx context.Context, issues []qc.Issue) (string, error) {
	body, err := json.Marshal(summaryRequest{Issues: issues})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &statusError{code: resp.StatusCode}
	}

	var decoded summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	sentence := strings.TrimSpace(decoded.Summary)
	if sentence == "" {
		return "", &statusError{code: resp.StatusCode, blank: true}
	}
	return sentence, nil
}

type statusError struct {
	code  int
	blank bool
}

func (e *statusError) Error() string {
	if e.blank {
		return "summary endpoint returned a blank summary"
	}
	return "summary endpoint returned status " + http.StatusText(e.code)
}
