package lookup

import (
	"context"
	"edusync/src/logger"
	"edusync/src/model"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// NoResult is returned in place of a summary on a non-success status
const NoResult = "No result found."

const maxSummaryBytes = 1 << 20

type summaryResponse struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Wikipedia fetches page summaries from the Wikipedia REST API
type Wikipedia struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewWikipedia creates a lookup client with the configured socket ceiling
func NewWikipedia(config model.LookupConfig) *Wikipedia {
	return NewWikipediaWithClient(config, &http.Client{Timeout: config.Timeout})
}

// NewWikipediaWithClient uses the supplied HTTP client
func NewWikipediaWithClient(config model.LookupConfig, client *http.Client) *Wikipedia {
	return &Wikipedia{
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
		userAgent: config.UserAgent,
		client:    client,
	}
}

// Search returns the summary extract for topic. The topic is used as the page
// path segment as given. Any non-2xx status yields NoResult; transport and
// decode failures are returned to the caller.
func (w *Wikipedia) Search(ctx context.Context, topic string) (string, error) {
	endpoint := w.baseURL + "/page/summary/" + url.PathEscape(topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build summary request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if w.userAgent != "" {
		req.Header.Set("User-Agent", w.userAgent)
	}

	start := time.Now()
	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Debug().Str("topic", topic).Int("status", resp.StatusCode).Msg("no summary found")
		return NoResult, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSummaryBytes))
	if err != nil {
		return "", fmt.Errorf("read summary: %w", err)
	}

	var summary summaryResponse
	if err := sonic.Unmarshal(body, &summary); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}

	logger.Debug().
		Str("topic", topic).
		Str("title", summary.Title).
		Int("extract_length", len(summary.Extract)).
		Dur("elapsed", time.Since(start)).
		Msg("summary fetched")

	return summary.Extract, nil
}
