// Package sheets fetches and decodes a published spreadsheet export, either
// plain CSV or a Google Visualization JSON envelope, into raw rows for the
// normalizer.
package sheets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/ice-report-service/internal/domain"
)

// Client fetches the configured export URL. It implements pipeline.Source.
type Client struct {
	exportURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a fetcher for a spreadsheet export URL.
func NewClient(exportURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		exportURL: exportURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch retrieves the export and decodes it into raw rows. Failures map onto
// the load taxonomy: non-success statuses and HTML-shaped bodies wrap
// domain.ErrTransport, malformed envelopes wrap domain.ErrDecode.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch export: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: export returned HTTP %d", domain.ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read export body: %v", domain.ErrTransport, err)
	}

	return DecodeExport(string(body))
}

// DecodeExport sniffs the export shape and decodes it. An HTML document means
// the sheet's sharing permissions are misconfigured and the server sent a
// login or error page; that is a transport failure, not data.
func DecodeExport(text string) ([]domain.RawRow, error) {
	trimmed := strings.TrimSpace(text)

	if looksLikeHTML(trimmed) {
		return nil, fmt.Errorf("%w: export returned an HTML page, check sheet sharing permissions", domain.ErrTransport)
	}
	if looksLikeGViz(trimmed) {
		return decodeGViz(trimmed)
	}
	return decodeCSV(text), nil
}

func looksLikeHTML(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
}

func looksLikeGViz(trimmed string) bool {
	return strings.HasPrefix(trimmed, "/*O_o*/") ||
		strings.Contains(trimmed, "google.visualization.Query.setResponse")
}
