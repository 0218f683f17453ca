// Package client talks to the file-service over HTTP. Failures are caught
// here, at the network boundary, and converted into typed results: callers
// see sentinel errors or fallback data, never raw transport state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/finite-collective/docdesk/pkg/docs"
)

// Client issues requests against a file-service base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithClock overrides the time source used for metadata stamps, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a client for the file-service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health reports whether the file-service is reachable and its root healthy.
func (c *Client) Health(ctx context.Context) bool {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/health", &payload); err != nil {
		c.logger.Debug("file-service unavailable", "error", err)
		return false
	}
	return payload.Status == "ok"
}

// FetchTree retrieves the documentation tree. On any transport failure it
// returns the static fallback tree and offline=true, so the UI never renders
// empty on first load.
func (c *Client) FetchTree(ctx context.Context) (tree []*docs.Node, offline bool) {
	if err := c.getJSON(ctx, "/api/docs/tree", &tree); err != nil {
		c.logger.Warn("falling back to static tree", "error", err)
		return FallbackTree(c.now()), true
	}
	return tree, false
}

// GetDocument reads one document. A 404 maps to docs.ErrNotFound.
func (c *Client) GetDocument(ctx context.Context, path string) (docs.Document, error) {
	var payload struct {
		Content  string        `json:"content"`
		Metadata docs.Metadata `json:"metadata"`
	}
	if err := c.getJSON(ctx, "/api/docs/"+escapePath(path), &payload); err != nil {
		return docs.Document{}, err
	}
	return docs.Document{Path: path, Content: payload.Content, Metadata: payload.Metadata}, nil
}

// SaveResult is the file-service's acknowledgement of a write.
type SaveResult struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}

// SaveDocument writes a document, stamping lastUpdated into the metadata
// before sending so the service persists it in the sidecar.
func (c *Client) SaveDocument(ctx context.Context, path, content string, meta docs.Metadata) (SaveResult, error) {
	stamped := meta.Clone()
	stamped[docs.MetaLastUpdated] = c.now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(map[string]any{
		"path":     path,
		"content":  content,
		"metadata": stamped,
	})
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to encode save request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/docs", bytes.NewReader(body))
	if err != nil {
		return SaveResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return SaveResult{}, fmt.Errorf("save request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SaveResult{}, fmt.Errorf("save failed: %s", readError(resp))
	}

	var result SaveResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return SaveResult{}, fmt.Errorf("failed to decode save response: %w", err)
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", docs.ErrNotFound, readError(resp))
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readError(resp))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func readError(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return resp.Status
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return string(data)
}

// escapePath escapes each segment of a slash-separated document path.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// FallbackTree is the hard-coded minimal tree served when the file-service
// is unreachable: one folder wrapping one placeholder file.
func FallbackTree(now time.Time) []*docs.Node {
	return []*docs.Node{
		docs.NewFolder("docs", []*docs.Node{
			docs.NewFile("README.md", "README.md", docs.Metadata{
				docs.MetaAuthor:      "Developer",
				docs.MetaLastUpdated: now.UTC().Format(time.RFC3339),
			}),
		}),
	}
}
