// Package azsearch is a REST client for the managed search index
// (Azure AI Search wire surface: api-key auth, OData eq filters).
package azsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/solistra/askdex/internal/domain"
	"github.com/solistra/askdex/internal/domain/document"
	"github.com/solistra/askdex/internal/metrics"
)

// maxErrorBody caps how much of a backend error body ends up in error text.
const maxErrorBody = 2048

// Config holds the search backend settings.
type Config struct {
	Endpoint   string
	Index      string
	APIKey     string
	APIVersion string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Client queries the managed search index. Built once at startup;
// safe for concurrent use.
type Client struct {
	endpoint   string
	index      string
	apiKey     string
	apiVersion string
	httpc      *http.Client
	logger     *zap.Logger
}

// NewClient creates a search index client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		index:      cfg.Index,
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		httpc:      &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Query is a single search request against the index.
type Query struct {
	Text   string
	Filter string // compiled OData expression, "" for none
	Top    int
	Select []string
	Mode   string // "any" / "all", "" for backend default
}

type searchRequest struct {
	Search     string `json:"search"`
	Top        int    `json:"top"`
	Filter     string `json:"filter,omitempty"`
	Select     string `json:"select,omitempty"`
	SearchMode string `json:"searchMode,omitempty"`
}

type searchDoc struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

type searchResponse struct {
	Value []searchDoc `json:"value"`
}

// Search runs the query and returns documents in backend order, with
// transport-level metrics. All failures wrap domain.ErrRetrievalFailed.
func (c *Client) Search(ctx context.Context, q Query) ([]document.Document, error) {
	body := searchRequest{
		Search:     q.Text,
		Top:        q.Top,
		Filter:     q.Filter,
		Select:     strings.Join(q.Select, ","),
		SearchMode: q.Mode,
	}

	start := time.Now()

	var resp searchResponse
	err := c.postJSON(ctx, c.searchURL(), body, &resp)

	duration := time.Since(start)

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(c.index, "error").Inc()
		return nil, err
	}

	metrics.SearchRequestsTotal.WithLabelValues(c.index, "success").Inc()
	metrics.SearchRequestDuration.WithLabelValues(c.index).Observe(duration.Seconds())

	docs := make([]document.Document, 0, len(resp.Value))
	for _, d := range resp.Value {
		docs = append(docs, document.New(d.Title, d.Content, d.Author, d.Category, d.Date))
	}
	return docs, nil
}

var (
	retrieveFields = []string{"title", "content", "author", "category", "date"}
	facetFields    = []string{"author", "category"}
)

// Retrieve fetches the documents matching query and the compiled filter
// expression, requiring all query terms to match.
func (c *Client) Retrieve(ctx context.Context, query, filterExpr string, top int) ([]document.Document, error) {
	return c.Search(ctx, Query{
		Text:   query,
		Filter: filterExpr,
		Top:    top,
		Select: retrieveFields,
		Mode:   "all",
	})
}

// ScanFacetFields pulls author and category fields from up to top
// documents, for building the filter value lists.
func (c *Client) ScanFacetFields(ctx context.Context, top int) ([]document.Document, error) {
	return c.Search(ctx, Query{
		Text:   "*",
		Top:    top,
		Select: facetFields,
	})
}

// HealthCheck verifies index availability via the document count endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.countURL(), http.NoBody)
	if err != nil {
		return fmt.Errorf("build count request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("document count: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("document count: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) searchURL() string {
	return fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s",
		c.endpoint, url.PathEscape(c.index), url.QueryEscape(c.apiVersion))
}

func (c *Client) countURL() string {
	return fmt.Sprintf("%s/indexes/%s/docs/$count?api-version=%s",
		c.endpoint, url.PathEscape(c.index), url.QueryEscape(c.apiVersion))
}

// postJSON sends the request and decodes a JSON response into out.
// Non-2xx statuses and transport failures wrap domain.ErrRetrievalFailed.
func (c *Client) postJSON(ctx context.Context, reqURL string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal search request: %w: %w", err, domain.ErrRetrievalFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build search request: %w: %w", err, domain.ErrRetrievalFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("search request: %w: %w", err, domain.ErrRetrievalFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("search API error %d: %s: %w",
			resp.StatusCode, errorDetail(raw), domain.ErrRetrievalFailed)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode search response: %w: %w", err, domain.ErrRetrievalFailed)
	}
	return nil
}

// errorDetail extracts the message from a backend error body
// ({"error": {"code", "message"}} format), falling back to the raw body.
func errorDetail(raw []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return string(raw)
}
