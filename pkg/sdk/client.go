package askdex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response is read when
// building an APIError message.
const maxErrorBody = 4 << 10

// Client is an HTTP client for the askdex service. It is safe for
// concurrent use by multiple goroutines.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL must not be empty", ErrInvalidInput)
	}

	cfg := clientConfig{timeout: defaultTimeout}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	httpc := cfg.httpc
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.apiKey,
		httpc:   httpc,
	}, nil
}

// Ask sends a question and returns the generated answer together with
// the documents it was grounded on. Filters narrow retrieval; the zero
// value applies none.
func (c *Client) Ask(ctx context.Context, query string, filters Filters) (*Answer, error) {
	var answer Answer
	if err := c.do(ctx, http.MethodPost, "/chat", chatRequest{Query: query, Filters: filters}, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// FilterValues lists the distinct author and category values present in
// the index, for populating filter pickers.
func (c *Client) FilterValues(ctx context.Context) (*FilterValues, error) {
	var values FilterValues
	if err := c.do(ctx, http.MethodGet, "/filters", nil, &values); err != nil {
		return nil, err
	}
	return &values, nil
}

// Health reports service health. A degraded service responds with 503;
// the report is still returned so callers can inspect the failing
// checks instead of getting an opaque error.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET /health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return nil, c.apiError(resp)
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &status, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	req, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

// apiError turns a non-2xx response into an error. Known failure
// classes carry their sentinel so callers can use errors.Is; the
// *APIError is always in the chain for errors.As.
func (c *Client) apiError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := strings.TrimSpace(string(payload))
	var body errorResponse
	if err := json.Unmarshal(payload, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: msg}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %w", apiErr, ErrInvalidInput)
	case http.StatusBadGateway:
		// The service reports which backend failed in the message.
		switch {
		case strings.Contains(msg, ErrGenerationFailed.Error()):
			return fmt.Errorf("%w: %w", apiErr, ErrGenerationFailed)
		case strings.Contains(msg, ErrRetrievalFailed.Error()):
			return fmt.Errorf("%w: %w", apiErr, ErrRetrievalFailed)
		}
	}
	return apiErr
}
