package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Notion REST API base URL.
	BaseURL = "https://api.notion.com/v1"

	// APIVersion is the Notion-Version header sent with every request.
	APIVersion = "2022-06-28"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is the average of 3 requests per second allowed per
	// integration.
	RateLimit = 3.0

	// MaxPageSize is the largest page size accepted by database queries.
	MaxPageSize = 100
)

// Client is a rate-limited HTTP client for the Notion API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the integration token.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithRateLimit sets the client-side request rate (requests per second).
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a new Notion API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do sends a JSON request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// checkHTTPErrors returns an *APIError if the HTTP response indicates a
// problem, using the error object in the body when there is one.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       "api_error",
		Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var body errorResponse
	if json.Unmarshal(data, &body) == nil && body.Object == "error" {
		if body.Code != "" {
			apiErr.Code = body.Code
		}
		if body.Message != "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

// QueryDatabase fetches one page of rows of a database.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) (*QueryResponse, error) {
	if req.PageSize <= 0 || req.PageSize > MaxPageSize {
		req.PageSize = MaxPageSize
	}

	var resp QueryResponse
	if err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", req, &resp); err != nil {
		return nil, err
	}
	if resp.Object != "" && resp.Object != "list" {
		return nil, fmt.Errorf("%w: expected list object, got %q", ErrInvalidResponse, resp.Object)
	}
	return &resp, nil
}

// CreatePage creates a page in a database.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props Properties) (*Page, error) {
	req := CreatePageRequest{
		Parent:     Parent{DatabaseID: databaseID},
		Properties: props,
	}

	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", req, &page); err != nil {
		return nil, err
	}
	if page.ID == "" {
		return nil, fmt.Errorf("%w: created page has no id", ErrInvalidResponse)
	}
	return &page, nil
}
