// Package notion is a small client for the Notion REST API covering the
// calls needed to turn a database into records.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Notion API base URL.
	BaseURL = "https://api.notion.com/v1"

	// DefaultVersion is the Notion-Version header sent with every request.
	DefaultVersion = "2022-06-28"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is the average request rate Notion allows per integration.
	RateLimit = 3.0

	// MaxPageSize is the largest page_size accepted by list endpoints.
	MaxPageSize = 100
)

// Client is a rate-limited HTTP client for the Notion API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	token      string
	baseURL    string
	version    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the bearer token.
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
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithVersion overrides the Notion-Version header.
func WithVersion(v string) ClientOption {
	return func(c *Client) {
		if v != "" {
			c.version = v
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRateLimit overrides the request rate (for testing).
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewClient creates a new Notion API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		logger:     zap.NewNop(),
		baseURL:    BaseURL,
		version:    DefaultVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request and decodes a successful JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.token == "" {
		return fmt.Errorf("%w: no token configured", ErrAuthError)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("notion request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("notion request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if err := checkHTTPErrors(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrInvalidResponse, path, err)
	}
	return nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       "api_error",
		Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
	}

	var body errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
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

// SearchDatabases lists every database shared with the integration.
func (c *Client) SearchDatabases(ctx context.Context) ([]Database, error) {
	var dbs []Database
	var cursor string
	for {
		req := map[string]any{
			"filter":    map[string]string{"property": "object", "value": "database"},
			"page_size": MaxPageSize,
		}
		if cursor != "" {
			req["start_cursor"] = cursor
		}

		var resp paginated[rawDatabase]
		if err := c.do(ctx, http.MethodPost, "/search", req, &resp); err != nil {
			return nil, err
		}
		for _, d := range resp.Results {
			dbs = append(dbs, Database{ID: d.ID, Title: plainText(d.Title)})
		}

		if !resp.HasMore || resp.NextCursor == nil {
			return dbs, nil
		}
		cursor = *resp.NextCursor
	}
}

// DatabaseProperties returns the database schema sorted by property name.
func (c *Client) DatabaseProperties(ctx context.Context, databaseID string) ([]Property, error) {
	var resp rawSchema
	if err := c.do(ctx, http.MethodGet, "/databases/"+url.PathEscape(databaseID), nil, &resp); err != nil {
		return nil, err
	}

	props := make([]Property, 0, len(resp.Properties))
	for name, p := range resp.Properties {
		props = append(props, Property{ID: p.ID, Name: name, Type: p.Type})
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	return props, nil
}

// QueryDatabase returns the rows of a database, following pagination until
// the result set is exhausted or opts.Limit rows were collected.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, opts QueryOptions) ([]RawPage, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var pages []RawPage
	var cursor string
	for {
		size := pageSize
		if opts.Limit > 0 && opts.Limit-len(pages) < size {
			size = opts.Limit - len(pages)
		}
		req := map[string]any{"page_size": size}
		if len(opts.Sorts) > 0 {
			req["sorts"] = opts.Sorts
		}
		if cursor != "" {
			req["start_cursor"] = cursor
		}

		var resp paginated[RawPage]
		path := "/databases/" + url.PathEscape(databaseID) + "/query"
		if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
			return nil, err
		}
		pages = append(pages, resp.Results...)

		if opts.Limit > 0 && len(pages) >= opts.Limit {
			return pages[:opts.Limit], nil
		}
		if !resp.HasMore || resp.NextCursor == nil {
			return pages, nil
		}
		cursor = *resp.NextCursor
	}
}

// PageBlocks returns the top-level blocks of a page as plain text.
func (c *Client) PageBlocks(ctx context.Context, pageID string) ([]Block, error) {
	var blocks []Block
	var cursor string
	for {
		q := url.Values{}
		q.Set("page_size", fmt.Sprint(MaxPageSize))
		if cursor != "" {
			q.Set("start_cursor", cursor)
		}

		var resp paginated[map[string]json.RawMessage]
		path := "/blocks/" + url.PathEscape(pageID) + "/children?" + q.Encode()
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}
		for _, raw := range resp.Results {
			blocks = append(blocks, parseBlock(raw))
		}

		if !resp.HasMore || resp.NextCursor == nil {
			return blocks, nil
		}
		cursor = *resp.NextCursor
	}
}

// parseBlock reads id, type and the rich text stored under the type key.
func parseBlock(raw map[string]json.RawMessage) Block {
	var b Block
	_ = json.Unmarshal(raw["id"], &b.ID)
	_ = json.Unmarshal(raw["type"], &b.Type)

	if detail, ok := raw[b.Type]; ok {
		var content struct {
			RichText []RichText `json:"rich_text"`
		}
		if json.Unmarshal(detail, &content) == nil {
			b.Text = plainText(content.RichText)
		}
	}
	return b
}

func plainText(parts []RichText) string {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.PlainText)
	}
	return sb.String()
}
