package pixabay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/mmcdole/pixgrid/internal/domain"
)

const (
	// DefaultBaseURL is the image search endpoint
	DefaultBaseURL = "https://pixabay.com/api/"

	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "pixgrid/1.0"

	// maxErrorBody caps how much of an error body ends up in logs and errors
	maxErrorBody = 512
)

// Client implements domain.ImageRepository for Pixabay
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a new Pixabay API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches one page of images matching params
func (c *Client) Search(ctx context.Context, params domain.SearchParams, page int) (domain.Page, error) {
	if c.apiKey == "" {
		return domain.Page{}, domain.ErrMissingAPIKey
	}

	query := params.Values(page)
	query.Set("key", c.apiKey)

	body, err := c.doRequest(ctx, query)
	if err != nil {
		return domain.Page{}, err
	}

	var resp SearchResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return domain.Page{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapPage(&resp, params, page), nil
}

// doRequest performs a GET against the search endpoint
func (c *Client) doRequest(ctx context.Context, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("pixabay request", "url", redactKey(reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("pixabay request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		msg := errorMessage(body)
		c.logger.Error("pixabay request error", "status", resp.StatusCode, "body", msg)
		// The API reports a bad key as a plain 400
		if strings.Contains(strings.ToLower(msg), "invalid api key") {
			return nil, domain.ErrAuthFailed
		}
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, msg)
	}

	return body, nil
}

// errorMessage trims an error body such as `[ERROR 400] "page" is out of valid range.`
func errorMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	return msg
}

// redactKey hides the API key in URLs written to logs
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
