package bgg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the base URL for the BGG XML API.
	BaseURL = "https://boardgamegeek.com/xmlapi2"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Fetcher issues a GET against the catalog API and returns the raw body.
// path is relative to the API base, e.g. "/thing".
type Fetcher interface {
	FetchRaw(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// Config holds the configuration for the BGG API client.
type Config struct {
	Token      string        // BGG API Bearer Token; calls fail with AuthRequiredError when empty
	BaseURL    string        // Optional: API base (default: BaseURL)
	Timeout    time.Duration // Optional: HTTP request timeout (default: 30s)
	HTTPClient *http.Client  // Optional: overrides Timeout
	Limiter    *rate.Limiter // Optional: paces outgoing requests
	Logger     *slog.Logger  // Optional: defaults to slog.Default()
}

// Client is the direct, token-authenticated BGG API transport.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new BGG API client. A missing token is not an error
// here; every request will report AuthRequiredError until one is set.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: httpClientFor(cfg.HTTPClient, cfg.Timeout),
		token:      strings.TrimSpace(cfg.Token),
		baseURL:    baseURLOr(cfg.BaseURL),
		limiter:    cfg.Limiter,
		logger:     loggerOr(cfg.Logger),
	}
}

// HasToken reports whether the client has a credential configured.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// FetchRaw implements Fetcher.
func (c *Client) FetchRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.token == "" {
		return nil, newAuthRequiredError()
	}
	target := buildURL(c.baseURL, path, query)
	return doGet(ctx, c.httpClient, c.limiter, c.logger, target, c.token)
}

// doGet performs one authenticated GET and maps the response status.
func doGet(ctx context.Context, hc *http.Client, limiter *rate.Limiter, logger *slog.Logger, target, token string) ([]byte, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, newNetworkError("request cancelled", 0, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, newNetworkError("failed to create request", 0, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/xml")

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		logger.Debug("bgg request failed", slog.String("url", target), slog.String("error", err.Error()))
		return nil, newNetworkError("request failed", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError("failed to read response body", resp.StatusCode, err)
	}

	logger.Debug("bgg request",
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, newAuthRejectedError(resp.StatusCode)
	default:
		return nil, newNetworkError(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), resp.StatusCode, nil)
	}
}

func buildURL(base, path string, query url.Values) string {
	u := strings.TrimRight(base, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func httpClientFor(hc *http.Client, timeout time.Duration) *http.Client {
	if hc != nil {
		return hc
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func baseURLOr(base string) string {
	if base == "" {
		return BaseURL
	}
	return base
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
