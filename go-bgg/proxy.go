package bgg

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultProxyEndpoints are the indirection hosts tried, in order, when
// direct access to the API is blocked. The encoded target URL is appended.
var DefaultProxyEndpoints = []string{
	"https://corsproxy.io/?url=",
	"https://api.allorigins.win/raw?url=",
}

// ProxyConfig holds the configuration for a ProxyClient.
type ProxyConfig struct {
	Endpoints []string // Optional: defaults to DefaultProxyEndpoints
	Token     string   // Optional: sent only when ForwardToken is set
	// ForwardToken sends Token as a Bearer token to the indirection hosts.
	// They are third parties, so it is off unless asked for.
	ForwardToken bool
	BaseURL      string
	Timeout      time.Duration
	HTTPClient   *http.Client
	Limiter      *rate.Limiter
	Logger       *slog.Logger
}

// ProxyClient fetches through a chain of indirection endpoints, moving to the
// next endpoint only when the current one fails.
type ProxyClient struct {
	httpClient *http.Client
	endpoints  []string
	token      string
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewProxyClient creates a new ProxyClient.
func NewProxyClient(cfg ProxyConfig) *ProxyClient {
	endpoints := cfg.Endpoints
	if endpoints == nil {
		endpoints = DefaultProxyEndpoints
	}
	token := ""
	if cfg.ForwardToken {
		token = strings.TrimSpace(cfg.Token)
	}
	return &ProxyClient{
		httpClient: httpClientFor(cfg.HTTPClient, cfg.Timeout),
		endpoints:  append([]string(nil), endpoints...),
		token:      token,
		baseURL:    baseURLOr(cfg.BaseURL),
		limiter:    cfg.Limiter,
		logger:     loggerOr(cfg.Logger),
	}
}

// FetchRaw implements Fetcher. After every endpoint has failed it returns a
// NetworkError describing the last failure.
func (p *ProxyClient) FetchRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if len(p.endpoints) == 0 {
		return nil, newNetworkError("no proxy endpoints configured", 0, nil)
	}

	target := buildURL(p.baseURL, path, query)

	var (
		lastErr      error
		lastEndpoint string
		attempts     int
	)
	for _, endpoint := range p.endpoints {
		attempts++
		lastEndpoint = endpoint
		wrapped := endpoint + url.QueryEscape(target)
		body, err := doGet(ctx, p.httpClient, p.limiter, p.logger, wrapped, p.token)
		if err == nil {
			return body, nil
		}
		lastErr = err
		p.logger.Warn("proxy endpoint failed",
			slog.String("endpoint", endpoint),
			slog.Int("attempt", attempts),
			slog.String("error", err.Error()),
		)
		if ctx.Err() != nil {
			break
		}
	}

	failure := &NetworkError{
		Message:  "all proxy endpoints failed: " + lastErr.Error(),
		Endpoint: lastEndpoint,
		Attempts: attempts,
	}
	var netErr *NetworkError
	if errors.As(lastErr, &netErr) {
		failure.Message = "all proxy endpoints failed: " + netErr.Message
		failure.StatusCode = netErr.StatusCode
		failure.Cause = netErr.Cause
	}
	return nil, failure
}
