// Package fmp provides the HTTP client for the Financial Modeling Prep
// /stable REST API.
package fmp

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobmcallan/fmp-mcp/internal/common"
	"github.com/bobmcallan/fmp-mcp/internal/config"
)

// maxResponseSize caps response bodies to prevent OOM from unexpectedly
// large responses (full EOD histories can run to tens of megabytes).
const maxResponseSize = 50 << 20 // 50MB

// Client issues GET requests against the FMP /stable API with the API key
// injected on every call. It performs exactly one attempt per request; the
// caller decides what a failure means.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a client for the configured FMP endpoint.
func NewClient(cfg config.FMPConfig, logger *common.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		logger: logger,
	}
}

// BaseURL returns the configured FMP base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get requests {baseURL}/{endpoint} with the given query parameters and
// returns the raw response body. The API key is always injected as the
// apikey query parameter, overwriting any caller-supplied value. A non-2xx
// status yields *UpstreamError; a request that produced no response yields
// *UnavailableError.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for key, vals := range params {
		for _, v := range vals {
			query.Add(key, v)
		}
	}
	query.Set("apikey", c.apiKey)

	requestURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/") + "?" + query.Encode()

	c.logger.Debug().Str("method", "GET").Str("endpoint", endpoint).Msg("fmp request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("endpoint", endpoint).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("fmp request failed")
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	c.logger.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("fmp response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
