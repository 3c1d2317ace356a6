// Package catalog is a thin client for the restaurant catalog API (Zelty).
//
// Responses are passed through untouched: the client only checks the status
// code and that the body is JSON.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/tacomemo/internal/config"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Resource is an upstream catalog path relative to the base URL.
type Resource string

const (
	Tags   Resource = "catalog/tags"
	Dishes Resource = "catalog/dishes"
	Menus  Resource = "catalog/menus"
)

// defaultMaxBodySize caps how much of an upstream response is buffered.
const defaultMaxBodySize = 16 << 20

var (
	errInvalidJSON  = errors.New("response body is not valid JSON")
	errBodyTooLarge = errors.New("response body exceeds the size limit")
)

// UpstreamError is returned for any failed catalog call: transport errors,
// non-2xx statuses and malformed bodies.
type UpstreamError struct {
	Resource   Resource
	Status     int
	StatusText string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog %s: upstream responded %d %s", e.Resource, e.Status, e.StatusText)
	}
	return fmt.Sprintf("catalog %s: %v", e.Resource, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Observer receives one observation per upstream call.
type Observer interface {
	ObserveUpstream(resource, outcome string, d time.Duration)
}

type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	logger   *zerolog.Logger
	observer Observer
	maxBody  int64
}

// NewClient builds a client from the catalog configuration. observer may be
// nil.
func NewClient(cfg config.CatalogConfig, logger *zerolog.Logger, observer Observer) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newrelic.NewRoundTripper(http.DefaultTransport),
		},
		logger:   logger,
		observer: observer,
		maxBody:  defaultMaxBodySize,
	}
}

// Get fetches resource, forwarding the non-empty entries of params as the
// query string, and returns the upstream body unchanged.
func (c *Client) Get(ctx context.Context, resource Resource, params url.Values) ([]byte, error) {
	start := time.Now()

	body, err := c.get(ctx, resource, params)

	if c.observer != nil {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		c.observer.ObserveUpstream(string(resource), outcome, time.Since(start))
	}

	return body, err
}

func (c *Client) get(ctx context.Context, resource Resource, params url.Values) ([]byte, error) {
	endpoint, err := url.Parse(c.baseURL + "/" + string(resource))
	if err != nil {
		return nil, &UpstreamError{Resource: resource, Err: err}
	}
	endpoint.RawQuery = forwardable(params).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &UpstreamError{Resource: resource, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusText := reasonPhrase(resp)

		c.logger.Error().
			Str("resource", string(resource)).
			Int("upstream_status", resp.StatusCode).
			Str("upstream_status_text", statusText).
			Msg("catalog upstream returned an error status")

		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBody))

		return nil, &UpstreamError{
			Resource:   resource,
			Status:     resp.StatusCode,
			StatusText: statusText,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &UpstreamError{Resource: resource, Err: err}
	}

	if int64(len(body)) > c.maxBody {
		c.logger.Error().
			Str("resource", string(resource)).
			Int64("limit_bytes", c.maxBody).
			Msg("catalog upstream body too large")

		return nil, &UpstreamError{Resource: resource, Err: errBodyTooLarge}
	}

	if !json.Valid(body) {
		return nil, &UpstreamError{Resource: resource, Err: errInvalidJSON}
	}

	return body, nil
}

// reasonPhrase returns the upstream's own status text, "Forbidden" for
// "403 Forbidden", falling back to the standard text.
func reasonPhrase(resp *http.Response) string {
	if text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// forwardable drops parameters that are absent or empty.
func forwardable(params url.Values) url.Values {
	out := url.Values{}
	for key, values := range params {
		if len(values) > 0 && values[0] != "" {
			out.Set(key, values[0])
		}
	}
	return out
}
