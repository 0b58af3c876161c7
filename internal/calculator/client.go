package calculator

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"scenario-runner/internal/model"
)

// DefaultBaseURL is the public PolicyEngine API.
const DefaultBaseURL = "https://api.policyengine.org"

// Client posts situations to the remote calculator. Every call goes over the
// wire: there is no caching and no retry, and timeouts are the transport's.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	logger  *slog.Logger
}

type Option func(*Client)

// WithHTTPClient swaps the underlying fasthttp client.
func WithHTTPClient(hc *fasthttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &fasthttp.Client{Name: "scenario-runner"},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL is the calculate endpoint for j.
func (c *Client) URL(j model.Jurisdiction) string {
	return c.baseURL + "/" + string(j) + "/calculate"
}

// Calculate sends body as-is and returns the raw JSON response with its
// status code. Non-2xx responses with a JSON body are returned, not failed:
// the calculator reports semantic errors that way.
func (c *Client) Calculate(j model.Jurisdiction, requestID string, body []byte) (model.Result, int, error) {
	url := c.URL(j)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}
	req.SetBody(body)

	start := time.Now()
	if err := c.http.Do(req, resp); err != nil {
		c.logger.Warn("calculate failed",
			"request_id", requestID, "url", url, "error", err)
		return nil, 0, fmt.Errorf("%w: POST %s: %w", model.ErrTransport, url, err)
	}

	status := resp.StatusCode()
	raw, err := resp.BodyUncompressed()
	if err != nil {
		return nil, status, fmt.Errorf("%w: %w", model.ErrInvalidResponse, err)
	}
	// resp is released on return
	raw = append([]byte(nil), raw...)

	c.logger.Info("calculate",
		"request_id", requestID,
		"url", url,
		"status", status,
		"bytes", len(raw),
		"duration", time.Since(start))

	if !json.Valid(raw) {
		return nil, status, fmt.Errorf("%w: status %d from %s", model.ErrInvalidResponse, status, url)
	}
	return raw, status, nil
}
