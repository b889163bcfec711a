package rsvp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/secmon-lab/rsvp/pkg/utils/retry"
)

const (
	// DefaultRequestTimeout bounds each single HTTP round trip
	DefaultRequestTimeout = 10 * time.Second

	// contentTypeText is a CORS "simple" content type; the Apps Script
	// backend rejects the OPTIONS preflight a JSON content type would cause
	contentTypeText = "text/plain;charset=utf-8"

	maxBodySize = 16 << 20
)

// Config holds the backend location
type Config struct {
	EndpointURL string
}

// Client talks to the spreadsheet-backed guest-list endpoint. It keeps no
// state between calls and is safe for concurrent use.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	policy     retry.Policy
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithRetryPolicy sets the retry policy of attendance updates
func WithRetryPolicy(p retry.Policy) Option {
	return func(client *Client) {
		client.policy = p
	}
}

// WithRequestTimeout sets the per-request timeout; zero disables it
func WithRequestTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.timeout = d
	}
}

// New creates a new Client
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.EndpointURL == "" {
		return nil, goerr.New("endpoint URL is required")
	}
	endpoint, err := url.Parse(cfg.EndpointURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid endpoint URL", goerr.V("endpoint", cfg.EndpointURL))
	}
	if !endpoint.IsAbs() || endpoint.Host == "" {
		return nil, goerr.New("endpoint URL must be absolute", goerr.V("endpoint", cfg.EndpointURL))
	}

	client := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		policy:     retry.DefaultPolicy(),
		timeout:    DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}

	if err := client.policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid retry policy")
	}

	return client, nil
}

// FetchGuestList retrieves every guest row. It issues exactly one request
// and is not retried.
func (c *Client) FetchGuestList(ctx context.Context) (*model.GuestList, error) {
	u := *c.endpoint
	q := u.Query()
	q.Set("op", "list")
	u.RawQuery = q.Encode()

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, u.String(), nil, "", &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch guest list")
	}

	list := &model.GuestList{
		Headers: resp.Headers,
		Guests:  make([]*model.Guest, 0, len(resp.Rows)),
	}
	for _, r := range resp.Rows {
		list.Guests = append(list.Guests, r.toGuest())
	}

	return list, nil
}

// UpdateAttendance overwrites the Attendance column of one guest. Failures
// of any kind are retried according to the retry policy with the same
// payload; the last error is returned once attempts are exhausted. The
// attendance value is sent as given, validation is the backend's job.
func (c *Client) UpdateAttendance(ctx context.Context, id types.GuestID, attendance types.Attendance) (*model.UpdateResult, error) {
	body, err := json.Marshal(newUpdatePayload(id, attendance))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode update payload")
	}

	result, err := retry.Do(ctx, c.policy, func(ctx context.Context) (*model.UpdateResult, error) {
		var res model.UpdateResult
		if err := c.do(ctx, http.MethodPost, c.endpoint.String(), body, contentTypeText, &res); err != nil {
			return nil, err
		}
		return &res, nil
	})
	if err != nil {
		if ctx.Err() != nil && !IsCancelled(err) {
			err = goerr.Wrap(err, "attendance update cancelled", goerr.T(ErrTagCancelled))
		}
		return nil, goerr.Wrap(err, "failed to update attendance",
			goerr.V("guest_id", id),
			goerr.V("attendance", attendance),
		)
	}

	return result, nil
}

// do performs a single round trip and decodes a JSON response into out
func (c *Client) do(ctx context.Context, method, target string, body []byte, contentType string, out any) error {
	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, target, reader)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("method", method))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, err, "request did not complete", method)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return c.transportError(ctx, err, "failed to read response body", method)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestFailedError{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Body:       string(data),
		}
		return goerr.Wrap(reqErr, "backend returned error status",
			goerr.T(ErrTagRequestFailed),
			goerr.V("method", method),
			goerr.V("status", resp.StatusCode),
		)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return goerr.Wrap(err, "failed to decode response body",
			goerr.T(ErrTagTransport),
			goerr.V("method", method),
			goerr.V("body", truncate(string(data), 256)),
		)
	}

	return nil
}

func (c *Client) transportError(ctx context.Context, err error, msg, method string) error {
	if ctx.Err() != nil {
		return goerr.Wrap(err, msg, goerr.T(ErrTagCancelled), goerr.V("method", method))
	}
	return goerr.Wrap(err, msg, goerr.T(ErrTagTransport), goerr.V("method", method))
}

// statusText strips the numeric code from resp.Status ("500 Internal Server Error")
func statusText(resp *http.Response) string {
	if text, ok := strings.CutPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); ok {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
