// Package api is the HTTP client for the recipebook backend: BMI submission,
// weight history and the ingredient list.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"recipebook-tracker/internal/bmi"
	"recipebook-tracker/internal/logging"
)

// Client talks to the backend JSON API. It is safe for concurrent use.
type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	log    *zap.Logger

	csrfPage string
	timeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is added
// when the client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where CSRF tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithCSRFPage reads CSRF tokens from the hidden form field of the page at
// path, fetched with the client's own cookie jar.
func WithCSRFPage(path string) Option {
	return func(c *Client) { c.csrfPage = path }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = logging.OrNop(l) }
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		base:   u,
		http:   &http.Client{Jar: jar},
		tokens: StaticToken(""),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.http
	if hc.Jar == nil {
		hc.Jar = jar
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.http = &hc
	if c.csrfPage != "" {
		c.tokens = NewFormTokenSource(c.http, c.base.ResolveReference(&url.URL{Path: c.csrfPage}).String())
	}
	return c, nil
}

// HTTPClient exposes the underlying client, e.g. to share its cookie jar.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// WeightSeries fetches the stored weight history.
func (c *Client) WeightSeries(ctx context.Context) (*Series, error) {
	resp, err := c.do(ctx, http.MethodGet, PathWeightData, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode weight series: %w", err)
	}
	if _, ok := raw["weights"]; !ok {
		if _, legacy := raw["values"]; legacy {
			return nil, ErrSeriesKeyDrift
		}
	}

	var s Series
	if err := remarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode weight series: %w", err)
	}
	if len(s.Labels) != len(s.Weights) {
		return nil, fmt.Errorf("%w: %d labels, %d weights", ErrMalformedSeries, len(s.Labels), len(s.Weights))
	}
	return &s, nil
}

// SubmitBMI posts the raw measurement for persistence. The backend computes
// and returns its own rounded BMI and category.
func (c *Client) SubmitBMI(ctx context.Context, m bmi.Measurement) (*BMIRecord, error) {
	form := url.Values{}
	form.Set("height", strconv.FormatFloat(m.HeightCm, 'f', -1, 64))
	form.Set("weight", strconv.FormatFloat(m.WeightKg, 'f', -1, 64))

	var out BMIRecord
	if err := c.mutate(ctx, PathSubmitBMI, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ingredients fetches the user's ingredient names in backend order.
func (c *Client) Ingredients(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, PathIngredients, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var list IngredientList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	return list.Ingredients, nil
}

// AddIngredient posts a new ingredient name as JSON.
func (c *Client) AddIngredient(ctx context.Context, name string) (string, error) {
	body, err := json.Marshal(addIngredientRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("encode ingredient: %w", err)
	}
	var out errorPayload
	if err := c.mutate(ctx, PathAddIngredient, bytes.NewReader(body), "application/json", &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// DeleteIngredient removes an ingredient by name (form-encoded).
func (c *Client) DeleteIngredient(ctx context.Context, name string) (string, error) {
	form := url.Values{}
	form.Set("name", name)
	var out errorPayload
	if err := c.mutate(ctx, PathDeleteIngredient, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// mutate POSTs body with a CSRF token and decodes the JSON answer into out.
// Backend error payloads become *Error regardless of status.
func (c *Client) mutate(ctx context.Context, path string, body io.Reader, contentType string, out any) error {
	resp, err := c.do(ctx, http.MethodPost, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	var ep errorPayload
	if err := json.Unmarshal(data, &ep); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("%s: %w: %d", path, ErrUnexpectedStatus, resp.StatusCode)
		}
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	if ep.Error != "" {
		return &Error{Status: resp.StatusCode, Message: ep.Error, Details: ep.Details}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w: %d", path, ErrUnexpectedStatus, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	start := time.Now()
	target := c.base.ResolveReference(&url.URL{Path: path})

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method != http.MethodGet {
		req.Header.Set(CSRFHeader, c.csrfToken(ctx))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))
	return resp, nil
}

// csrfToken never fails: a missing token is sent empty and the backend is
// left to reject the request.
func (c *Client) csrfToken(ctx context.Context) string {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn("csrf token unavailable, sending empty token", zap.Error(err))
		return ""
	}
	return tok
}

func statusError(resp *http.Response) error {
	var ep errorPayload
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if json.Unmarshal(data, &ep) == nil && ep.Error != "" {
		return fmt.Errorf("%w: %d: %w", ErrUnexpectedStatus, resp.StatusCode,
			&Error{Status: resp.StatusCode, Message: ep.Error, Details: ep.Details})
	}
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
}

func remarshal(raw map[string]json.RawMessage, v any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
