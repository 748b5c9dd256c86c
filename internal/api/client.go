package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/empdesk/empdesk-console/config"
	"github.com/empdesk/empdesk-console/pkg/errors"
	"github.com/empdesk/empdesk-console/pkg/httpclient"
	"github.com/empdesk/empdesk-console/pkg/logger"
	"github.com/empdesk/empdesk-console/pkg/metrics"
	"github.com/empdesk/empdesk-console/pkg/tracing"
)

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// Client wraps all calls to the employee API: it attaches the bearer token,
// throttles outgoing requests, and normalizes every failure to an
// *errors.APIError so callers branch on sentinels rather than status codes.
type Client struct {
	baseURL string
	http    httpclient.Client
	tokens  TokenSource
	limiter *rate.Limiter
}

// New creates an API client for the configured base URL.
func New(cfg *config.Config, hc httpclient.Client, tokens TokenSource) *Client {
	return &Client{
		baseURL: cfg.API.BaseURL,
		http:    hc,
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(cfg.API.RateLimitRPS), cfg.API.RateLimitBurst),
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, path, params, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, path, nil, nil, nil)
}

// doJSON encodes body (if any) as JSON and runs the request. route is the
// parameterized path used for metrics so record ids don't explode label
// cardinality.
func (c *Client) doJSON(ctx context.Context, method, path, route string, params url.Values, body any, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	data, _, err := c.do(ctx, method, path, route, params, contentType, reader)
	if err != nil {
		return err
	}
	return decodeInto(data, out)
}

// do runs one HTTP round-trip and returns the raw response body and its
// content type. Failures come back as *errors.APIError.
func (c *Client) do(ctx context.Context, method, path, route string, params url.Values, contentType string, body io.Reader) ([]byte, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", errors.Transport(err)
	}

	ctx, span := tracing.StartSpan(ctx, "api "+method+" "+route)
	defer span.End()

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, "", errors.Transport(err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
		attribute.String("request.id", requestID),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordAPICall(method, route, 0, duration)
		logger.LogAPICall(method, route, 0, duration.Seconds(),
			zap.String("request_id", requestID), zap.Error(err))
		return nil, "", errors.Transport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordAPICall(method, route, resp.StatusCode, duration)
		return nil, "", errors.Transport(err)
	}

	metrics.RecordAPICall(method, route, resp.StatusCode, duration)
	logger.LogAPICall(method, route, resp.StatusCode, duration.Seconds(),
		zap.String("request_id", requestID))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode >= 400 {
		return nil, "", errors.FromStatus(resp.StatusCode, serverMessage(data))
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// serverMessage pulls the human-readable message out of an error body. The
// server answers either {"message": ...} or {"error": ...}.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func decodeInto(data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Transport(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}
