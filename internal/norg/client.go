package norg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"fordeling/pkg/requestcontext"
)

const (
	arbeidsfordelingPath = "/api/v1/arbeidsfordeling"
	maxResponseBytes     = 1 << 20
	defaultTimeout       = 5 * time.Second
	callIDHeader         = "Nav-Call-Id"
)

// HTTPClient calls the NORG arbeidsfordeling endpoint.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	headers map[string]string
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(h *HTTPClient) {
		if c != nil {
			h.http = c
		}
	}
}

// WithHeader adds a static header to every request, e.g. Nav-Consumer-Id.
func WithHeader(key, value string) ClientOption {
	return func(h *HTTPClient) {
		h.headers[key] = value
	}
}

// NewHTTPClient builds a client for baseURL. A zero timeout uses 5s.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...ClientOption) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		headers: map[string]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Arbeidsfordeling posts criteria and returns the candidate list in
// response order.
func (c *HTTPClient) Arbeidsfordeling(ctx context.Context, criteria Criteria) ([]Candidate, error) {
	body, err := json.Marshal(criteria)
	if err != nil {
		return nil, newLookupError(ErrorInternal, "encode criteria", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+arbeidsfordelingPath, bytes.NewReader(body))
	if err != nil {
		return nil, newLookupError(ErrorInternal, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if id := requestcontext.RequestID(ctx); id != "" {
		req.Header.Set(callIDHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	return parseResponse(resp.StatusCode, raw)
}

func parseResponse(status int, body []byte) ([]Candidate, error) {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return nil, newLookupError(ErrorAuthentication, fmt.Sprintf("status %d", status), nil)
	case status == http.StatusTooManyRequests:
		return nil, newLookupError(ErrorRateLimited, fmt.Sprintf("status %d", status), nil)
	case status >= 500:
		return nil, newLookupError(ErrorProviderOutage, fmt.Sprintf("status %d", status), nil)
	case status < 200 || status > 299:
		return nil, newLookupError(ErrorContractMismatch, fmt.Sprintf("unexpected status %d", status), nil)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var candidates []Candidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, newLookupError(ErrorBadData, "decode candidates", err)
	}
	return candidates, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return newLookupError(ErrorCancelled, "request cancelled", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newLookupError(ErrorTimeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newLookupError(ErrorTimeout, "request timed out", err)
	}
	return newLookupError(ErrorProviderOutage, "request failed", err)
}
