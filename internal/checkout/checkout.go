// Package checkout starts hosted payment sessions for submitted bookings.
// The daemon only ever talks to the payment provider through the
// booking.CheckoutClient interface; this package holds the HTTP
// implementation and the explicit "not configured" one.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eastdocs/studioctl/internal/booking"
)

const defaultTimeout = 15 * time.Second

// ErrDisabled is returned when no checkout endpoint is configured.
var ErrDisabled = errors.New("checkout is currently unavailable")

// HTTPClient posts booking submissions to a hosted-checkout endpoint and
// returns the session it creates. No retries; the wizard keeps the draft so
// the client can resubmit.
type HTTPClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPClient(endpoint, apiKey string) (*HTTPClient, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("checkout endpoint is required")
	}
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (c *HTTPClient) CreateSession(ctx context.Context, req booking.CheckoutRequest) (booking.CheckoutSession, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return booking.CheckoutSession{}, fmt.Errorf("marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return booking.CheckoutSession{}, fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return booking.CheckoutSession{}, fmt.Errorf("call checkout endpoint: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return booking.CheckoutSession{}, fmt.Errorf("read checkout response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Error != "" {
			return booking.CheckoutSession{}, fmt.Errorf("checkout endpoint: %s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return booking.CheckoutSession{}, fmt.Errorf("checkout endpoint returned status %d", resp.StatusCode)
	}

	var session booking.CheckoutSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return booking.CheckoutSession{}, fmt.Errorf("decode checkout response: %w", err)
	}
	if session.URL == "" {
		return booking.CheckoutSession{}, fmt.Errorf("checkout response has no redirect url")
	}
	return session, nil
}

// Disabled satisfies booking.CheckoutClient when no payment provider is
// configured. Submissions fail with ErrDisabled and the wizard stays
// retryable.
type Disabled struct{}

func (Disabled) CreateSession(context.Context, booking.CheckoutRequest) (booking.CheckoutSession, error) {
	return booking.CheckoutSession{}, ErrDisabled
}
