// Package client is the HTTP client studioctl uses to talk to studioservd.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eastdocs/studioctl/internal/booking"
	"github.com/eastdocs/studioctl/internal/content"
)

const DefaultBaseURL = "http://127.0.0.1:9500"

type APIClient struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	actor      string
}

func New(baseURL, apiToken string) *APIClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	actor := strings.TrimSpace(os.Getenv("USER"))
	if actor == "" {
		actor = "studioctl"
	}
	return &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   strings.TrimSpace(apiToken),
		actor:      actor,
	}
}

func (c *APIClient) Version(ctx context.Context) (VersionResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/version", nil)
	if err != nil {
		return VersionResponse{}, err
	}
	var out VersionResponse
	if err := c.do(req, &out); err != nil {
		return VersionResponse{}, err
	}
	return out, nil
}

func (c *APIClient) GetContent(ctx context.Context) (content.SiteContent, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/content", nil)
	if err != nil {
		return content.SiteContent{}, err
	}
	var out content.SiteContent
	if err := c.do(req, &out); err != nil {
		return content.SiteContent{}, err
	}
	return out, nil
}

func (c *APIClient) ReplaceSections(ctx context.Context, patch content.SectionPatch) (content.SiteContent, error) {
	body, err := json.Marshal(patch)
	if err != nil {
		return content.SiteContent{}, fmt.Errorf("encode section patch: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/api/v1/content/sections", bytes.NewReader(body))
	if err != nil {
		return content.SiteContent{}, err
	}
	var out content.SiteContent
	if err := c.do(req, &out); err != nil {
		return content.SiteContent{}, err
	}
	return out, nil
}

// ApplyUpdate posts a raw update envelope. The daemon validates the op and
// payload; the CLI just ships the bytes.
func (c *APIClient) ApplyUpdate(ctx context.Context, envelope []byte) (content.SiteContent, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/content/updates", bytes.NewReader(envelope))
	if err != nil {
		return content.SiteContent{}, err
	}
	var out content.SiteContent
	if err := c.do(req, &out); err != nil {
		return content.SiteContent{}, err
	}
	return out, nil
}

func (c *APIClient) ResetContent(ctx context.Context) (content.SiteContent, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/content/reset", nil)
	if err != nil {
		return content.SiteContent{}, err
	}
	var out content.SiteContent
	if err := c.do(req, &out); err != nil {
		return content.SiteContent{}, err
	}
	return out, nil
}

func (c *APIClient) AddPortfolioItem(ctx context.Context, item content.PortfolioItem) (content.PortfolioItem, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return content.PortfolioItem{}, fmt.Errorf("encode portfolio item: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/content/portfolio", bytes.NewReader(body))
	if err != nil {
		return content.PortfolioItem{}, err
	}
	var out content.PortfolioItem
	if err := c.do(req, &out); err != nil {
		return content.PortfolioItem{}, err
	}
	return out, nil
}

func (c *APIClient) UpdatePortfolioItem(ctx context.Context, id string, item content.PortfolioItem) (content.PortfolioItem, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return content.PortfolioItem{}, fmt.Errorf("encode portfolio item: %w", err)
	}
	path := "/api/v1/content/portfolio/" + url.PathEscape(strings.TrimSpace(id))
	req, err := c.newRequest(ctx, http.MethodPut, path, bytes.NewReader(body))
	if err != nil {
		return content.PortfolioItem{}, err
	}
	var out content.PortfolioItem
	if err := c.do(req, &out); err != nil {
		return content.PortfolioItem{}, err
	}
	return out, nil
}

func (c *APIClient) RemovePortfolioItem(ctx context.Context, id string) error {
	path := "/api/v1/content/portfolio/" + url.PathEscape(strings.TrimSpace(id))
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *APIClient) Catalog(ctx context.Context) (booking.Catalog, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/booking/catalog", nil)
	if err != nil {
		return booking.Catalog{}, err
	}
	var out booking.Catalog
	if err := c.do(req, &out); err != nil {
		return booking.Catalog{}, err
	}
	return out, nil
}

func (c *APIClient) Quote(ctx context.Context, pkg, duration string, extras []string) (QuoteResponse, error) {
	query := url.Values{}
	query.Set("package", strings.TrimSpace(pkg))
	if strings.TrimSpace(duration) != "" {
		query.Set("duration", strings.TrimSpace(duration))
	}
	if len(extras) > 0 {
		query.Set("extras", strings.Join(extras, ","))
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/booking/quote?"+query.Encode(), nil)
	if err != nil {
		return QuoteResponse{}, err
	}
	var out QuoteResponse
	if err := c.do(req, &out); err != nil {
		return QuoteResponse{}, err
	}
	return out, nil
}

func (c *APIClient) ListBookings(ctx context.Context, limit int) (BookingsResponse, error) {
	path := "/api/v1/bookings"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return BookingsResponse{}, err
	}
	var out BookingsResponse
	if err := c.do(req, &out); err != nil {
		return BookingsResponse{}, err
	}
	return out, nil
}

func (c *APIClient) ListAudit(ctx context.Context, limit int) (AuditResponse, error) {
	path := "/api/v1/audit"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return AuditResponse{}, err
	}
	var out AuditResponse
	if err := c.do(req, &out); err != nil {
		return AuditResponse{}, err
	}
	return out, nil
}

func (c *APIClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Actor", c.actor)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	return req, nil
}

func (c *APIClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("studioservd unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return mapAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode api response: %w", err)
	}
	return nil
}

type apiErrorPayload struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func mapAPIError(resp *http.Response) error {
	payload := apiErrorPayload{}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if len(body) > 0 {
		_ = json.Unmarshal(body, &payload)
	}
	msg := strings.TrimSpace(payload.Error)
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = "request failed"
	}
	if len(payload.Details) > 0 {
		msg = msg + ": " + strings.Join(payload.Details, "; ")
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("invalid request: %s", msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("unauthorized: %s (set STUDIOCTL_API_TOKEN or --token)", msg)
	case http.StatusNotFound:
		return fmt.Errorf("resource not found: %s", msg)
	case http.StatusConflict:
		return fmt.Errorf("conflict: %s", msg)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("server unavailable: %s", msg)
	default:
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error (%d): %s (check studioservd logs)", resp.StatusCode, msg)
		}
		return fmt.Errorf("request failed (%d): %s", resp.StatusCode, msg)
	}
}
