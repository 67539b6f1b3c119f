package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/eastdocs/studioctl/internal/booking"
)

type stubCheckout struct {
	session booking.CheckoutSession
	err     error
	calls   int
}

func (s *stubCheckout) CreateSession(_ context.Context, _ booking.CheckoutRequest) (booking.CheckoutSession, error) {
	s.calls++
	if s.err != nil {
		return booking.CheckoutSession{}, s.err
	}
	return s.session, nil
}

func startTestServer(t *testing.T, mutate func(cfg *Config, srv *Server)) (*Server, string) {
	t.Helper()
	cfg := Config{
		BindAddr: "127.0.0.1",
		Port:     0,
		DataDir:  t.TempDir(),
		LogLevel: "debug",
		DBWAL:    true,
	}
	srv, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), "v-test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if mutate != nil {
		mutate(&srv.cfg, srv)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, "http://" + srv.Addr()
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, url, err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, raw
}

func TestServerHealthAndVersion(t *testing.T) {
	_, base := startTestServer(t, nil)

	resp, raw := doJSON(t, http.MethodGet, base+"/healthz", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for /healthz, got %d", resp.StatusCode)
	}
	var health map[string]string
	if err := json.Unmarshal(raw, &health); err != nil {
		t.Fatalf("decode /healthz response: %v", err)
	}
	if health["status"] != "ok" {
		t.Fatalf("unexpected /healthz payload: %#v", health)
	}

	resp, raw = doJSON(t, http.MethodGet, base+"/version", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for /version, got %d", resp.StatusCode)
	}
	var version map[string]string
	if err := json.Unmarshal(raw, &version); err != nil {
		t.Fatalf("decode /version response: %v", err)
	}
	if version["version"] != "v-test" {
		t.Fatalf("unexpected /version payload: %#v", version)
	}
}

func TestServerRunGracefulShutdownOnContextCancel(t *testing.T) {
	cfg := Config{BindAddr: "127.0.0.1", Port: 0, DataDir: t.TempDir(), LogLevel: "info"}
	srv, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), "v-test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Addr() == "" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if srv.Addr() == "" {
		cancel()
		t.Fatalf("server never started")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() returned error after cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run() did not exit after cancel")
	}
}

func TestContentTreeAndUpdates(t *testing.T) {
	_, base := startTestServer(t, nil)

	resp, raw := doJSON(t, http.MethodGet, base+"/api/v1/content", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /content status = %d: %s", resp.StatusCode, raw)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		t.Fatalf("decode content tree: %v", err)
	}
	if _, ok := tree["studioHire"]; !ok {
		t.Fatalf("content tree missing studioHire section: %s", raw)
	}

	update := map[string]any{
		"op": "set-about",
		"about": map[string]any{
			"title":       "About East Docs",
			"description": "We record podcasts.",
		},
	}
	resp, raw = doJSON(t, http.MethodPost, base+"/api/v1/content/updates", update, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /content/updates status = %d: %s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, http.MethodGet, base+"/api/v1/content", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /content status = %d", resp.StatusCode)
	}
	var after struct {
		About struct {
			Title string `json:"title"`
		} `json:"about"`
	}
	if err := json.Unmarshal(raw, &after); err != nil {
		t.Fatalf("decode content tree: %v", err)
	}
	if after.About.Title != "About East Docs" {
		t.Fatalf("about title = %q, want update applied", after.About.Title)
	}

	resp, raw = doJSON(t, http.MethodPost, base+"/api/v1/content/updates", map[string]any{"op": "bogus"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown op status = %d: %s", resp.StatusCode, raw)
	}
}

func TestAdminAuthGuardsContentMutations(t *testing.T) {
	_, base := startTestServer(t, func(cfg *Config, _ *Server) {
		cfg.APIToken = "secret-token"
	})

	update := map[string]any{
		"op":    "set-about",
		"about": map[string]any{"title": "x", "description": "y"},
	}

	resp, _ := doJSON(t, http.MethodPost, base+"/api/v1/content/updates", update, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d, want 401", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/content/updates", update, map[string]string{
		"Authorization": "Bearer wrong-token",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong token status = %d, want 401", resp.StatusCode)
	}

	resp, raw := doJSON(t, http.MethodPost, base+"/api/v1/content/updates", update, map[string]string{
		"Authorization": "Bearer secret-token",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("valid token status = %d: %s", resp.StatusCode, raw)
	}

	resp, _ = doJSON(t, http.MethodGet, base+"/api/v1/content", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public GET /content status = %d, want 200 without token", resp.StatusCode)
	}
}

func TestBookingQuoteEndpoint(t *testing.T) {
	_, base := startTestServer(t, nil)

	url := base + "/api/v1/booking/quote?package=studio-engineer&duration=3&extras=additional-camera,teleprompter"
	resp, raw := doJSON(t, http.MethodGet, url, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("quote status = %d: %s", resp.StatusCode, raw)
	}
	var quote quoteResponse
	if err := json.Unmarshal(raw, &quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if quote.Total != 345 {
		t.Fatalf("quote total = %d, want 345", quote.Total)
	}
	if quote.Hours != 3 {
		t.Fatalf("quote hours = %d, want 3", quote.Hours)
	}

	resp, raw = doJSON(t, http.MethodGet, base+"/api/v1/booking/quote?package=studio-engineer&extras=mystery", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("quote with unknown extra status = %d: %s", resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, &quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if quote.Total != 150 {
		t.Fatalf("partial total = %d, want 150", quote.Total)
	}
	if len(quote.UnknownItems) != 1 || quote.UnknownItems[0] != "mystery" {
		t.Fatalf("unknown items = %v", quote.UnknownItems)
	}

	resp, _ = doJSON(t, http.MethodGet, base+"/api/v1/booking/quote", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("quote without package status = %d, want 400", resp.StatusCode)
	}
}

func TestBookingWizardEndToEnd(t *testing.T) {
	checkoutStub := &stubCheckout{
		session: booking.CheckoutSession{ID: "cs_e2e", URL: "https://pay.example.com/cs_e2e"},
	}
	srv, base := startTestServer(t, func(_ *Config, s *Server) {
		s.checkout = checkoutStub
	})

	resp, raw := doJSON(t, http.MethodPost, base+"/api/v1/booking/wizard", nil, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create wizard status = %d: %s", resp.StatusCode, raw)
	}
	var created wizardResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode created wizard: %v", err)
	}
	if created.ID == "" || created.Wizard.Step != booking.StepPersonalInfo {
		t.Fatalf("unexpected created wizard: %+v", created)
	}

	wizardURL := base + "/api/v1/booking/wizard/" + created.ID

	// An incomplete first step must not advance.
	resp, raw = doJSON(t, http.MethodPost, wizardURL+"/next", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("next status = %d: %s", resp.StatusCode, raw)
	}
	var state wizardResponse
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("decode wizard: %v", err)
	}
	if state.Wizard.Step != booking.StepPersonalInfo {
		t.Fatalf("advanced past invalid step, step = %d", state.Wizard.Step)
	}
	if len(state.Wizard.Errors[booking.StepPersonalInfo]) == 0 {
		t.Fatalf("expected validation errors recorded for step 1")
	}

	// Submitting early must be rejected.
	resp, _ = doJSON(t, http.MethodPost, wizardURL+"/submit", nil, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("early submit status = %d, want 409", resp.StatusCode)
	}

	draft := map[string]any{
		"name":        "Ada Lovelace",
		"email":       "ada@example.com",
		"phone":       "07700 900123",
		"date":        "2026-10-01",
		"package":     "studio-engineer",
		"duration":    "2",
		"projectType": "podcast",
	}
	resp, raw = doJSON(t, http.MethodPut, wizardURL+"/draft", draft, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("draft status = %d: %s", resp.StatusCode, raw)
	}

	for step := booking.StepPersonalInfo; step < booking.StepReview; step++ {
		resp, raw = doJSON(t, http.MethodPost, wizardURL+"/next", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("next from step %d status = %d: %s", step, resp.StatusCode, raw)
		}
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("decode wizard: %v", err)
	}
	if state.Wizard.Step != booking.StepReview {
		t.Fatalf("step = %d, want review", state.Wizard.Step)
	}

	resp, raw = doJSON(t, http.MethodPost, wizardURL+"/submit", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d: %s", resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("decode wizard: %v", err)
	}
	if !state.Wizard.Succeeded {
		t.Fatalf("wizard not marked succeeded: %+v", state.Wizard)
	}
	if state.Wizard.RedirectURL != "https://pay.example.com/cs_e2e" {
		t.Fatalf("redirect url = %q", state.Wizard.RedirectURL)
	}
	if state.Wizard.Total != 150 {
		t.Fatalf("total = %d, want 150", state.Wizard.Total)
	}
	if checkoutStub.calls != 1 {
		t.Fatalf("checkout calls = %d, want 1", checkoutStub.calls)
	}

	// The session is gone once the booking completes.
	resp, _ = doJSON(t, http.MethodGet, wizardURL, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("completed session lookup status = %d, want 404", resp.StatusCode)
	}
	if srv.sessions.Len() != 0 {
		t.Fatalf("session registry not empty after submit: %d", srv.sessions.Len())
	}

	// The booking row survives.
	resp, raw = doJSON(t, http.MethodGet, base+"/api/v1/bookings", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list bookings status = %d: %s", resp.StatusCode, raw)
	}
	var bookings bookingsResponse
	if err := json.Unmarshal(raw, &bookings); err != nil {
		t.Fatalf("decode bookings: %v", err)
	}
	if len(bookings.Bookings) != 1 {
		t.Fatalf("bookings = %d, want 1", len(bookings.Bookings))
	}
	row := bookings.Bookings[0]
	if row.Reference != created.ID || row.Total != 150 || row.CheckoutSessionID != "cs_e2e" {
		t.Fatalf("unexpected booking row: %+v", row)
	}
}

func TestBookingWizardCheckoutFailureIsRetryable(t *testing.T) {
	checkoutStub := &stubCheckout{err: fmt.Errorf("gateway timeout")}
	_, base := startTestServer(t, func(_ *Config, s *Server) {
		s.checkout = checkoutStub
	})

	resp, raw := doJSON(t, http.MethodPost, base+"/api/v1/booking/wizard", nil, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create wizard status = %d", resp.StatusCode)
	}
	var created wizardResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode created wizard: %v", err)
	}
	wizardURL := base + "/api/v1/booking/wizard/" + created.ID

	draft := map[string]any{
		"name":        "Ada Lovelace",
		"email":       "ada@example.com",
		"phone":       "07700 900123",
		"date":        "2026-10-01",
		"package":     "standard-editing",
		"projectType": "youtube",
	}
	if resp, raw := doJSON(t, http.MethodPut, wizardURL+"/draft", draft, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("draft status = %d: %s", resp.StatusCode, raw)
	}
	for i := 0; i < 3; i++ {
		if resp, raw := doJSON(t, http.MethodPost, wizardURL+"/next", nil, nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("next status = %d: %s", resp.StatusCode, raw)
		}
	}

	resp, _ = doJSON(t, http.MethodPost, wizardURL+"/submit", nil, nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("failed submit status = %d, want 502", resp.StatusCode)
	}

	// The session is still live and can retry.
	resp, raw = doJSON(t, http.MethodGet, wizardURL, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session lookup after failure status = %d", resp.StatusCode)
	}
	var state wizardResponse
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("decode wizard: %v", err)
	}
	if state.Wizard.Succeeded {
		t.Fatalf("wizard marked succeeded after checkout failure")
	}
	if state.Wizard.LastError == "" {
		t.Fatalf("expected lastError to be set for the client")
	}

	checkoutStub.err = nil
	checkoutStub.session = booking.CheckoutSession{ID: "cs_retry", URL: "https://pay.example.com/cs_retry"}
	resp, raw = doJSON(t, http.MethodPost, wizardURL+"/submit", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("retry submit status = %d: %s", resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("decode wizard: %v", err)
	}
	if !state.Wizard.Succeeded || state.Wizard.CheckoutID != "cs_retry" {
		t.Fatalf("retry did not complete: %+v", state.Wizard)
	}
}

func TestIdentityEndpoints(t *testing.T) {
	_, base := startTestServer(t, nil)

	signup := map[string]string{
		"email":       "producer@example.com",
		"displayName": "Producer",
		"password":    "hunter2hunter2",
	}
	resp, raw := doJSON(t, http.MethodPost, base+"/api/v1/identity/signup", signup, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d: %s", resp.StatusCode, raw)
	}
	var auth authResponse
	if err := json.Unmarshal(raw, &auth); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	if auth.Token == "" || auth.User.Email != "producer@example.com" {
		t.Fatalf("unexpected signup response: %+v", auth)
	}

	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/identity/signup", signup, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup status = %d, want 409", resp.StatusCode)
	}

	tokenHeader := map[string]string{"X-Session-Token": auth.Token}
	resp, raw = doJSON(t, http.MethodGet, base+"/api/v1/identity/me", nil, tokenHeader)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d", resp.StatusCode)
	}
	var me meResponse
	if err := json.Unmarshal(raw, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if !me.Authenticated || me.User == nil || me.User.DisplayName != "Producer" {
		t.Fatalf("unexpected me response: %+v", me)
	}

	// A signed-in user gets a prefilled wizard.
	resp, raw = doJSON(t, http.MethodPost, base+"/api/v1/booking/wizard", nil, tokenHeader)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create wizard status = %d", resp.StatusCode)
	}
	var created wizardResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode created wizard: %v", err)
	}
	if created.Wizard.Draft.Name != "Producer" || created.Wizard.Draft.Email != "producer@example.com" {
		t.Fatalf("wizard not prefilled: %+v", created.Wizard.Draft)
	}

	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/identity/login", map[string]string{
		"email":    "producer@example.com",
		"password": "wrong-password",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, base+"/api/v1/identity/logout", nil, tokenHeader)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d", resp.StatusCode)
	}
	resp, raw = doJSON(t, http.MethodGet, base+"/api/v1/identity/me", nil, tokenHeader)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me after logout status = %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Authenticated {
		t.Fatalf("still authenticated after logout")
	}
}

func TestPlaceholderEndpoint(t *testing.T) {
	_, base := startTestServer(t, nil)

	resp, raw := doJSON(t, http.MethodGet, base+"/media/placeholder.png?label=Studio+A&w=640&h=360", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("placeholder status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "image/png" {
		t.Fatalf("content type = %q", got)
	}
	if len(raw) < 8 || string(raw[1:4]) != "PNG" {
		t.Fatalf("response is not a PNG, first bytes: %v", raw[:min(8, len(raw))])
	}
}

func TestPortfolioEndpoints(t *testing.T) {
	_, base := startTestServer(t, nil)

	item := map[string]string{
		"title":       "Founder Interview",
		"description": "Two camera interview edit.",
		"category":    "interview",
	}
	resp, raw := doJSON(t, http.MethodPost, base+"/api/v1/content/portfolio", item, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add portfolio status = %d: %s", resp.StatusCode, raw)
	}
	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode portfolio item: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("portfolio item has no id")
	}

	resp, raw = doJSON(t, http.MethodDelete, base+"/api/v1/content/portfolio/"+created.ID, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete portfolio status = %d: %s", resp.StatusCode, raw)
	}

	resp, _ = doJSON(t, http.MethodDelete, base+"/api/v1/content/portfolio/"+created.ID, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("delete missing portfolio status = %d, want 404", resp.StatusCode)
	}
}
