package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cansee/internal/config"
	"cansee/internal/core"
	applog "cansee/internal/log"
	"cansee/internal/view"
	"cansee/web"
)

var markers = map[string]string{
	"overview":   "metric-card",
	"financial":  "summary-table",
	"content":    "2023 Conference Theme Distribution",
	"strategies": "Geographic Membership Overview",
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                 "0",
		ReadTimeout:          5 * time.Second,
		WriteTimeout:         5 * time.Second,
		IdleTimeout:          5 * time.Second,
		ShutdownTimeout:      time.Second,
		LogLevel:             "info",
		LogFormat:            "text",
		CacheTTL:             time.Minute,
		CacheCleanupInterval: time.Minute,
		RateLimitRPM:         1000,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	renderer, err := view.NewRenderer(core.DefaultRegistry(), web.Templates())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	srv := NewServer(cfg, renderer, applog.Discard())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "192.0.2.10:5000"
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func assertOnly(t *testing.T, body, tab string) {
	t.Helper()
	for other, marker := range markers {
		has := strings.Contains(body, marker)
		if other == tab && !has {
			t.Fatalf("%s body missing marker %q", tab, marker)
		}
		if other != tab && has {
			t.Fatalf("%s body contains residual %s marker %q", tab, other, marker)
		}
	}
}

func TestIndexStartsOnOverview(t *testing.T) {
	srv := newTestServer(t, testConfig())

	rr := get(t, srv, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("index status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != contentTypeHTML {
		t.Fatalf("content type = %q", ct)
	}
	body := rr.Body.String()
	assertOnly(t, body, "overview")
	if n := strings.Count(body, `class="metric-card `); n != 3 {
		t.Fatalf("expected 3 highlight cards, got %d", n)
	}
	if strings.Contains(body, "<svg") {
		t.Fatalf("initial page must not contain charts")
	}
	if rr.Header().Get("Content-Security-Policy") == "" || rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing security or trace headers: %v", rr.Header())
	}
}

func TestTabTransitions(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for _, tab := range []string{"financial", "content", "strategies", "strategies", "overview"} {
		rr := get(t, srv, "/ui/tabs/"+tab)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", tab, rr.Code)
		}
		body := rr.Body.String()
		assertOnly(t, body, tab)
		if !strings.Contains(body, `data-tab="`+tab+`"`) {
			t.Fatalf("%s panel not marked active", tab)
		}
		if strings.Contains(body, "<html") {
			t.Fatalf("%s fragment must not contain the full document", tab)
		}
		if n := strings.Count(body, `aria-selected="true"`); n != 1 {
			t.Fatalf("%s fragment has %d selected tabs, want 1", tab, n)
		}
	}

	// Reload after switching tabs starts over on overview.
	assertOnly(t, get(t, srv, "/").Body.String(), "overview")
}

func TestFinancialFragmentFigures(t *testing.T) {
	srv := newTestServer(t, testConfig())
	body := get(t, srv, "/ui/tabs/financial").Body.String()
	for _, want := range []string{"$17,786", "($4,463)", "($13,403)", "-200.2%", "<svg"} {
		if !strings.Contains(body, want) {
			t.Fatalf("financial fragment missing %q", want)
		}
	}
}

func TestUnknownTab(t *testing.T) {
	srv := newTestServer(t, testConfig())
	for _, path := range []string{"/ui/tabs/settings", "/ui/tabs/Overview", "/nope"} {
		rr := get(t, srv, path)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s status=%d, want 404", path, rr.Code)
		}
		if strings.Contains(rr.Body.String(), "metric-card") {
			t.Fatalf("%s must not render a panel", path)
		}
	}
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t, testConfig())
	for path, want := range map[string]string{"/healthz": "ok", "/readyz": "ready"} {
		rr := get(t, srv, path)
		if rr.Code != http.StatusOK || rr.Body.String() != want {
			t.Fatalf("%s = %d %q", path, rr.Code, rr.Body.String())
		}
	}
}

func TestStaticAssets(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rr := get(t, srv, "/static/app.css")
	if rr.Code != http.StatusOK {
		t.Fatalf("static status=%d", rr.Code)
	}
	if rr.Header().Get("Cache-Control") != "public, max-age=3600" {
		t.Fatalf("Cache-Control = %q", rr.Header().Get("Cache-Control"))
	}
}

func TestFragmentCacheMatchesFreshRender(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var fresh bytes.Buffer
	if err := srv.renderer.Fragment(&fresh, core.TabContent); err != nil {
		t.Fatal(err)
	}
	first := get(t, srv, "/ui/tabs/content").Body.String()
	second := get(t, srv, "/ui/tabs/content").Body.String()
	if first != fresh.String() || second != first {
		t.Fatalf("cached fragment differs from a fresh render")
	}

	_, hit, err := srv.fragment(core.TabContent)
	if err != nil || !hit {
		t.Fatalf("expected cache hit, got hit=%v err=%v", hit, err)
	}
}

func TestConcurrentTabRequests(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var wg sync.WaitGroup
	errs := make(chan string, 40)
	for i := 0; i < 40; i++ {
		tab := core.Tabs()[i%4].String()
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr := get(t, srv, "/ui/tabs/"+tab)
			if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), markers[tab]) {
				errs <- tab
			}
		}()
	}
	wg.Wait()
	close(errs)
	for tab := range errs {
		t.Errorf("concurrent request for %s failed", tab)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPM = 2
	srv := newTestServer(t, cfg)

	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, get(t, srv, "/ui/tabs/overview").Code)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v, want third request limited", codes)
	}
	// Health checks are not rate limited.
	if rr := get(t, srv, "/healthz"); rr.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", rr.Code)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	srv := newTestServer(t, testConfig())
	ctx := context.Background()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatal(err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestShutdownLogsRequestCounters(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPM = 1
	renderer, err := view.NewRenderer(core.DefaultRegistry(), web.Templates())
	if err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	srv := NewServer(cfg, renderer, applog.New(applog.Config{Output: &logs}))

	get(t, srv, "/")
	get(t, srv, "/")
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}

	out := logs.String()
	if !strings.Contains(out, "requests_total=2") || !strings.Contains(out, "rate_limited=1") {
		t.Fatalf("shutdown log missing counters: %s", out)
	}
}
