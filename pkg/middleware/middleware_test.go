package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"skybook/pkg/logger"
)

func TestRequestLogging_SetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flights", nil))

	if len(seen) != 32 {
		t.Errorf("expected generated 32-char request id, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("response header %q does not match context id %q", rec.Header().Get(RequestIDHeader), seen)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRequestLogging_HonoursIncomingID(t *testing.T) {
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "upstream-1" {
		t.Errorf("request id = %q, want upstream-1", seen)
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Internal server error") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestContentTypeValidation(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := ContentTypeValidation(logger.Discard())(ok)

	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		want        int
	}{
		{"get passes", http.MethodGet, "", "", http.StatusOK},
		{"json post", http.MethodPost, "{}", "application/json; charset=utf-8", http.StatusOK},
		{"text post", http.MethodPost, "{}", "text/plain", http.StatusUnsupportedMediaType},
		{"missing header", http.MethodPost, "{}", "", http.StatusUnsupportedMediaType},
		{"empty post", http.MethodPost, "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/order", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMaxRequestSize(t *testing.T) {
	h := MaxRequestSize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"too":"large"}`)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	RequestTimeout(20*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRequestTimeout_FastHandlerKeepsHeaders(t *testing.T) {
	fast := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	})

	rec := httptest.NewRecorder()
	RequestTimeout(time.Second)(fast).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusCreated || rec.Header().Get("X-Test") != "yes" || rec.Body.String() != "done" {
		t.Errorf("got %d %q %q", rec.Code, rec.Header().Get("X-Test"), rec.Body.String())
	}
}

func TestRateLimit_PerClientIP(t *testing.T) {
	limiter := NewClientRateLimiter(2, time.Minute, nil, logger.Discard())
	defer limiter.Stop()

	h := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/flights", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if got := call("10.0.0.1:1234"); got != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, got)
		}
	}
	if got := call("10.0.0.1:5678"); got != http.StatusTooManyRequests {
		t.Errorf("third request from same IP: status = %d, want 429", got)
	}
	if got := call("10.0.0.2:1234"); got != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", got)
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	limiter := NewClientRateLimiter(1, time.Minute, nil, logger.Discard())
	defer limiter.Stop()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("a") {
		t.Fatal("first request should pass")
	}
	if limiter.Allow("a") {
		t.Fatal("second request inside window should be rejected")
	}
	now = now.Add(time.Minute + time.Second)
	if !limiter.Allow("a") {
		t.Error("request after window should pass")
	}
}

func TestClientIP_IgnoresForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:4000"
	if got := ClientIP(req); got != "192.168.1.5" {
		t.Errorf("ClientIP = %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	if got := ClientIP(req); got != "192.168.1.5" {
		t.Errorf("ClientIP should ignore X-Forwarded-For, got %q", got)
	}
}

func TestForwardedClientIP(t *testing.T) {
	extract := ForwardedClientIP([]netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")})

	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"untrusted peer spoofing", "198.51.100.7:5000", "203.0.113.9", "198.51.100.7"},
		{"trusted proxy", "10.0.0.2:5000", "203.0.113.9", "203.0.113.9"},
		{"client-prepended hops ignored", "10.0.0.2:5000", "1.2.3.4, 203.0.113.9", "203.0.113.9"},
		{"proxy chain", "10.0.0.2:5000", "203.0.113.9, 10.0.0.3", "203.0.113.9"},
		{"trusted proxy without header", "10.0.0.2:5000", "", "10.0.0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := extract(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimit_RotatingForwardedForShareBucket(t *testing.T) {
	limiter := NewClientRateLimiter(1, time.Minute, nil, logger.Discard())
	defer limiter.Stop()

	h := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for _, xff := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		req := httptest.NewRequest(http.MethodGet, "/flights", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429 429]", codes)
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/order", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("allow origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}
