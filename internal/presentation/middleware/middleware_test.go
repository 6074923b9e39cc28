package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/naomili-code/scamalyst/pkg/auth"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		allowed, remaining, _ := rl.Allow("10.0.0.1")
		if !allowed {
			t.Fatalf("request %d should have been allowed", i+1)
		}
		if remaining != 2-i {
			t.Fatalf("request %d: remaining = %d, want %d", i+1, remaining, 2-i)
		}
	}

	if allowed, _, _ := rl.Allow("10.0.0.1"); allowed {
		t.Fatal("4th request should have been denied")
	}
	if allowed, _, _ := rl.Allow("10.0.0.2"); !allowed {
		t.Fatal("a different client has its own window")
	}

	now = now.Add(time.Minute)
	if allowed, _, _ := rl.Allow("10.0.0.1"); !allowed {
		t.Fatal("window should have reset")
	}
}

func TestRateLimiter_SweepsExpiredClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	rl.Allow("b")
	now = now.Add(2 * time.Minute)
	rl.Allow("c")

	if len(rl.clients) != 1 {
		t.Fatalf("clients = %d, want 1 after sweep", len(rl.clients))
	}
}

func TestRateLimit_KeysByIP(t *testing.T) {
	handler := RateLimit(NewRateLimiter(1, time.Minute))(okHandler)

	req1 := httptest.NewRequest(http.MethodPost, "/api/infer", nil)
	req1.RemoteAddr = "10.0.0.1:12345"
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec1.Code)
	}
	if rec1.Header().Get("RateLimit-Limit") != "1" || rec1.Header().Get("RateLimit-Remaining") != "0" {
		t.Errorf("unexpected rate limit headers: %v", rec1.Header())
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/infer", nil)
	req2.RemoteAddr = "10.0.0.1:54321"
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec2.Code)
	}
	if rec2.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if !strings.Contains(rec2.Body.String(), "Too many requests") {
		t.Errorf("body = %s", rec2.Body.String())
	}

	req3 := httptest.NewRequest(http.MethodPost, "/api/infer", nil)
	req3.RemoteAddr = "10.0.0.2:12345"
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req3)
	if rec3.Code != http.StatusOK {
		t.Fatalf("expected 200 for a different client, got %d", rec3.Code)
	}
}

func TestBodyLimit(t *testing.T) {
	handler := BodyLimit(10)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	small := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, small)
	if rec.Code != http.StatusOK {
		t.Fatalf("small body: expected 200, got %d", rec.Code)
	}

	large := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 11)))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, large)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large body: expected 413, got %d", rec.Code)
	}

	// Unknown length is caught by the reader.
	chunked := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader(strings.Repeat("x", 11))))
	chunked.ContentLength = -1
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, chunked)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("chunked body: expected 413, got %d", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Strict-Transport-Security", "Content-Security-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS([]string{"*"})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/infer", nil)
	req.Header.Set("Origin", "https://extension.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestLogging_CapturesStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teapot", nil))

	out := buf.String()
	if !strings.Contains(out, `"status":418`) || !strings.Contains(out, `"path":"/teapot"`) || !strings.Contains(out, `"bytes":15`) {
		t.Errorf("log line = %s", out)
	}
}

func TestRecover(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(okHandler, mark("a"), mark("b")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "a,b" {
		t.Fatalf("order = %v", order)
	}
}

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret-key", Issuer: "test", Expiration: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	return svc
}

func TestAuth(t *testing.T) {
	svc := newTestJWTService(t)
	handler := Auth(svc, []string{"/healthz"})(okHandler)
	valid, _ := svc.GenerateToken("cli", []string{auth.RoleAnalyst})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"skipped path", "/healthz", "", http.StatusOK},
		{"missing header", "/api/v1/analyze/message", "", http.StatusUnauthorized},
		{"invalid format", "/api/v1/analyze/message", "Basic abc123", http.StatusUnauthorized},
		{"invalid token", "/api/v1/analyze/message", "Bearer invalid.token.here", http.StatusUnauthorized},
		{"valid token", "/api/v1/analyze/message", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(auth.RoleInference)(okHandler)

	run := func(claims *auth.Claims) int {
		req := httptest.NewRequest(http.MethodPost, "/api/infer", nil)
		if claims != nil {
			req = req.WithContext(auth.ContextWithClaims(req.Context(), claims))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := run(nil); code != http.StatusOK {
		t.Errorf("no claims: expected 200, got %d", code)
	}
	if code := run(&auth.Claims{Roles: []string{auth.RoleAnalyst}}); code != http.StatusForbidden {
		t.Errorf("analyst: expected 403, got %d", code)
	}
	if code := run(&auth.Claims{Roles: []string{auth.RoleInference}}); code != http.StatusOK {
		t.Errorf("inference: expected 200, got %d", code)
	}
}
