package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityHeaders_Defaults(t *testing.T) {
	handler := SecureDefaults()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	tests := []struct {
		header string
		want   string
	}{
		{"X-Frame-Options", "SAMEORIGIN"},
		{"X-Content-Type-Options", "nosniff"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"X-XSS-Protection", "1; mode=block"},
	}

	for _, tt := range tests {
		got := rec.Header().Get(tt.header)
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
		}
	}

	// HSTS should NOT be set for non-TLS requests
	if hsts := rec.Header().Get("Strict-Transport-Security"); hsts != "" {
		t.Errorf("HSTS should not be set for HTTP requests, got %q", hsts)
	}
}

func TestSecurityHeaders_HSTS_OnlyForTLS(t *testing.T) {
	opts := DefaultSecurityHeadersOptions()

	handler := SecurityHeaders(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("HTTP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if hsts := rec.Header().Get("Strict-Transport-Security"); hsts != "" {
			t.Errorf("HSTS should not be set for HTTP, got %q", hsts)
		}
	})

	t.Run("HTTPS", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
		req.TLS = &tls.ConnectionState{} // Simulate TLS connection
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		hsts := rec.Header().Get("Strict-Transport-Security")
		if hsts != "max-age=31536000; includeSubDomains" {
			t.Errorf("HSTS = %q, want %q", hsts, "max-age=31536000; includeSubDomains")
		}
	})
}

func TestSecurityHeaders_HSTSPreload(t *testing.T) {
	opts := DefaultSecurityHeadersOptions()
	opts.HSTSPreload = true

	handler := SecurityHeaders(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	req.TLS = &tls.ConnectionState{}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	hsts := rec.Header().Get("Strict-Transport-Security")
	want := "max-age=31536000; includeSubDomains; preload"
	if hsts != want {
		t.Errorf("HSTS = %q, want %q", hsts, want)
	}
}

func TestSecurityHeaders_CustomOptions(t *testing.T) {
	opts := SecurityHeadersOptions{
		XFrameOptions:         "DENY",
		XContentTypeOptions:   "nosniff",
		ReferrerPolicy:        "no-referrer",
		XSSProtection:         "0",
		ContentSecurityPolicy: "default-src 'self'",
		PermissionsPolicy:     "geolocation=()",
	}

	handler := SecurityHeaders(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	tests := []struct {
		header string
		want   string
	}{
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "no-referrer"},
		{"X-XSS-Protection", "0"},
		{"Content-Security-Policy", "default-src 'self'"},
		{"Permissions-Policy", "geolocation=()"},
	}

	for _, tt := range tests {
		got := rec.Header().Get(tt.header)
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestSecurityHeaders_DisabledHeaders(t *testing.T) {
	handler := SecurityHeaders(SecurityHeadersOptions{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	headers := []string{
		"X-Frame-Options",
		"X-Content-Type-Options",
		"Referrer-Policy",
		"X-XSS-Protection",
		"Strict-Transport-Security",
	}

	for _, header := range headers {
		if got := rec.Header().Get(header); got != "" {
			t.Errorf("%s should not be set when disabled, got %q", header, got)
		}
	}
}

func TestSecurityHeaders_PassesThrough(t *testing.T) {
	// Ensure the middleware doesn't interfere with request/response
	handler := SecureDefaults()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Custom-Header", "test")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("hello"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if got := rec.Header().Get("X-Custom-Header"); got != "test" {
		t.Errorf("X-Custom-Header = %q, want %q", got, "test")
	}
	if rec.Body.String() != "hello" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "hello")
	}
}
