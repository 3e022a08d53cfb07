package apikey

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequire(t *testing.T) {
	handler := Require("sekrit", Options{Realm: "test"}, nil)(okHandler())

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
	}{
		{
			"bearer header",
			func(r *http.Request) { r.Header.Set("Authorization", "Bearer sekrit") },
			http.StatusOK,
		},
		{
			"x-api-key header",
			func(r *http.Request) { r.Header.Set("X-API-Key", "sekrit") },
			http.StatusOK,
		},
		{
			"query param",
			func(r *http.Request) { r.URL.RawQuery = "api_key=sekrit" },
			http.StatusOK,
		},
		{
			"wrong key",
			func(r *http.Request) { r.Header.Set("X-API-Key", "nope") },
			http.StatusUnauthorized,
		},
		{
			"no key",
			func(r *http.Request) {},
			http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/themes", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if got := rec.Header().Get("WWW-Authenticate"); got != `Bearer realm="test"` {
					t.Errorf("WWW-Authenticate = %q, want %q", got, `Bearer realm="test"`)
				}
			}
		})
	}
}

func TestRequire_EmptyExpectedKey(t *testing.T) {
	handler := Require("", Options{}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-Key", "anything")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestRequireHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sekrit"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generate hash: %v", err)
	}

	handler := RequireHash(string(hash), Options{}, nil)(okHandler())

	t.Run("correct key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-API-Key", "sekrit")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-API-Key", "guess")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}
