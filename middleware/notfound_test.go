package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/httputil"
)

func TestNotFoundHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	NotFoundHandler(zap.NewNop()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var body httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error != "unknown_route" {
		t.Errorf("error = %q, want %q", body.Error, "unknown_route")
	}
	if body.Message != "/nope is not a theme service endpoint" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestMethodNotAllowedHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/themes", nil)
	rec := httptest.NewRecorder()

	// A nil logger is legal; only the response matters here.
	MethodNotAllowedHandler(nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}

	var body httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error != "method_not_allowed" {
		t.Errorf("error = %q, want %q", body.Error, "method_not_allowed")
	}
	if body.Message != "GET is not supported on /themes" {
		t.Errorf("message = %q", body.Message)
	}
}
