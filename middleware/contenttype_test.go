package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequireJSON(t *testing.T) {
	handler := RequireJSON()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantStatus  int
	}{
		{"get passes without content type", http.MethodGet, "", "", http.StatusOK},
		{"post with json", http.MethodPost, "application/json", `{"a":1}`, http.StatusOK},
		{"post with json and charset", http.MethodPost, "application/json; charset=utf-8", `{"a":1}`, http.StatusOK},
		{"post with empty body passes", http.MethodPost, "", "", http.StatusOK},
		{"post with text body rejected", http.MethodPost, "text/plain", "hello", http.StatusUnsupportedMediaType},
		{"put with form body rejected", http.MethodPut, "application/x-www-form-urlencoded", "a=1", http.StatusUnsupportedMediaType},
		{"patch with json", http.MethodPatch, "application/json", `{}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.body == "" {
				body = strings.NewReader("")
			} else {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, "/", body)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
