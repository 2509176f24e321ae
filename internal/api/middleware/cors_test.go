package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		config    CORSConfig
		origin    string
		wantAllow string
		wantCreds string
	}{
		{"allow all", CORSConfig{AllowAllOrigins: true}, "https://a.example", "*", ""},
		{"listed origin", CORSConfig{AllowedOrigins: []string{"https://a.example"}}, "https://A.example", "https://A.example", "true"},
		{"unlisted origin", CORSConfig{AllowedOrigins: []string{"https://a.example"}}, "https://b.example", "", ""},
		{"empty list reflects origin", CORSConfig{}, "https://c.example", "https://c.example", "true"},
		{"no origin header", CORSConfig{AllowAllOrigins: true}, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.config))
			r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("Allow-Credentials = %q, want %q", got, tt.wantCreds)
			}
		})
	}
}

func TestIsOriginAllowed(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"https://movies.example"}}
	if !IsOriginAllowed("https://MOVIES.example", cfg) {
		t.Error("case-insensitive match should be allowed")
	}
	if IsOriginAllowed("https://other.example", cfg) {
		t.Error("unlisted origin should not be allowed")
	}
	if !IsOriginAllowed("https://other.example", CORSConfig{AllowedOrigins: []string{"*"}}) {
		t.Error("wildcard entry should allow any origin")
	}
}
