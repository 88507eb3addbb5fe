package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newLoggedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggerMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestLoggerMiddleware_RequestIDLengths(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
	}{
		{"no header", ""},
		{"short client id", "abc"},
		{"exactly eight", "12345678"},
		{"full uuid", "b2f1c0aa-8a11-4c62-9f5e-1f2f3a4b5c6d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newLoggedRouter()

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.requestID != "" {
				req.Header.Set("X-Request-ID", tt.requestID)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Code)
			}
			if tt.requestID != "" && w.Header().Get("X-Request-ID") != tt.requestID {
				t.Errorf("X-Request-ID = %q, want %q echoed back", w.Header().Get("X-Request-ID"), tt.requestID)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"12345678", "12345678"},
		{"123456789", "12345678"},
	}

	for _, tt := range tests {
		if got := shortID(tt.in); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
