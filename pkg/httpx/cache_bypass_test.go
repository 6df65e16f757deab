package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/Gunvolt24/storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

func TestCacheBypassMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"no-cache", true},
		{"No-Cache, max-age=0", true},
		{"max-age=60", false},
	}

	for _, tc := range cases {
		var got bool
		r := gin.New()
		r.Use(httpx.CacheBypassMiddleware())
		r.GET("/", func(c *gin.Context) {
			got = ctxmeta.CacheBypassFromContext(c.Request.Context())
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		if tc.header != "" {
			req.Header.Set("Cache-Control", tc.header)
		}
		r.ServeHTTP(httptest.NewRecorder(), req)

		if got != tc.want {
			t.Fatalf("Cache-Control=%q: bypass=%v, want %v", tc.header, got, tc.want)
		}
	}
}
