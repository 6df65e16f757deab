package httpx

import (
	"strings"

	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// CacheBypassMiddleware - запрос с "Cache-Control: no-cache" читает мимо кэша.
func CacheBypassMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.Contains(strings.ToLower(c.GetHeader("Cache-Control")), "no-cache") {
			c.Request = c.Request.WithContext(ctxmeta.WithCacheBypass(c.Request.Context()))
		}
		c.Next()
	}
}
