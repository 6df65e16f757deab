package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
)

// RequestLogger - одна строка на запрос. Ответы 5xx идут в Warnf, чтобы их
// было видно при уровне warn; служебные /metrics и /ping не логируются.
// bypass=true - запрос читал мимо кэша (Cache-Control: no-cache).
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		switch path {
		case "/metrics", "/ping":
			return
		case "":
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		rid, _ := ctxmeta.RequestIDFromContext(ctx)
		tr, _ := ctxmeta.TraceIDFromContext(ctx)
		sp, _ := ctxmeta.SpanIDFromContext(ctx)

		logf := log.Infof
		if c.Writer.Status() >= 500 {
			logf = log.Warnf
		}
		logf(ctx,
			"request id=%s trace=%s span=%s method=%s path=%s status=%d bypass=%t ip=%s duration=%s size=%d",
			rid, tr, sp,
			c.Request.Method,
			path,
			c.Writer.Status(),
			ctxmeta.CacheBypassFromContext(ctx),
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
