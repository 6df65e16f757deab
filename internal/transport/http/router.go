package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/httpx"
)

const (
	maxBatchIDs      = 100
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Services - всё, что нужно HTTP-слою от прикладного уровня.
type Services struct {
	Catalog ports.CatalogReader
	Stock   ports.StockChecker
	Carts   ports.CartReader
	Admin   ports.CacheAdmin

	CatalogWriter ports.CatalogWriter
	StockWriter   ports.StockWriter
	CartWriter    ports.CartWriter
}

type Handler struct {
	svc     Services
	log     ports.Logger
	timeout time.Duration
}

// NewHandler - timeout ограничивает каждый запрос к сервисам; 0 без ограничения.
func NewHandler(svc Services, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{svc: svc, log: log, timeout: timeout}
}

// NewRouter - otelServiceName пустой отключает трейсинг запросов.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.CacheBypassMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "not found"}) })
	r.NoMethod(func(c *gin.Context) { c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"}) })

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/products/:id", h.getProduct)
	r.GET("/products", h.getProducts)
	r.GET("/categories/:id/products", h.listCategoryProducts)
	r.POST("/inventory/check", h.checkStock)
	r.GET("/carts/:id", h.getCart)
	r.POST("/carts/:id/items", h.addCartItems)
	r.PATCH("/carts/:id/items", h.setCartQuantities)

	r.POST("/admin/products", h.createProducts)
	r.PATCH("/admin/products/prices", h.updatePrices)
	r.PUT("/admin/inventory", h.setStock)

	admin := r.Group("/admin/cache")
	admin.GET("/stats", h.cacheStats)
	admin.POST("/flush", h.flushCache)
	admin.DELETE("/:table", h.invalidateTable)

	return r
}

// reqCtx - контекст запроса с таймаутом обработчика.
func (h *Handler) reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// fail - ошибка сервиса: таймаут отдаём как 504, остальное как 500.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.log.Errorf(c.Request.Context(), "%s failed path=%s err=%v", op, c.Request.URL.Path, err)
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "timeout"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
