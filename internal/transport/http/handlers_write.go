package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/query"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

// maxWriteBatch - верхняя граница пачки для админских записей.
const maxWriteBatch = 1000

type createProductsRequest struct {
	Items []domain.Product `json:"items"`
}

type updatePricesRequest struct {
	Items []domain.PriceChange `json:"items"`
}

type quantitiesRequest struct {
	Quantities map[string]int64 `json:"quantities"`
}

type cartItemsRequest struct {
	Items []domain.StockRequest `json:"items"`
}

// writeFail - ошибки ввода отдаём как 400, остальное через fail.
func (h *Handler) writeFail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, validate.ErrInvalidProduct),
		errors.Is(err, query.ErrEmptyBatch),
		errors.Is(err, query.ErrUnknownColumn):
		h.log.Warnf(c.Request.Context(), "%s rejected path=%s err=%v", op, c.Request.URL.Path, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.fail(c, op, err)
	}
}

// bindBatch - разбор тела и проверка размера пачки; false, если ответ уже отдан.
func bindBatch(c *gin.Context, dst any, size func() int, limit int) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return false
	}
	if n := size(); n == 0 || n > limit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch must contain 1.." + strconv.Itoa(limit) + " entries"})
		return false
	}
	return true
}

// createProducts - POST /admin/products.
func (h *Handler) createProducts(c *gin.Context) {
	var req createProductsRequest
	if !bindBatch(c, &req, func() int { return len(req.Items) }, maxWriteBatch) {
		return
	}
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	if err := h.svc.CatalogWriter.CreateProducts(ctx, req.Items); err != nil {
		h.writeFail(c, "CreateProducts", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": len(req.Items)})
}

// updatePrices - PATCH /admin/products/prices.
func (h *Handler) updatePrices(c *gin.Context) {
	var req updatePricesRequest
	if !bindBatch(c, &req, func() int { return len(req.Items) }, maxWriteBatch) {
		return
	}
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	n, err := h.svc.CatalogWriter.UpdatePrices(ctx, req.Items)
	if err != nil {
		h.writeFail(c, "UpdatePrices", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requested": len(req.Items), "updated": n})
}

// setStock - PUT /admin/inventory.
func (h *Handler) setStock(c *gin.Context) {
	var req quantitiesRequest
	if !bindBatch(c, &req, func() int { return len(req.Quantities) }, maxWriteBatch) {
		return
	}
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	n, err := h.svc.StockWriter.SetStock(ctx, req.Quantities)
	if err != nil {
		h.writeFail(c, "SetStock", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requested": len(req.Quantities), "updated": n})
}

// addCartItems - POST /carts/:id/items; остатки проверяются мимо кэша до записи.
func (h *Handler) addCartItems(c *gin.Context) {
	cartID := c.Param("id")
	var req cartItemsRequest
	if !bindBatch(c, &req, func() int { return len(req.Items) }, maxBatchIDs) {
		return
	}
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	shortages, err := h.svc.StockWriter.EnsureAvailable(ctx, req.Items)
	if errors.Is(err, domain.ErrInsufficientStock) {
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock", "shortages": shortages})
		return
	}
	if err != nil {
		h.writeFail(c, "EnsureAvailable", err)
		return
	}

	added, err := h.svc.CartWriter.AddItems(ctx, cartID, req.Items)
	if errors.Is(err, domain.ErrCartNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}
	if err != nil {
		h.writeFail(c, "AddItems", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": added})
}

// setCartQuantities - PATCH /carts/:id/items; ключи - id позиций корзины.
func (h *Handler) setCartQuantities(c *gin.Context) {
	cartID := c.Param("id")
	var req quantitiesRequest
	if !bindBatch(c, &req, func() int { return len(req.Quantities) }, maxBatchIDs) {
		return
	}
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	n, err := h.svc.CartWriter.SetQuantities(ctx, cartID, req.Quantities)
	if err != nil {
		h.writeFail(c, "SetQuantities", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
