package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/storefront/internal/catalog"
	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/httpx"
)

func (h *Handler) getProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return
	}
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	p, err := h.svc.Catalog.Product(ctx, id)
	if err != nil {
		h.fail(c, "Product", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type productsResponse struct {
	Items   []domain.Product `json:"items"`
	Missing []string         `json:"missing"`
}

// getProducts - GET /products?ids=a,b,c; порядок ответа совпадает с порядком ids.
func (h *Handler) getProducts(c *gin.Context) {
	ids := httpx.ParseIDs(c.Query("ids"), maxBatchIDs+1)
	switch {
	case len(ids) == 0:
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids required"})
		return
	case len(ids) > maxBatchIDs:
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many ids, max " + strconv.Itoa(maxBatchIDs)})
		return
	}
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	found, err := h.svc.Catalog.Products(ctx, ids)
	if err != nil {
		h.fail(c, "Products", err)
		return
	}

	resp := productsResponse{Items: make([]domain.Product, 0, len(found)), Missing: []string{}}
	for _, id := range ids {
		if p, ok := found[id]; ok {
			resp.Items = append(resp.Items, p)
		} else {
			resp.Missing = append(resp.Missing, id)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listCategoryProducts(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty category id"})
		return
	}
	limit, offset := httpx.ParseLimitOffset(c, defaultPageLimit, maxPageLimit)

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	// список категории кэшируется целиком, страница режется здесь
	all, err := h.svc.Catalog.ProductsByCategory(ctx, id)
	if err != nil {
		h.fail(c, "ProductsByCategory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":  httpx.Page(all, limit, offset),
		"total":  len(all),
		"limit":  limit,
		"offset": offset,
	})
}

type stockCheckRequest struct {
	Items []domain.StockRequest `json:"items"`
}

// checkStock - POST /inventory/check[?strict=true]; strict читает остатки мимо кэша.
func (h *Handler) checkStock(c *gin.Context) {
	var req stockCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(req.Items) == 0 || len(req.Items) > maxBatchIDs {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items must contain 1.." + strconv.Itoa(maxBatchIDs) + " entries"})
		return
	}
	for _, it := range req.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id and positive quantity required"})
			return
		}
	}
	strict, _ := strconv.ParseBool(c.DefaultQuery("strict", "false"))

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	shortages, err := h.svc.Stock.CheckStock(ctx, req.Items, strict)
	if err != nil {
		h.fail(c, "CheckStock", err)
		return
	}
	if shortages == nil {
		shortages = []domain.StockShortage{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": len(shortages) == 0, "shortages": shortages})
}

func (h *Handler) getCart(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty cart id"})
		return
	}
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	view, err := h.svc.Carts.CartWithItems(ctx, id)
	if err != nil {
		h.fail(c, "CartWithItems", err)
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) cacheStats(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	st, err := h.svc.Admin.CacheStats(ctx)
	if err != nil {
		h.log.Warnf(ctx, "cache stats unavailable err=%v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache unavailable", "backend": st.Backend})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) invalidateTable(c *gin.Context) {
	table := c.Param("table")
	if !catalog.Known(table) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table"})
		return
	}
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	n, err := h.svc.Admin.InvalidateTableCache(ctx, table)
	if err != nil {
		h.log.Warnf(ctx, "invalidate table failed table=%s deleted=%d err=%v", table, n, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache unavailable", "table": table, "deleted": n})
		return
	}
	c.JSON(http.StatusOK, gin.H{"table": table, "deleted": n})
}

func (h *Handler) flushCache(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	if err := h.svc.Admin.FlushCache(ctx); err != nil {
		h.log.Warnf(ctx, "cache flush failed err=%v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}
