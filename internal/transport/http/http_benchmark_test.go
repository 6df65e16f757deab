//go:build !integration

package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// --- Бенчмарки ---

// GetProduct - сравниваем LEAN и FULL пайплайн.
func BenchmarkHTTP_GetProduct(b *testing.B) {
	p := benchProduct("bench-1")
	h := NewHandler(Services{Catalog: catalogStub{items: []domain.Product{p}}}, nopLogger{}, 2*time.Second)

	lean := makeLeanRouter(h)
	full := makeFullRouter(h)

	b.Run("lean/no-mw", func(b *testing.B) {
		benchServeGET(b, lean, "/products/"+p.ID)
	})
	b.Run("full/prod-mw", func(b *testing.B) {
		benchServeGET(b, full, "/products/"+p.ID)
	})
}

// Потолок без маршалинга: тот же товар, но заранее закодированный JSON.
func BenchmarkHTTP_GetProduct_PreMarshaledBytes(b *testing.B) {
	p := benchProduct("bench-1")
	raw, _ := json.Marshal(p)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/products/:id", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", raw)
	})

	benchServeGET(b, r, "/products/"+p.ID)
}

// Пачка товаров: 10/50/100 id в запросе.
func BenchmarkHTTP_GetProductsBatch(b *testing.B) {
	for _, n := range []int{10, 50, 100} {
		b.Run("N="+strconv.Itoa(n), func(b *testing.B) {
			items := make([]domain.Product, 0, n)
			ids := make([]string, 0, n)
			for i := 0; i < n; i++ {
				p := benchProduct("bench-" + strconv.Itoa(i))
				items = append(items, p)
				ids = append(ids, p.ID)
			}
			h := NewHandler(Services{Catalog: catalogStub{items: items}}, nopLogger{}, 2*time.Second)

			benchServeGET(b, makeLeanRouter(h), "/products?ids="+strings.Join(ids, ","))
		})
	}
}

// Страница категории поверх закэшированного списка.
func BenchmarkHTTP_CategoryPage(b *testing.B) {
	items := make([]domain.Product, 0, 500)
	for i := 0; i < 500; i++ {
		items = append(items, benchProduct("bench-"+strconv.Itoa(i)))
	}
	h := NewHandler(Services{Catalog: catalogStub{items: items}}, nopLogger{}, 2*time.Second)

	benchServeGET(b, makeLeanRouter(h), "/categories/c1/products?limit=50&offset=100")
}

// Ошибочный путь (404): цена роутера и 404-хендлера.
func BenchmarkHTTP_404(b *testing.B) {
	h := NewHandler(Services{Catalog: catalogStub{}}, nopLogger{}, 2*time.Second)
	r := makeFullRouter(h)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, "/nope", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusNotFound {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}

// --- nopLogger - логгер, который не делает ничего ---

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// --- Стабы ---

// catalogStub - заранее подготовленные товары, без аллокаций на поиск.
type catalogStub struct{ items []domain.Product }

func (s catalogStub) Product(_ context.Context, id string) (*domain.Product, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, nil
}

func (s catalogStub) Products(_ context.Context, ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(ids))
	for _, p := range s.items {
		out[p.ID] = p
	}
	return out, nil
}

func (s catalogStub) ProductsByCategory(context.Context, string) ([]domain.Product, error) {
	return s.items, nil
}

func benchProduct(id string) domain.Product {
	return domain.Product{
		ID: id, VendorID: "v1", CategoryID: "c1", SKU: "SKU-" + id, Name: "Bench " + id,
		PriceCents: 1999, Currency: "USD", Active: true, UpdatedAt: time.Now().UTC(),
	}
}

// --- функции-помощники ---

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/otel/logger
	r.GET("/products/:id", h.getProduct)
	r.GET("/products", h.getProducts)
	r.GET("/categories/:id/products", h.listCategoryProducts)
	return r
}

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	// prod пайплайн из NewRouter
	return NewRouter(h, "")
}

func benchServeGET(b *testing.B, r *gin.Engine, path string) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	// параллельный режим ближе к реальности без TCP
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusOK {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
