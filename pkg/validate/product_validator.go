package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

var _ ports.ProductValidator = (*ProductValidator)(nil)

// ErrInvalidProduct - базовая ошибка валидации товара.
var ErrInvalidProduct = errors.New("product validation failed")

type ProductValidator struct{}

func NewProductValidator() *ProductValidator { return &ProductValidator{} }

// Validate - проверяет поля товара перед вставкой.
func (v *ProductValidator) Validate(_ context.Context, p *domain.Product) error {
	if p == nil {
		return fmt.Errorf("%w: товар не может быть nil", ErrInvalidProduct)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidProduct)
	}
	if p.SKU == "" {
		return fmt.Errorf("%w: sku обязателен", ErrInvalidProduct)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name обязателен", ErrInvalidProduct)
	}
	if p.VendorID == "" || p.CategoryID == "" {
		return fmt.Errorf("%w: vendor_id и category_id обязательны", ErrInvalidProduct)
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("%w: price_cents должен быть неотрицательным", ErrInvalidProduct)
	}
	return validateCurrency(p.Currency)
}

// validateCurrency - трёхбуквенный код ISO 4217 в верхнем регистре.
func validateCurrency(c string) error {
	if len(c) != 3 {
		return fmt.Errorf("%w: currency должен быть кодом ISO 4217", ErrInvalidProduct)
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return fmt.Errorf("%w: currency должен быть кодом ISO 4217", ErrInvalidProduct)
		}
	}
	return nil
}
