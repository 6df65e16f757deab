package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

type InvalidationValidator interface {
	Validate(ctx context.Context, ev *domain.InvalidationEvent) error
}

type ProductValidator interface {
	Validate(ctx context.Context, p *domain.Product) error
}
