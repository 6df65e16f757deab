package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

var _ ports.InvalidationValidator = (*InvalidationValidator)(nil)

// ErrInvalidMessage - событие инвалидации невалидно; повторная обработка не поможет.
var ErrInvalidMessage = errors.New("invalid invalidation message")

// MaxEventIDs - предел id в одном событии.
const MaxEventIDs = 10000

type InvalidationValidator struct {
	known func(table string) bool
}

// NewInvalidationValidator - known сообщает, есть ли такая таблица; nil пропускает любую.
func NewInvalidationValidator(known func(table string) bool) *InvalidationValidator {
	return &InvalidationValidator{known: known}
}

func (v *InvalidationValidator) Validate(_ context.Context, ev *domain.InvalidationEvent) error {
	if ev == nil {
		return fmt.Errorf("%w: событие не может быть nil", ErrInvalidMessage)
	}
	if ev.Table == "" {
		return fmt.Errorf("%w: table обязателен", ErrInvalidMessage)
	}
	if v.known != nil && !v.known(ev.Table) {
		return fmt.Errorf("%w: неизвестная таблица %q", ErrInvalidMessage, ev.Table)
	}
	if len(ev.IDs) > MaxEventIDs {
		return fmt.Errorf("%w: слишком много ids (%d > %d)", ErrInvalidMessage, len(ev.IDs), MaxEventIDs)
	}
	for i, id := range ev.IDs {
		if id == "" {
			return fmt.Errorf("%w: ids[%d] пустой", ErrInvalidMessage, i)
		}
	}
	return nil
}
