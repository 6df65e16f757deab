package usecase

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/query"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

// InvalidationService применяет внешние события инвалидации
// (записи в базу в обход сервиса: импорт, ручные правки, другие сервисы).
type InvalidationService struct {
	query     *query.Service
	validator ports.InvalidationValidator
	log       ports.Logger
}

func NewInvalidationService(svc *query.Service, validator ports.InvalidationValidator, log ports.Logger) *InvalidationService {
	return &InvalidationService{query: svc, validator: validator, log: log}
}

// HandleMessage - сырое сообщение из Kafka. Невалидное сообщение
// возвращает ошибку, оборачивающую validate.ErrInvalidMessage.
func (s *InvalidationService) HandleMessage(ctx context.Context, raw []byte) error {
	ev, err := validate.InvalidationFromJSON(ctx, s.validator, raw)
	if err != nil {
		s.log.Warnf(ctx, "invalidation rejected err=%v", err)
		return err
	}
	return s.Apply(ctx, ev)
}

// Apply - событие без ids сбрасывает таблицу целиком, иначе только
// перечисленные сущности и списки таблицы. Ошибка кэша возвращается:
// консьюмер не закоммитит оффсет и повторит событие.
func (s *InvalidationService) Apply(ctx context.Context, ev *domain.InvalidationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	if ev.WholeTable() {
		_, err = s.query.InvalidateTableCache(ctx, ev.Table)
	} else {
		err = s.query.InvalidateEntities(ctx, ev.Table, ev.IDs)
	}
	if err != nil {
		s.log.Warnf(ctx, "invalidation not applied table=%s ids=%d err=%v", ev.Table, len(ev.IDs), err)
		return err
	}
	return nil
}
