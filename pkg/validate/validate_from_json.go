package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

// InvalidationFromJSON - строгий разбор и валидация события.
// Любая проблема оборачивает ErrInvalidMessage.
func InvalidationFromJSON(ctx context.Context, validator ports.InvalidationValidator, raw []byte) (*domain.InvalidationEvent, error) {
	var ev domain.InvalidationEvent
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrInvalidMessage, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidMessage)
	}
	if err := validator.Validate(ctx, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
