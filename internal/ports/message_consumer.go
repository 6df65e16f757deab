package ports

import "context"

// MessageConsumer - фоновый потребитель событий инвалидации.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
