package ports

import "context"

// Logger - минимальный контракт логгера для внешних слоёв.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)  // информационные сообщения
	Warnf(ctx context.Context, format string, args ...any)  // предупреждения, в т.ч. деградация кэша
	Errorf(ctx context.Context, format string, args ...any) // ошибки
}
