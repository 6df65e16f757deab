package cache

import "errors"

// ErrAbsent - producer сообщает, что строки нет; такой результат не кэшируется.
var ErrAbsent = errors.New("cache: value absent")

// Outcome - результат чтения из кэша.
type Outcome uint8

const (
	Miss Outcome = iota
	Hit
	BackendError // кэш недоступен; вызывающий идёт в хранилище как при промахе
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	case BackendError:
		return "error"
	default:
		return "unknown"
	}
}

// Lookup - результат Get: значение есть только при Outcome == Hit.
type Lookup struct {
	Outcome Outcome
	Value   []byte
	Err     error
}

// Found - true только для попадания.
func (l Lookup) Found() bool { return l.Outcome == Hit }
