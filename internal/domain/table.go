package domain

// Tier - класс времени жизни записи в кэше по степени изменчивости данных.
type Tier uint8

const (
	TierShort  Tier = iota + 1 // часто меняющиеся данные: остатки, корзины, списки
	TierMedium                 // карточки товаров
	TierLong                   // справочники: категории, продавцы
)

func (t Tier) String() string {
	switch t {
	case TierShort:
		return "short"
	case TierMedium:
		return "medium"
	case TierLong:
		return "long"
	default:
		return "unknown"
	}
}

// Table - описание таблицы, с которой работает слой запросов.
// Параметр T задаёт форму строки; поля T размечены тегами db по именам Columns.
type Table[T any] struct {
	Name       string
	KeyColumn  string
	Columns    []string // порядок совпадает с Values
	Tier       Tier     // TTL для отдельных сущностей
	ListTier   Tier     // TTL для списочных запросов; 0 -> TierShort
	Filterable []string // колонки, по которым разрешён FindAllBy

	Key    func(row T) string
	Values func(row T) []any
}

// HasColumn - есть ли колонка в таблице.
func (t Table[T]) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// CanFilterBy - разрешена ли выборка списка по колонке.
func (t Table[T]) CanFilterBy(column string) bool {
	for _, c := range t.Filterable {
		if c == column {
			return true
		}
	}
	return false
}

// EffectiveListTier - TTL-класс списочных запросов с учётом значения по умолчанию.
func (t Table[T]) EffectiveListTier() Tier {
	if t.ListTier == 0 {
		return TierShort
	}
	return t.ListTier
}

// RowUpdate - частичное обновление одной строки: ID и новые значения колонок.
type RowUpdate struct {
	ID     string
	Fields map[string]any
}
