package domain

// InvalidationEvent - внешнее событие об изменении данных в обход сервиса
// (импорт, ручная правка в админке). Пустой IDs означает всю таблицу.
type InvalidationEvent struct {
	Table  string   `json:"table"`
	IDs    []string `json:"ids,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// WholeTable - событие затрагивает всю таблицу.
func (e *InvalidationEvent) WholeTable() bool { return len(e.IDs) == 0 }
