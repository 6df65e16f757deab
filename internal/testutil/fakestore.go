package testutil

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

// FakeStore - хранилище одной таблицы в памяти для unit-тестов.
// Считает обращения по операциям, умеет отдавать заданную ошибку.
// Многострочные операции атомарны: при ошибке ничего не меняется.
type FakeStore[T any] struct {
	table domain.Table[T]

	mu    sync.Mutex
	rows  map[string]T
	calls map[string]int
	err   error
}

var _ ports.Store[domain.Product] = (*FakeStore[domain.Product])(nil)

func NewFakeStore[T any](table domain.Table[T], rows ...T) *FakeStore[T] {
	s := &FakeStore[T]{
		table: table,
		rows:  make(map[string]T, len(rows)),
		calls: make(map[string]int),
	}
	for _, r := range rows {
		s.rows[table.Key(r)] = r
	}
	return s
}

// Fail - все последующие операции вернут err (nil снимает сбой).
func (s *FakeStore[T]) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls - число обращений к операции: single|many|by|insert|update.
func (s *FakeStore[T]) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// TotalCalls - всего round trip'ов к хранилищу.
func (s *FakeStore[T]) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *FakeStore[T]) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
}

// Put - записать строку в обход счётчиков (имитация правки извне).
func (s *FakeStore[T]) Put(row T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[s.table.Key(row)] = row
}

func (s *FakeStore[T]) Row(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	return r, ok
}

func (s *FakeStore[T]) QuerySingle(_ context.Context, id string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["single"]++
	if s.err != nil {
		return nil, s.err
	}
	r, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *FakeStore[T]) QueryMany(_ context.Context, ids []string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["many"]++
	if s.err != nil {
		return nil, s.err
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	out := make([]T, 0, len(ids))
	for _, id := range sorted {
		if r, ok := s.rows[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *FakeStore[T]) QueryBy(_ context.Context, column string, value any) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["by"]++
	if s.err != nil {
		return nil, s.err
	}
	idx := -1
	for i, c := range s.table.Columns {
		if c == column {
			idx = i
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("unknown column %q", column)
	}

	keys := make([]string, 0, len(s.rows))
	for k := range s.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	want := fmt.Sprint(value)
	var out []T
	for _, k := range keys {
		r := s.rows[k]
		if fmt.Sprint(s.table.Values(r)[idx]) == want {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *FakeStore[T]) InsertMany(_ context.Context, rows []T) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["insert"]++
	if s.err != nil {
		return 0, s.err
	}
	for _, r := range rows {
		if _, dup := s.rows[s.table.Key(r)]; dup {
			return 0, fmt.Errorf("duplicate key %q", s.table.Key(r))
		}
	}
	for _, r := range rows {
		s.rows[s.table.Key(r)] = r
	}
	return int64(len(rows)), nil
}

func (s *FakeStore[T]) UpdateMany(_ context.Context, updates []domain.RowUpdate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["update"]++
	if s.err != nil {
		return 0, s.err
	}

	staged := make(map[string]T, len(updates))
	for _, u := range updates {
		r, ok := staged[u.ID]
		if !ok {
			if r, ok = s.rows[u.ID]; !ok {
				continue
			}
		}
		if err := applyFields(&r, u.Fields); err != nil {
			return 0, err
		}
		staged[u.ID] = r
	}
	for id, r := range staged {
		s.rows[id] = r
	}

	var affected int64
	for _, u := range updates {
		if _, ok := s.rows[u.ID]; ok {
			affected++
		}
	}
	return affected, nil
}

// applyFields выставляет поля структуры по тегу db.
func applyFields[T any](row *T, fields map[string]any) error {
	v := reflect.ValueOf(row).Elem()
	t := v.Type()
	for col, val := range fields {
		found := false
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).Tag.Get("db") != col {
				continue
			}
			fv := reflect.ValueOf(val)
			ft := v.Field(i).Type()
			if !fv.Type().ConvertibleTo(ft) {
				return fmt.Errorf("column %q: cannot use %T as %s", col, val, ft)
			}
			v.Field(i).Set(fv.Convert(ft))
			found = true
			break
		}
		if !found {
			return fmt.Errorf("unknown column %q", col)
		}
	}
	return nil
}
