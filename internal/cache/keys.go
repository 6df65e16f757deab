package cache

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Keys строит ключи кэша:
//
//	<ns>:<table>:id:<pk>                     - сущность
//	<ns>:<table>:list:<column>:<xxhash(v)>   - списочный запрос
//
// Все ключи таблицы лежат под префиксом "<ns>:<table>:".
type Keys struct {
	ns string
}

func NewKeys(namespace string) Keys {
	return Keys{ns: strings.TrimSuffix(namespace, ":")}
}

func (k Keys) Entity(table, id string) string {
	return k.prefix(table) + "id:" + id
}

func (k Keys) Entities(table string, ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = k.Entity(table, id)
	}
	return out
}

// List - ключ выборки по колонке. Значение хэшируется, чтобы ключ не зависел
// от его длины и содержимого.
func (k Keys) List(table, column, value string) string {
	return k.prefix(table) + "list:" + column + ":" + strconv.FormatUint(xxhash.Sum64String(value), 16)
}

// ListPattern - все списочные ключи таблицы.
func (k Keys) ListPattern(table string) string {
	return k.prefix(table) + "list:*"
}

// TablePattern - все ключи таблицы.
func (k Keys) TablePattern(table string) string {
	return k.prefix(table) + "*"
}

func (k Keys) prefix(table string) string {
	if k.ns == "" {
		return table + ":"
	}
	return k.ns + ":" + table + ":"
}
