// Package migrations - схема хранилища витрины для goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
