package migrations

import "embed"

// FS SQL-миграции схемы, используются cmd/migrate
//
//go:embed *.sql
var FS embed.FS
