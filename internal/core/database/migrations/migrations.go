// Package migrations 内嵌 goose SQL 迁移
package migrations

import "embed"

//go:embed postgres/*.sql
var FS embed.FS
