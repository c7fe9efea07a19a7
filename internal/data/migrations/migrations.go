// Package migrations embeds the SQL schema applied at startup.
package migrations

import "embed"

//go:embed sql/*.sql
var FS embed.FS

// Dir is the directory inside FS holding the migration files.
const Dir = "sql"
