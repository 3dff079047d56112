// Package tenantschema embeds the baseline schema every tenant namespace
// starts with. Migrations run with search_path pinned to the tenant schema,
// so each schema carries its own schema_migrations table.
package tenantschema

import "embed"

//go:embed *.sql
var Migrations embed.FS
