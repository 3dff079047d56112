// Package tenantschema embeds the baseline schema every tenant database
// starts with. Versioned per tenant: each tenant database tracks its own
// migration state.
package tenantschema

import "embed"

//go:embed *.sql
var Migrations embed.FS
