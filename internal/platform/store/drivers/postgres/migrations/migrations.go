// Package migrations embeds the control-plane schema for the postgres driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
