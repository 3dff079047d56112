// Package migrations embeds the control-plane schema for the sqlite driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
