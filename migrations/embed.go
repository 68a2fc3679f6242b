// Package migrations embeds the schema migrations for every supported dialect.
package migrations

import "embed"

// FS holds sqlite/*.sql and postgres/*.sql, in golang-migrate naming.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
