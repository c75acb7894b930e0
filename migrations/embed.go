// Package migrations bundles the Postgres schema migrations into the binary.
package migrations

import "embed"

// FS holds the numbered up/down migration files.
//
//go:embed *.sql
var FS embed.FS
