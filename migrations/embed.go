package migrations

import "embed"

// Files holds the schema for cycle entries and prediction snapshots.
//
//go:embed *.sql
var Files embed.FS
