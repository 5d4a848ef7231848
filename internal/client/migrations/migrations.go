// Package migrations embeds the goose SQL migrations of the vault databases,
// one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
