// Package migrations holds the SQL schema for the stop directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
