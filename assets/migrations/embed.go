// Package migrations bundles the SQL schema so the binary migrates without a source checkout.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
