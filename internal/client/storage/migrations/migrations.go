// Package migrations embeds the client database schema. Each version adds
// tables without touching data created by earlier versions, so a version bump
// on an existing database only creates what is missing.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
