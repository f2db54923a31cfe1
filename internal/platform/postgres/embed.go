package postgres

import "embed"

// MigrationsFS embeds the goose migration files so the server binary can
// apply them without a migrations directory on disk.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
