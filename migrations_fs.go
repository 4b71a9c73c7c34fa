package social

import (
	"embed"
	"io/fs"
)

// migrationsFS holds the SQL schema for the durable session store under
// data/sql/migrations/sqlite.
//
//go:embed data/sql/migrations/sqlite/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the full embedded migration tree.
func GetMigrationsFS() fs.FS {
	return migrationsFS
}

// GetCoreMigrationsFS returns the session schema migration tree.
func GetCoreMigrationsFS() fs.FS {
	return migrationsFS
}
