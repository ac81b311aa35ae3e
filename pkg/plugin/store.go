package plugin

import (
	"context"
	"database/sql"
)

// Store provides plugins with access to the shared database. Each plugin
// owns its own tables (prefixed with the plugin name) and registers its
// schema through Migrate during Init.
type Store interface {
	// DB returns the underlying database handle for direct queries.
	DB() *sql.DB

	// Tx executes fn within a transaction, committing if fn returns nil
	// and rolling back otherwise.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// Migrate applies the plugin's pending migrations in ascending
	// Version order. Already-applied migrations are skipped.
	Migrate(ctx context.Context, pluginName string, migrations []Migration) error
}

// Migration is a single schema change owned by a plugin.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}
