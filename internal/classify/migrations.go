package classify

import (
	"database/sql"

	"github.com/leasetrace/leasetrace/pkg/plugin"
)

// migrations returns the Classify module's database migrations.
func migrations() []plugin.Migration {
	return []plugin.Migration{
		{
			Version:     1,
			Description: "create classify tables (devices, runs, history)",
			Up: func(tx *sql.Tx) error {
				stmts := []string{
					`CREATE TABLE classify_devices (
						mac                TEXT PRIMARY KEY,
						ip_address         TEXT NOT NULL DEFAULT '',
						hostname           TEXT NOT NULL DEFAULT '',
						vendor             TEXT NOT NULL DEFAULT '',
						vendor_confidence  TEXT NOT NULL DEFAULT 'unknown',
						device_type        TEXT NOT NULL DEFAULT '',
						device_name        TEXT NOT NULL DEFAULT '',
						operating_system   TEXT NOT NULL DEFAULT '',
						classification     TEXT NOT NULL DEFAULT 'Unknown',
						method             TEXT NOT NULL DEFAULT 'unknown',
						overall_confidence TEXT NOT NULL DEFAULT 'unknown',
						oracle_score       INTEGER,
						oracle_error       TEXT NOT NULL DEFAULT '',
						shape_confidence   TEXT NOT NULL DEFAULT '',
						param_list         TEXT NOT NULL DEFAULT '',
						vendor_class       TEXT NOT NULL DEFAULT '',
						run_id             TEXT NOT NULL DEFAULT '',
						first_seen         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
						last_seen          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE INDEX idx_classify_devices_type ON classify_devices(device_type)`,
					`CREATE INDEX idx_classify_devices_method ON classify_devices(method)`,
					`CREATE INDEX idx_classify_devices_last_seen ON classify_devices(last_seen)`,
					`CREATE TABLE classify_runs (
						id           TEXT PRIMARY KEY,
						started_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
						completed_at DATETIME,
						device_count INTEGER NOT NULL DEFAULT 0
					)`,
					`CREATE TABLE classify_history (
						id                 INTEGER PRIMARY KEY AUTOINCREMENT,
						mac                TEXT NOT NULL,
						run_id             TEXT NOT NULL REFERENCES classify_runs(id) ON DELETE CASCADE,
						device_type        TEXT NOT NULL DEFAULT '',
						method             TEXT NOT NULL DEFAULT 'unknown',
						overall_confidence TEXT NOT NULL DEFAULT 'unknown',
						classified_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE INDEX idx_classify_history_mac ON classify_history(mac)`,
					`CREATE INDEX idx_classify_history_run ON classify_history(run_id)`,
				}
				for _, stmt := range stmts {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
