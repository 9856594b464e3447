package store

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			artist TEXT NOT NULL DEFAULT '',
			mime_type TEXT NOT NULL,
			size INTEGER NOT NULL,
			data BLOB NOT NULL,
			added_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_added_at ON tracks(added_at);

		-- track_ids is a JSON array of track ids in playback order. There is
		-- deliberately no foreign key: a playlist may briefly reference a
		-- deleted track until the library manager's prune pass reaches it.
		CREATE TABLE IF NOT EXISTS playlists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			track_ids TEXT NOT NULL DEFAULT '[]'
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
