package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate runs all database migrations
func Migrate(db *sqlx.DB) error {
	migrations := []string{
		createUserMetadataTable,
		createIndexes,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const createUserMetadataTable = `
CREATE TABLE IF NOT EXISTS user_metadata (
    name TEXT NOT NULL PRIMARY KEY COLLATE NOCASE,
    position INTEGER NOT NULL DEFAULT 0,
    document TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const createIndexes = `
CREATE INDEX IF NOT EXISTS idx_user_metadata_position ON user_metadata(position);
`
