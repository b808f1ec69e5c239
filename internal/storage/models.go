package storage

import "time"

// UserMetadataRow is one userlist entry as stored in the database.
// Document holds the entry's metadata encoded as JSON.
type UserMetadataRow struct {
	Name      string    `db:"name" json:"name"`
	Position  int       `db:"position" json:"position"`
	Document  string    `db:"document" json:"document"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
