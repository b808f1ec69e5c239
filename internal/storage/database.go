package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/matt0x6f/metadata-editor/internal/logger"
	"github.com/matt0x6f/metadata-editor/internal/metadata"
	_ "github.com/mattn/go-sqlite3"
)

// ErrClosed is returned by operations on a closed Storage
var ErrClosed = errors.New("storage is closed")

// Storage keeps the userlist in a SQLite database
type Storage struct {
	db       *sqlx.DB
	mu       sync.Mutex
	closed   bool
	closedMu sync.RWMutex
}

// NewStorage opens (or creates) the database at dbPath and migrates it
func NewStorage(dbPath string) (*Storage, error) {
	// Enable WAL mode for better concurrent writes
	db, err := sqlx.Connect("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with single connection in WAL mode
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	s.closedMu.Lock()
	defer s.closedMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Storage) isClosed() bool {
	s.closedMu.RLock()
	defer s.closedMu.RUnlock()
	return s.closed
}

// LoadUserlist returns all stored entries in the order they were saved
func (s *Storage) LoadUserlist() ([]metadata.PluginMetadata, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}

	var rows []UserMetadataRow
	if err := s.db.Select(&rows, `SELECT name, position, document, updated_at FROM user_metadata ORDER BY position, name`); err != nil {
		return nil, fmt.Errorf("failed to load user metadata: %w", err)
	}

	entries := make([]metadata.PluginMetadata, 0, len(rows))
	for _, row := range rows {
		var entry metadata.PluginMetadata
		if err := json.Unmarshal([]byte(row.Document), &entry); err != nil {
			logger.Log.Warn().Err(err).Str("plugin", row.Name).Msg("Failed to decode user metadata, skipping entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetUserMetadata returns the stored entry for a plugin, if there is one
func (s *Storage) GetUserMetadata(name string) (*metadata.PluginMetadata, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}

	var row UserMetadataRow
	err := s.db.Get(&row, `SELECT name, position, document, updated_at FROM user_metadata WHERE name = ?`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user metadata: %w", err)
	}

	var entry metadata.PluginMetadata
	if err := json.Unmarshal([]byte(row.Document), &entry); err != nil {
		return nil, fmt.Errorf("failed to decode user metadata for %s: %w", name, err)
	}
	return &entry, nil
}

// SaveUserlist replaces every stored entry with entries in one transaction
func (s *Storage) SaveUserlist(entries []metadata.PluginMetadata) error {
	if s.isClosed() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM user_metadata`); err != nil {
		return fmt.Errorf("failed to clear user metadata: %w", err)
	}

	now := time.Now()
	query := `INSERT INTO user_metadata (name, position, document, updated_at)
	          VALUES (:name, :position, :document, :updated_at)`
	for i, entry := range entries {
		doc, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to encode user metadata for %s: %w", entry.Name, err)
		}
		row := UserMetadataRow{
			Name:      entry.Name,
			Position:  i,
			Document:  string(doc),
			UpdatedAt: now,
		}
		if _, err := tx.NamedExec(query, row); err != nil {
			return fmt.Errorf("failed to store user metadata for %s: %w", entry.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user metadata: %w", err)
	}

	logger.Log.Debug().Int("entries", len(entries)).Msg("Saved userlist to database")
	return nil
}
