package masterlist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matt0x6f/metadata-editor/internal/metadata"
	"gopkg.in/yaml.v3"
)

// FileUserlist persists user metadata as a YAML document on disk
type FileUserlist struct {
	path string
}

// NewFileUserlist creates a userlist backed by the file at path
func NewFileUserlist(path string) *FileUserlist {
	return &FileUserlist{path: path}
}

// Path returns the userlist file path
func (u *FileUserlist) Path() string {
	return u.path
}

// LoadUserlist reads all entries. A missing file is an empty userlist.
func (u *FileUserlist) LoadUserlist() ([]metadata.PluginMetadata, error) {
	data, err := os.ReadFile(u.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read userlist: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse userlist: %w", err)
	}
	return doc.Plugins, nil
}

// SaveUserlist replaces the file contents with entries. The document is
// written to a temporary file first so a failed write leaves the old one.
func (u *FileUserlist) SaveUserlist(entries []metadata.PluginMetadata) error {
	data, err := yaml.Marshal(Document{Plugins: entries})
	if err != nil {
		return fmt.Errorf("failed to encode userlist: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(u.path), 0755); err != nil {
		return fmt.Errorf("failed to create userlist directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(u.path), ".userlist-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temporary userlist: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write userlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write userlist: %w", err)
	}
	if err := os.Rename(tmpName, u.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace userlist: %w", err)
	}
	return nil
}
