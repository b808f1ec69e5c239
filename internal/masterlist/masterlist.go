// Package masterlist reads and writes metadata documents: the shared
// masterlist and the user's userlist use the same YAML shape.
package masterlist

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/matt0x6f/metadata-editor/internal/logger"
	"github.com/matt0x6f/metadata-editor/internal/metadata"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a metadata file does not exist
var ErrNotFound = errors.New("metadata file not found")

// Group is a named group plugins can be assigned to
type Group struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	After       []string `yaml:"after,omitempty"`
}

// Document is the on-disk shape of a masterlist or userlist
type Document struct {
	Groups  []Group                   `yaml:"groups,omitempty"`
	Plugins []metadata.PluginMetadata `yaml:"plugins,omitempty"`
}

// Masterlist indexes a parsed document by plugin name
type Masterlist struct {
	groups  []Group
	plugins map[string]metadata.PluginMetadata
}

// Parse decodes a masterlist document
func Parse(data []byte) (*Masterlist, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata document: %w", err)
	}

	ml := &Masterlist{
		groups:  doc.Groups,
		plugins: make(map[string]metadata.PluginMetadata, len(doc.Plugins)),
	}
	for _, p := range doc.Plugins {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("plugin entry without a name")
		}
		key := strings.ToLower(p.Name)
		if existing, ok := ml.plugins[key]; ok {
			// Later entries for the same plugin extend earlier ones.
			existing.MergeMetadata(p)
			ml.plugins[key] = existing
			continue
		}
		ml.plugins[key] = p
	}
	return ml, nil
}

// Load reads and parses a masterlist file
func Load(path string) (*Masterlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read masterlist: %w", err)
	}

	ml, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Log.Info().
		Str("path", path).
		Int("plugins", len(ml.plugins)).
		Int("groups", len(ml.groups)).
		Msg("Loaded masterlist")
	return ml, nil
}

// Empty returns a masterlist with no entries
func Empty() *Masterlist {
	return &Masterlist{plugins: make(map[string]metadata.PluginMetadata)}
}

// FindPlugin returns a copy of the entry for name, if there is one
func (m *Masterlist) FindPlugin(name string) (metadata.PluginMetadata, bool) {
	p, ok := m.plugins[strings.ToLower(name)]
	if !ok {
		return metadata.PluginMetadata{}, false
	}
	return p.Clone(), true
}

// Groups returns the groups defined by the masterlist
func (m *Masterlist) Groups() []Group {
	return append([]Group(nil), m.groups...)
}

// Len returns the number of plugin entries
func (m *Masterlist) Len() int {
	return len(m.plugins)
}
