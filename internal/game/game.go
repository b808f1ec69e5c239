// Package game holds the state of the game being edited: its loaded plugins,
// the masterlist, and the user's own metadata.
package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/matt0x6f/metadata-editor/internal/logger"
	"github.com/matt0x6f/metadata-editor/internal/masterlist"
	"github.com/matt0x6f/metadata-editor/internal/metadata"
	"github.com/matt0x6f/metadata-editor/internal/plugin"
)

// Type identifies a supported game
type Type string

const (
	Oblivion  Type = "oblivion"
	Skyrim    Type = "skyrim"
	SkyrimSE  Type = "skyrimse"
	Fallout3  Type = "fallout3"
	FalloutNV Type = "falloutnv"
	Fallout4  Type = "fallout4"
)

// ParseType returns the game type with the given name
func ParseType(name string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(name))); t {
	case Oblivion, Skyrim, SkyrimSE, Fallout3, FalloutNV, Fallout4:
		return t, nil
	}
	return "", fmt.Errorf("unsupported game %q", name)
}

// UserlistBackend loads and saves the user's metadata
type UserlistBackend interface {
	LoadUserlist() ([]metadata.PluginMetadata, error)
	SaveUserlist(entries []metadata.PluginMetadata) error
}

// Game is safe for concurrent use
type Game struct {
	gameType   Type
	backend    UserlistBackend
	plugins    map[string]*plugin.Plugin
	masterlist *masterlist.Masterlist
	userlist   []metadata.PluginMetadata
	mu         sync.RWMutex
	saveMu     sync.Mutex // serializes backend writes
}

// New creates a game with no plugins, an empty masterlist and an empty userlist
func New(gameType Type, backend UserlistBackend) *Game {
	return &Game{
		gameType:   gameType,
		backend:    backend,
		plugins:    make(map[string]*plugin.Plugin),
		masterlist: masterlist.Empty(),
	}
}

// Type returns the game type
func (g *Game) Type() Type {
	return g.gameType
}

// LoadPlugins replaces the loaded plugins with those found in dataDir
func (g *Game) LoadPlugins(dataDir string) error {
	found, err := plugin.DiscoverPlugins(dataDir, g.gameType == Oblivion)
	if err != nil {
		return err
	}
	g.SetPlugins(found)
	return nil
}

// SetPlugins replaces the loaded plugins
func (g *Game) SetPlugins(plugins []*plugin.Plugin) {
	byName := make(map[string]*plugin.Plugin, len(plugins))
	for _, p := range plugins {
		byName[strings.ToLower(p.Name)] = p
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.plugins = byName
}

// LoadMasterlist reads the masterlist at path. A missing masterlist leaves
// the game with an empty one.
func (g *Game) LoadMasterlist(path string) error {
	ml, err := masterlist.Load(path)
	if err != nil {
		if errors.Is(err, masterlist.ErrNotFound) {
			logger.Log.Warn().Str("path", path).Msg("Masterlist not found, continuing without one")
			ml = masterlist.Empty()
		} else {
			return err
		}
	}
	g.SetMasterlist(ml)
	return nil
}

// SetMasterlist replaces the masterlist
func (g *Game) SetMasterlist(ml *masterlist.Masterlist) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.masterlist = ml
}

// LoadUserlist replaces the in-memory userlist with the backend's contents
func (g *Game) LoadUserlist() error {
	entries, err := g.backend.LoadUserlist()
	if err != nil {
		return fmt.Errorf("failed to load userlist: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.userlist = nil
	for _, e := range entries {
		g.addUserMetadataLocked(e)
	}
	logger.Log.Info().Int("entries", len(g.userlist)).Msg("Loaded userlist")
	return nil
}

// GetPlugin returns the loaded plugin with the given name
func (g *Game) GetPlugin(name string) (*plugin.Plugin, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.plugins[strings.ToLower(name)]
	return p, ok
}

// Plugins returns the loaded plugins sorted by name
func (g *Game) Plugins() []*plugin.Plugin {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*plugin.Plugin, 0, len(g.plugins))
	for _, p := range g.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Groups returns the groups defined by the masterlist
func (g *Game) Groups() []masterlist.Group {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.masterlist.Groups()
}

// GetMasterlistMetadata returns the masterlist entry for a plugin
func (g *Game) GetMasterlistMetadata(name string) (metadata.PluginMetadata, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.masterlist.FindPlugin(name)
}

// GetUserMetadata returns the userlist entry for a plugin
func (g *Game) GetUserMetadata(name string) (metadata.PluginMetadata, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if i := g.userIndexLocked(name); i >= 0 {
		return g.userlist[i].Clone(), true
	}
	return metadata.PluginMetadata{}, false
}

// ClearUserMetadata removes a plugin's userlist entry. Removing a missing entry is a no-op.
func (g *Game) ClearUserMetadata(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i := g.userIndexLocked(name); i >= 0 {
		g.userlist = append(g.userlist[:i], g.userlist[i+1:]...)
	}
}

// AddUserMetadata adds m to the userlist, merging it into any existing entry
func (g *Game) AddUserMetadata(m metadata.PluginMetadata) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addUserMetadataLocked(m)
}

// SaveUserMetadata persists the whole userlist through the backend
func (g *Game) SaveUserMetadata() error {
	g.saveMu.Lock()
	defer g.saveMu.Unlock()

	g.mu.RLock()
	entries := make([]metadata.PluginMetadata, len(g.userlist))
	for i, e := range g.userlist {
		entries[i] = e.Clone()
	}
	g.mu.RUnlock()

	if err := g.backend.SaveUserlist(entries); err != nil {
		return fmt.Errorf("failed to save userlist: %w", err)
	}
	return nil
}

// addUserMetadataLocked assumes the write lock is held
func (g *Game) addUserMetadataLocked(m metadata.PluginMetadata) {
	if i := g.userIndexLocked(m.Name); i >= 0 {
		g.userlist[i].MergeMetadata(m)
		return
	}
	g.userlist = append(g.userlist, m.Clone())
}

// userIndexLocked assumes a lock is held
func (g *Game) userIndexLocked(name string) int {
	for i, e := range g.userlist {
		if e.IsNamed(name) {
			return i
		}
	}
	return -1
}
