package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt0x6f/metadata-editor/internal/masterlist"
	"github.com/matt0x6f/metadata-editor/internal/metadata"
	"github.com/matt0x6f/metadata-editor/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryBackend struct {
	entries []metadata.PluginMetadata
	saves   int
	loadErr error
	saveErr error
}

func (m *memoryBackend) LoadUserlist() ([]metadata.PluginMetadata, error) {
	return m.entries, m.loadErr
}

func (m *memoryBackend) SaveUserlist(entries []metadata.PluginMetadata) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.entries = entries
	return nil
}

func TestParseType(t *testing.T) {
	got, err := ParseType(" SkyrimSE ")
	require.NoError(t, err)
	assert.Equal(t, SkyrimSE, got)

	_, err = ParseType("morrowind")
	assert.Error(t, err)
}

func TestUserMetadata_ClearAddSave(t *testing.T) {
	backend := &memoryBackend{}
	g := New(Skyrim, backend)

	g.ClearUserMetadata("Missing.esp") // no-op

	combat := "Combat"
	g.AddUserMetadata(metadata.PluginMetadata{Name: "Foo.esp", Group: &combat})
	g.AddUserMetadata(metadata.PluginMetadata{Name: "foo.esp", Tags: []metadata.Tag{{Name: "Delev"}}})

	got, ok := g.GetUserMetadata("FOO.esp")
	require.True(t, ok)
	assert.Equal(t, "Foo.esp", got.Name)
	assert.Equal(t, "Combat", got.GroupOrDefault())
	assert.Equal(t, []metadata.Tag{{Name: "Delev"}}, got.Tags, "adding to an existing entry merges")

	require.NoError(t, g.SaveUserMetadata())
	require.Len(t, backend.entries, 1)

	g.ClearUserMetadata("Foo.esp")
	_, ok = g.GetUserMetadata("Foo.esp")
	assert.False(t, ok)

	require.NoError(t, g.SaveUserMetadata())
	assert.Empty(t, backend.entries)
	assert.Equal(t, 2, backend.saves)
}

func TestGetUserMetadata_ReturnsCopy(t *testing.T) {
	g := New(Skyrim, &memoryBackend{})
	g.AddUserMetadata(metadata.PluginMetadata{Name: "Foo.esp", Tags: []metadata.Tag{{Name: "Delev"}}})

	got, _ := g.GetUserMetadata("Foo.esp")
	got.Tags[0].Name = "Changed"

	again, _ := g.GetUserMetadata("Foo.esp")
	assert.Equal(t, "Delev", again.Tags[0].Name)
}

func TestSaveUserMetadata_WrapsBackendError(t *testing.T) {
	diskFull := errors.New("disk full")
	g := New(Skyrim, &memoryBackend{saveErr: diskFull})

	err := g.SaveUserMetadata()
	assert.True(t, errors.Is(err, diskFull))
}

func TestLoadUserlist(t *testing.T) {
	backend := &memoryBackend{entries: []metadata.PluginMetadata{
		{Name: "Foo.esp", Tags: []metadata.Tag{{Name: "Delev"}}},
		{Name: "FOO.esp", Tags: []metadata.Tag{{Name: "Relev"}}},
		{Name: "Bar.esp"},
	}}
	g := New(Skyrim, backend)

	require.NoError(t, g.LoadUserlist())

	foo, ok := g.GetUserMetadata("foo.esp")
	require.True(t, ok)
	assert.Len(t, foo.Tags, 2, "duplicate entries are merged")
	_, ok = g.GetUserMetadata("Bar.esp")
	assert.True(t, ok)

	backend.loadErr = errors.New("corrupt")
	assert.Error(t, g.LoadUserlist())
}

func TestMasterlist(t *testing.T) {
	g := New(Skyrim, &memoryBackend{})

	_, ok := g.GetMasterlistMetadata("Foo.esp")
	assert.False(t, ok)

	ml, err := masterlist.Parse([]byte("plugins:\n  - name: Foo.esp\n    group: Combat\n"))
	require.NoError(t, err)
	g.SetMasterlist(ml)

	foo, ok := g.GetMasterlistMetadata("foo.esp")
	require.True(t, ok)
	assert.Equal(t, "Combat", foo.GroupOrDefault())
}

func TestLoadMasterlist_MissingFileIsEmpty(t *testing.T) {
	g := New(Skyrim, &memoryBackend{})

	require.NoError(t, g.LoadMasterlist(filepath.Join(t.TempDir(), "masterlist.yaml")))
	_, ok := g.GetMasterlistMetadata("Foo.esp")
	assert.False(t, ok)
}

func TestLoadMasterlist_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masterlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{invalid"), 0644))

	g := New(Skyrim, &memoryBackend{})
	assert.Error(t, g.LoadMasterlist(path))
}

func TestPlugins(t *testing.T) {
	g := New(Skyrim, &memoryBackend{})
	g.SetPlugins([]*plugin.Plugin{{Name: "Zed.esp"}, {Name: "alpha.esm"}})

	p, ok := g.GetPlugin("ZED.ESP")
	require.True(t, ok)
	assert.Equal(t, "Zed.esp", p.Name)

	_, ok = g.GetPlugin("Missing.esp")
	assert.False(t, ok)

	plugins := g.Plugins()
	require.Len(t, plugins, 2)
	assert.Equal(t, "alpha.esm", plugins[0].Name)
}

func TestLoadPlugins_MissingDirectory(t *testing.T) {
	g := New(Oblivion, &memoryBackend{})
	require.NoError(t, g.LoadPlugins(filepath.Join(t.TempDir(), "Data")))
	assert.Empty(t, g.Plugins())
}
