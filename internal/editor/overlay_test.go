package editor

import (
	"testing"

	"github.com/matt0x6f/metadata-editor/internal/metadata"
	"github.com/matt0x6f/metadata-editor/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMetadata(t *testing.T) {
	tests := []struct {
		name      string
		edited    metadata.PluginMetadata
		baseline  *metadata.PluginMetadata
		wantGroup *string
		wantTags  []metadata.Tag
	}{
		{
			name:     "no baseline, default group dropped",
			edited:   metadata.PluginMetadata{Name: "A.esp", Group: group("default"), Tags: []metadata.Tag{{Name: "Delev"}}},
			wantTags: []metadata.Tag{{Name: "Delev"}},
		},
		{
			name:      "no baseline, other group kept",
			edited:    metadata.PluginMetadata{Name: "A.esp", Group: group("Late")},
			wantGroup: group("Late"),
		},
		{
			name:     "baseline without group, default group dropped",
			edited:   metadata.PluginMetadata{Name: "A.esp", Group: group("default")},
			baseline: &metadata.PluginMetadata{Name: "A.esp"},
		},
		{
			name:     "baseline in default group, same group dropped",
			edited:   metadata.PluginMetadata{Name: "A.esp", Group: group("default")},
			baseline: &metadata.PluginMetadata{Name: "A.esp", Group: group("default")},
		},
		{
			name:      "baseline in other group, default group kept",
			edited:    metadata.PluginMetadata{Name: "A.esp", Group: group("default")},
			baseline:  &metadata.PluginMetadata{Name: "A.esp", Group: group("Combat")},
			wantGroup: group("default"),
		},
		{
			name:     "baseline group unchanged",
			edited:   metadata.PluginMetadata{Name: "A.esp", Group: group("Combat")},
			baseline: &metadata.PluginMetadata{Name: "A.esp", Group: group("Combat")},
		},
		{
			name:     "shared tags removed",
			edited:   metadata.PluginMetadata{Name: "A.esp", Tags: []metadata.Tag{{Name: "Delev"}, {Name: "Relev"}}},
			baseline: &metadata.PluginMetadata{Name: "A.esp", Tags: []metadata.Tag{{Name: "Delev"}}},
			wantTags: []metadata.Tag{{Name: "Relev"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserMetadata(tt.edited, tt.baseline)

			assert.Equal(t, tt.edited.Name, got.Name)
			assert.Equal(t, tt.wantGroup, got.Group)
			assert.Equal(t, tt.wantTags, got.Tags)
		})
	}
}

func TestUserMetadata_DoesNotModifyInputs(t *testing.T) {
	edited := metadata.PluginMetadata{Name: "A.esp", Group: group("default"), Tags: []metadata.Tag{{Name: "Delev"}}}
	baseline := metadata.PluginMetadata{Name: "A.esp", Tags: []metadata.Tag{{Name: "Delev"}}}
	editedBefore, baselineBefore := edited.Clone(), baseline.Clone()

	_ = UserMetadata(edited, &baseline)
	_ = UserMetadata(edited, nil)

	assert.True(t, edited.Equal(editedBefore))
	assert.True(t, baseline.Equal(baselineBefore))
}

func TestUserMetadata_MergeRestoresEdited(t *testing.T) {
	edited := metadata.PluginMetadata{
		Name:         "A.esp",
		Group:        group("Late"),
		Requirements: []metadata.File{{Name: "B.esm"}, {Name: "C.esm"}},
		Tags:         []metadata.Tag{{Name: "Delev"}, {Name: "Sound"}},
	}
	baseline := metadata.PluginMetadata{
		Name:         "A.esp",
		Group:        group("Combat"),
		Requirements: []metadata.File{{Name: "b.esm"}},
		Tags:         []metadata.Tag{{Name: "Delev"}},
	}

	user := UserMetadata(edited, &baseline)
	merged := baseline.Clone()
	merged.MergeMetadata(user)

	assert.Equal(t, "Late", merged.GroupOrDefault())
	assert.Len(t, merged.Requirements, 2)
	assert.Equal(t, edited.Tags, merged.Tags)
}

type fakeSource struct {
	plugins    map[string]*plugin.Plugin
	masterlist map[string]metadata.PluginMetadata
}

func (f fakeSource) GetPlugin(name string) (*plugin.Plugin, bool) {
	p, ok := f.plugins[name]
	return p, ok
}

func (f fakeSource) GetMasterlistMetadata(name string) (metadata.PluginMetadata, bool) {
	m, ok := f.masterlist[name]
	return m, ok
}

func TestResolver_NonUserMetadata(t *testing.T) {
	r := NewResolver(fakeSource{
		plugins: map[string]*plugin.Plugin{
			"Loaded.esp": {Name: "Loaded.esp", Header: &plugin.Header{Description: "{{BASH:Delev, Names}}"}},
			"Bare.esp":   {Name: "Bare.esp"},
		},
		masterlist: map[string]metadata.PluginMetadata{
			"Loaded.esp": {Name: "Loaded.esp", Group: group("Combat"), Tags: []metadata.Tag{{Name: "Relev"}}},
			"Listed.esp": {Name: "Listed.esp", Tags: []metadata.Tag{{Name: "Sound"}}},
		},
	})

	loaded, ok := r.NonUserMetadata("Loaded.esp")
	require.True(t, ok)
	assert.Equal(t, "Combat", loaded.GroupOrDefault())
	assert.Equal(t, []metadata.Tag{{Name: "Delev"}, {Name: "Names"}, {Name: "Relev"}}, loaded.Tags)

	bare, ok := r.NonUserMetadata("Bare.esp")
	require.True(t, ok)
	assert.True(t, bare.HasNameOnly())

	listed, ok := r.NonUserMetadata("Listed.esp")
	require.True(t, ok)
	assert.Equal(t, []metadata.Tag{{Name: "Sound"}}, listed.Tags)

	_, ok = r.NonUserMetadata("Unknown.esp")
	assert.False(t, ok)
}

func TestCounter_Release(t *testing.T) {
	var c Counter
	c.Increment()
	c.Increment()

	release := c.Release()
	release()
	release()
	assert.Equal(t, int64(1), c.Count())
	assert.True(t, c.HasUnappliedChanges())

	c.Release()()
	assert.Equal(t, int64(0), c.Count())
}
