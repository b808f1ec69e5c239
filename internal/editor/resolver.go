package editor

import (
	"github.com/matt0x6f/metadata-editor/internal/metadata"
	"github.com/matt0x6f/metadata-editor/internal/plugin"
)

// MetadataSource supplies the metadata that does not come from the user
type MetadataSource interface {
	GetPlugin(name string) (*plugin.Plugin, bool)
	GetMasterlistMetadata(name string) (metadata.PluginMetadata, bool)
}

// Resolver finds a plugin's non-user metadata
type Resolver struct {
	source MetadataSource
}

// NewResolver creates a resolver reading from source
func NewResolver(source MetadataSource) *Resolver {
	return &Resolver{source: source}
}

// NonUserMetadata returns everything known about a plugin from sources other
// than the userlist. A loaded plugin wins over a bare masterlist entry.
func (r *Resolver) NonUserMetadata(name string) (metadata.PluginMetadata, bool) {
	lookups := []func(string) (metadata.PluginMetadata, bool){
		r.loadedPluginMetadata,
		r.source.GetMasterlistMetadata,
	}
	for _, lookup := range lookups {
		if m, ok := lookup(name); ok {
			return m, true
		}
	}
	return metadata.PluginMetadata{}, false
}

// loadedPluginMetadata combines a loaded plugin's own Bash Tags with its
// masterlist entry
func (r *Resolver) loadedPluginMetadata(name string) (metadata.PluginMetadata, bool) {
	p, ok := r.source.GetPlugin(name)
	if !ok {
		return metadata.PluginMetadata{}, false
	}

	m := metadata.NewPluginMetadata(p.Name)
	for _, tag := range p.BashTags() {
		m.Tags = append(m.Tags, metadata.Tag{Name: tag})
	}
	if masterlistMetadata, ok := r.source.GetMasterlistMetadata(p.Name); ok {
		m.MergeMetadata(masterlistMetadata)
	}
	return m, true
}
