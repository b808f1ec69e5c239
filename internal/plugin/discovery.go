package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matt0x6f/metadata-editor/internal/logger"
)

const ghostExtension = ".ghost"

// Plugin is a plugin file found in the game's data directory
type Plugin struct {
	Name    string
	Path    string
	Ghosted bool
	Header  *Header
}

// BashTags returns the Bash Tags the plugin declares in its own header
func (p *Plugin) BashTags() []string {
	if p.Header == nil {
		return nil
	}
	return p.Header.BashTags()
}

// DiscoverPlugins finds and reads every plugin in dataDir
func DiscoverPlugins(dataDir string, oblivion bool) ([]*Plugin, error) {
	if dataDir == "" {
		return nil, nil
	}

	plugins, err := discoverInDirectory(dataDir, oblivion)
	if err != nil {
		return nil, fmt.Errorf("failed to discover plugins in directory: %w", err)
	}

	logger.Log.Info().
		Str("dir", dataDir).
		Int("count", len(plugins)).
		Msg("Discovered plugins")
	return plugins, nil
}

// discoverInDirectory reads the plugin files directly inside dir
func discoverInDirectory(dir string, oblivion bool) ([]*Plugin, error) {
	var plugins []*Plugin

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return plugins, nil // Directory doesn't exist, return empty
		}
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name, ghosted, ok := pluginName(entry.Name(), oblivion)
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		header, err := readHeaderFile(path, oblivion)
		if err != nil {
			logger.Log.Warn().Err(err).Str("path", path).Msg("Failed to read plugin header")
			continue
		}

		plugins = append(plugins, &Plugin{
			Name:    name,
			Path:    path,
			Ghosted: ghosted,
			Header:  header,
		})
	}

	sort.Slice(plugins, func(i, j int) bool {
		return strings.ToLower(plugins[i].Name) < strings.ToLower(plugins[j].Name)
	})
	return plugins, nil
}

// pluginName strips a .ghost suffix and checks the plugin extension
func pluginName(filename string, oblivion bool) (string, bool, bool) {
	name := filename
	ghosted := false
	if strings.EqualFold(filepath.Ext(name), ghostExtension) {
		name = name[:len(name)-len(ghostExtension)]
		ghosted = true
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".esp", ".esm":
		return name, ghosted, true
	case ".esl":
		// Light plugins don't exist in Oblivion
		return name, ghosted, !oblivion
	}
	return "", false, false
}

func readHeaderFile(path string, oblivion bool) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadHeader(f, oblivion)
}
