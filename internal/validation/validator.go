package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matt0x6f/metadata-editor/internal/metadata"
)

// ValidatePluginName validates a plugin filename
func ValidatePluginName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("plugin name is required")
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("plugin name has leading or trailing whitespace")
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("plugin name must be a filename, not a path")
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".esp", ".esm", ".esl":
	default:
		return fmt.Errorf("plugin name must end in .esp, .esm or .esl")
	}
	return nil
}

// ValidateMetadata validates edited metadata before it is stored
func ValidateMetadata(m metadata.PluginMetadata) error {
	if err := ValidatePluginName(m.Name); err != nil {
		return err
	}
	if group, ok := m.GetGroup(); ok && strings.TrimSpace(group) == "" {
		return fmt.Errorf("group name must not be empty")
	}

	lists := []struct {
		kind  string
		files []metadata.File
	}{
		{"load after", m.LoadAfter},
		{"requirement", m.Requirements},
		{"incompatibility", m.Incompatibilities},
	}
	for _, list := range lists {
		for i, f := range list.files {
			if strings.TrimSpace(f.Name) == "" {
				return fmt.Errorf("%s %d: file name is required", list.kind, i+1)
			}
		}
	}

	for i, msg := range m.Messages {
		switch msg.Type {
		case metadata.MessageSay, metadata.MessageWarn, metadata.MessageError:
		default:
			return fmt.Errorf("message %d: unknown type %q", i+1, msg.Type)
		}
		if strings.TrimSpace(msg.Content) == "" {
			return fmt.Errorf("message %d: content is required", i+1)
		}
	}

	for i, tag := range m.Tags {
		if strings.TrimSpace(tag.Name) == "" {
			return fmt.Errorf("tag %d: name is required", i+1)
		}
	}

	for i, loc := range m.Locations {
		if strings.TrimSpace(loc.URL) == "" {
			return fmt.Errorf("location %d: link is required", i+1)
		}
	}
	return nil
}
