package validation

import (
	"testing"

	"github.com/matt0x6f/metadata-editor/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePluginName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plugin", "Foo.esp", false},
		{"master", "Skyrim.esm", false},
		{"light upper case", "Tiny.ESL", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"padded", " Foo.esp", true},
		{"path", "Data/Foo.esp", true},
		{"windows path", `Data\Foo.esp`, true},
		{"wrong extension", "Foo.bsa", true},
		{"ghosted", "Foo.esp.ghost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePluginName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMetadata(t *testing.T) {
	empty := ""
	tests := []struct {
		name    string
		input   metadata.PluginMetadata
		wantErr bool
	}{
		{"name only", metadata.NewPluginMetadata("Foo.esp"), false},
		{"full", metadata.PluginMetadata{
			Name:      "Foo.esp",
			LoadAfter: []metadata.File{{Name: "Bar.esp"}},
			Messages:  []metadata.Message{{Type: metadata.MessageError, Content: "broken"}},
			Tags:      []metadata.Tag{{Name: "Delev"}},
			Locations: []metadata.Location{{URL: "https://example.com"}},
		}, false},
		{"bad name", metadata.NewPluginMetadata("Foo"), true},
		{"empty group", metadata.PluginMetadata{Name: "Foo.esp", Group: &empty}, true},
		{"unnamed requirement", metadata.PluginMetadata{Name: "Foo.esp", Requirements: []metadata.File{{}}}, true},
		{"unknown message type", metadata.PluginMetadata{Name: "Foo.esp", Messages: []metadata.Message{{Type: "shout", Content: "x"}}}, true},
		{"empty message", metadata.PluginMetadata{Name: "Foo.esp", Messages: []metadata.Message{{Type: metadata.MessageSay}}}, true},
		{"unnamed tag", metadata.PluginMetadata{Name: "Foo.esp", Tags: []metadata.Tag{{Removal: true}}}, true},
		{"empty link", metadata.PluginMetadata{Name: "Foo.esp", Locations: []metadata.Location{{Name: "Nexus"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetadata(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMetadata_ReportsFirstInvalidListInOrder(t *testing.T) {
	m := metadata.PluginMetadata{
		Name:              "Foo.esp",
		LoadAfter:         []metadata.File{{Name: " "}},
		Requirements:      []metadata.File{{Name: ""}},
		Incompatibilities: []metadata.File{{Name: ""}},
	}

	for n := 0; n < 20; n++ {
		err := ValidateMetadata(m)
		require.Error(t, err)
		assert.Equal(t, "load after 1: file name is required", err.Error())
	}
}
