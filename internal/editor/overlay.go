package editor

import "github.com/matt0x6f/metadata-editor/internal/metadata"

// UserMetadata works out which parts of edited the user actually added.
// baseline is the plugin's non-user metadata, or nil if it has none.
//
// The editor always shows a group, so an edited group of "default" only counts
// as a user choice when the baseline puts the plugin in some other group.
func UserMetadata(edited metadata.PluginMetadata, baseline *metadata.PluginMetadata) metadata.PluginMetadata {
	if baseline != nil {
		userMetadata := edited.NewMetadata(*baseline)
		if hasDefaultGroup(userMetadata) && baseline.GroupOrDefault() == metadata.DefaultGroupName {
			userMetadata.UnsetGroup()
		}
		return userMetadata
	}

	userMetadata := edited.Clone()
	if hasDefaultGroup(userMetadata) {
		userMetadata.UnsetGroup()
	}
	return userMetadata
}

func hasDefaultGroup(m metadata.PluginMetadata) bool {
	group, ok := m.GetGroup()
	return ok && group == metadata.DefaultGroupName
}
