package metadata

import "strings"

// DefaultGroupName is the group every plugin belongs to unless told otherwise.
// A plugin with no group and a plugin in this group are treated the same.
const DefaultGroupName = "default"

// PluginMetadata holds the metadata known about a single plugin.
// Name is the identity key; none of the methods below change it.
type PluginMetadata struct {
	Name              string         `json:"name" yaml:"name"`
	Group             *string        `json:"group,omitempty" yaml:"group,omitempty"`
	LoadAfter         []File         `json:"after,omitempty" yaml:"after,omitempty"`
	Requirements      []File         `json:"req,omitempty" yaml:"req,omitempty"`
	Incompatibilities []File         `json:"inc,omitempty" yaml:"inc,omitempty"`
	Messages          []Message      `json:"msg,omitempty" yaml:"msg,omitempty"`
	Tags              []Tag          `json:"tag,omitempty" yaml:"tag,omitempty"`
	DirtyInfo         []CleaningData `json:"dirty,omitempty" yaml:"dirty,omitempty"`
	CleanInfo         []CleaningData `json:"clean,omitempty" yaml:"clean,omitempty"`
	Locations         []Location     `json:"url,omitempty" yaml:"url,omitempty"`
}

// NewPluginMetadata creates metadata that holds nothing but a name
func NewPluginMetadata(name string) PluginMetadata {
	return PluginMetadata{Name: name}
}

// GetGroup returns the plugin's group, if one is set
func (p PluginMetadata) GetGroup() (string, bool) {
	if p.Group == nil {
		return "", false
	}
	return *p.Group, true
}

// GroupOrDefault returns the plugin's group, or DefaultGroupName if none is set
func (p PluginMetadata) GroupOrDefault() string {
	if group, ok := p.GetGroup(); ok {
		return group
	}
	return DefaultGroupName
}

// SetGroup sets the plugin's group
func (p *PluginMetadata) SetGroup(group string) {
	p.Group = &group
}

// UnsetGroup clears the plugin's group
func (p *PluginMetadata) UnsetGroup() {
	p.Group = nil
}

// HasNameOnly reports whether everything besides the name is empty
func (p PluginMetadata) HasNameOnly() bool {
	return p.Group == nil &&
		len(p.LoadAfter) == 0 &&
		len(p.Requirements) == 0 &&
		len(p.Incompatibilities) == 0 &&
		len(p.Messages) == 0 &&
		len(p.Tags) == 0 &&
		len(p.DirtyInfo) == 0 &&
		len(p.CleanInfo) == 0 &&
		len(p.Locations) == 0
}

// IsNamed reports whether the metadata belongs to the given plugin.
// Plugin filenames are case-insensitive.
func (p PluginMetadata) IsNamed(name string) bool {
	return strings.EqualFold(p.Name, name)
}

// NewMetadata returns the metadata in p that is not already present in base.
// The name is kept, the group is dropped if it matches base's group, and every
// list keeps only the entries base does not have. Neither value is modified.
func (p PluginMetadata) NewMetadata(base PluginMetadata) PluginMetadata {
	out := PluginMetadata{Name: p.Name}

	if group, ok := p.GetGroup(); ok {
		if baseGroup, baseOK := base.GetGroup(); !baseOK || baseGroup != group {
			out.SetGroup(group)
		}
	}

	out.LoadAfter = difference(p.LoadAfter, base.LoadAfter)
	out.Requirements = difference(p.Requirements, base.Requirements)
	out.Incompatibilities = difference(p.Incompatibilities, base.Incompatibilities)
	out.Messages = difference(p.Messages, base.Messages)
	out.Tags = difference(p.Tags, base.Tags)
	out.DirtyInfo = difference(p.DirtyInfo, base.DirtyInfo)
	out.CleanInfo = difference(p.CleanInfo, base.CleanInfo)
	out.Locations = difference(p.Locations, base.Locations)

	return out
}

// MergeMetadata applies other on top of p. A group set in other replaces p's
// group, and list entries from other that p lacks are appended in order.
func (p *PluginMetadata) MergeMetadata(other PluginMetadata) {
	if group, ok := other.GetGroup(); ok {
		p.SetGroup(group)
	}

	p.LoadAfter = union(p.LoadAfter, other.LoadAfter)
	p.Requirements = union(p.Requirements, other.Requirements)
	p.Incompatibilities = union(p.Incompatibilities, other.Incompatibilities)
	p.Messages = union(p.Messages, other.Messages)
	p.Tags = union(p.Tags, other.Tags)
	p.DirtyInfo = union(p.DirtyInfo, other.DirtyInfo)
	p.CleanInfo = union(p.CleanInfo, other.CleanInfo)
	p.Locations = union(p.Locations, other.Locations)
}

// Clone returns a deep copy of p
func (p PluginMetadata) Clone() PluginMetadata {
	out := PluginMetadata{Name: p.Name}
	if group, ok := p.GetGroup(); ok {
		out.SetGroup(group)
	}
	out.LoadAfter = clone(p.LoadAfter)
	out.Requirements = clone(p.Requirements)
	out.Incompatibilities = clone(p.Incompatibilities)
	out.Messages = clone(p.Messages)
	out.Tags = clone(p.Tags)
	out.DirtyInfo = clone(p.DirtyInfo)
	out.CleanInfo = clone(p.CleanInfo)
	out.Locations = clone(p.Locations)
	return out
}

// Equal reports whether p and other hold the same metadata. Names compare
// case-insensitively, as plugin filenames do.
func (p PluginMetadata) Equal(other PluginMetadata) bool {
	if !p.IsNamed(other.Name) {
		return false
	}
	group, ok := p.GetGroup()
	otherGroup, otherOK := other.GetGroup()
	if ok != otherOK || group != otherGroup {
		return false
	}
	return sameElements(p.LoadAfter, other.LoadAfter) &&
		sameElements(p.Requirements, other.Requirements) &&
		sameElements(p.Incompatibilities, other.Incompatibilities) &&
		sameElements(p.Messages, other.Messages) &&
		sameElements(p.Tags, other.Tags) &&
		sameElements(p.DirtyInfo, other.DirtyInfo) &&
		sameElements(p.CleanInfo, other.CleanInfo) &&
		sameElements(p.Locations, other.Locations)
}
