package metadata

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts both "- Foo.esp" and the mapping form
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*f = File{Name: node.Value}
		return nil
	}

	type plain File
	var v plain
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("invalid file entry at line %d: %w", node.Line, err)
	}
	*f = File(v)
	return nil
}

// UnmarshalYAML accepts "Delev", "-Relev" and the mapping form
func (t *Tag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*t = parseTag(node.Value)
		return nil
	}

	var v struct {
		Name      string `yaml:"name"`
		Condition string `yaml:"condition"`
	}
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("invalid tag entry at line %d: %w", node.Line, err)
	}
	*t = parseTag(v.Name)
	t.Condition = v.Condition
	return nil
}

// MarshalYAML writes the short scalar form when there is no condition
func (t Tag) MarshalYAML() (interface{}, error) {
	name := t.Name
	if t.Removal {
		name = "-" + name
	}
	if t.Condition == "" {
		return name, nil
	}
	return map[string]string{"name": name, "condition": t.Condition}, nil
}

// MarshalYAML writes the short scalar form when only the name is set
func (f File) MarshalYAML() (interface{}, error) {
	if f.Display == "" && f.Condition == "" {
		return f.Name, nil
	}
	type plain File
	return plain(f), nil
}

func parseTag(s string) Tag {
	if strings.HasPrefix(s, "-") {
		return Tag{Name: strings.TrimPrefix(s, "-"), Removal: true}
	}
	return Tag{Name: s}
}
