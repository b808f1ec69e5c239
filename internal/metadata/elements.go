package metadata

import (
	"slices"
	"strings"
)

// MessageType is the severity of a plugin message
type MessageType string

const (
	MessageSay   MessageType = "say"
	MessageWarn  MessageType = "warn"
	MessageError MessageType = "error"
)

// File references another plugin or file, e.g. a requirement
type File struct {
	Name      string `json:"name" yaml:"name"`
	Display   string `json:"display,omitempty" yaml:"display,omitempty"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Equal compares filenames case-insensitively
func (f File) Equal(other File) bool {
	return strings.EqualFold(f.Name, other.Name) &&
		f.Display == other.Display &&
		f.Condition == other.Condition
}

// Message is a note shown to the user alongside the plugin
type Message struct {
	Type      MessageType `json:"type" yaml:"type"`
	Content   string      `json:"content" yaml:"content"`
	Condition string      `json:"condition,omitempty" yaml:"condition,omitempty"`
}

func (m Message) Equal(other Message) bool {
	return m == other
}

// Tag is a Bash Tag suggestion. Removal marks a suggestion to remove the tag.
type Tag struct {
	Name      string `json:"name" yaml:"name"`
	Removal   bool   `json:"removal,omitempty" yaml:"removal,omitempty"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

func (t Tag) Equal(other Tag) bool {
	return t == other
}

// CleaningData records the state of a plugin with a given CRC
type CleaningData struct {
	CRC              uint32 `json:"crc" yaml:"crc"`
	Util             string `json:"util" yaml:"util"`
	ITMs             int    `json:"itm,omitempty" yaml:"itm,omitempty"`
	DeletedRefs      int    `json:"udr,omitempty" yaml:"udr,omitempty"`
	DeletedNavmeshes int    `json:"nav,omitempty" yaml:"nav,omitempty"`
	Detail           string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func (c CleaningData) Equal(other CleaningData) bool {
	return c == other
}

// Location is a place the plugin can be downloaded from
type Location struct {
	URL  string `json:"link" yaml:"link"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

func (l Location) Equal(other Location) bool {
	return l == other
}

type element[T any] interface {
	Equal(T) bool
}

func contains[T element[T]](list []T, v T) bool {
	return slices.ContainsFunc(list, v.Equal)
}

// difference returns the entries of a missing from b, in a's order
func difference[T element[T]](a, b []T) []T {
	var out []T
	for _, v := range a {
		if !contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

// union returns a followed by the entries of b that a lacks
func union[T element[T]](a, b []T) []T {
	out := clone(a)
	for _, v := range b {
		if !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func sameElements[T element[T]](a, b []T) bool {
	return slices.EqualFunc(a, b, func(x, y T) bool { return x.Equal(y) })
}

func clone[T any](list []T) []T {
	if len(list) == 0 {
		return nil
	}
	return slices.Clone(list)
}
