// Package format provides the charset file formats understood by the loader
// and the charset stores.
package format

import (
	"errors"
	"strings"
)

// ErrNoMapping is returned when a charset file carries no character mapping.
var ErrNoMapping = errors.New("format: charset file has no mapping")

// File is the on-disk / on-wire shape of a charset definition.
// Mapping keys are single characters; values are the raw codes before the
// optional Offset is applied.
type File struct {
	Author    string         `json:"author,omitempty" yaml:"author,omitempty" msgpack:"author,omitempty"`
	Timestamp int64          `json:"timestamp,omitempty" yaml:"timestamp,omitempty" msgpack:"timestamp,omitempty"`
	Priority  int            `json:"priority,omitempty" yaml:"priority,omitempty" msgpack:"priority,omitempty"`
	Offset    int            `json:"offset,omitempty" yaml:"offset,omitempty" msgpack:"offset,omitempty"`
	Mapping   map[string]int `json:"mapping" yaml:"mapping" msgpack:"mapping"`
}

// Validate checks that the file can produce a usable table.
func (f *File) Validate() error {
	if len(f.Mapping) == 0 {
		return ErrNoMapping
	}
	return nil
}

// Format encodes and decodes charset Files.
type Format interface {
	// Marshal serializes f into bytes.
	Marshal(f *File) ([]byte, error)
	// Unmarshal deserializes data into a File.
	Unmarshal(data []byte) (*File, error)
	// Name returns the format identifier used for diagnostics and storage.
	Name() string
	// Extensions returns the file extensions (without dot) this format owns.
	Extensions() []string
}

// all lists every supported format, in extension-lookup order.
var all = []Format{JSON{}, YAML{}, MsgPack{}}

// All returns every supported format.
func All() []Format { return all }

// ByName returns the format with the given Name.
func ByName(name string) (Format, bool) {
	for _, f := range all {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// ByExtension returns the format owning the given file extension.
// The extension may be passed with or without a leading dot.
func ByExtension(ext string) (Format, bool) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	for _, f := range all {
		for _, e := range f.Extensions() {
			if e == ext {
				return f, true
			}
		}
	}
	return nil, false
}
