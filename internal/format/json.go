// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// json.go — JSON charset file format wrapping encoding/json; the default
// format, matching the hand-edited charset.json files users author.

package format

import "encoding/json"

// JSON is the default, human-editable charset file format.
type JSON struct{}

// Marshal serializes f to JSON bytes.
func (JSON) Marshal(f *File) ([]byte, error) {
	return json.Marshal(f)
}

// Unmarshal deserializes JSON bytes into a File.
func (JSON) Unmarshal(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Name returns "json".
func (JSON) Name() string { return "json" }

// Extensions returns the extensions served by the JSON format.
func (JSON) Extensions() []string { return []string{"json"} }

// Default is the default charset file format.
var Default Format = JSON{}
