// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// loader.go — filesystem charset loading: read a single charset file with
// its format chosen by extension, or merge every charset file in a
// directory into one table by priority. Malformed files are rejected
// eagerly rather than surfacing per character at encode time.

package vsnsl

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AndrewDonelson/vsnsl/internal/charset"
	"github.com/AndrewDonelson/vsnsl/internal/format"
)

// LoadCharsetFile reads and parses one charset file. The format is chosen
// by file extension (.json, .yaml/.yml, .msgpack/.mp).
func LoadCharsetFile(path string) (*CharsetFile, error) {
	fm, ok := format.ByExtension(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vsnsl: read charset %q: %w", path, err)
	}
	f, err := fm.Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("vsnsl: parse charset %q: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("vsnsl: charset %q: %w", path, err)
	}
	return f, nil
}

// LoadCharsetDir builds a table from every charset file in dir, merged by
// priority (higher wins on conflicting characters). Files whose extension
// no format owns are skipped; files that fail to parse abort the load.
func LoadCharsetDir(dir string) (*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("vsnsl: read charset dir %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := format.ByExtension(filepath.Ext(e.Name())); ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("vsnsl: no charset files in %q", dir)
	}

	files := make([]*format.File, 0, len(names))
	for _, name := range names {
		f, err := LoadCharsetFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	t, err := charset.FromFiles(files...)
	if err != nil {
		return nil, wrapInvalidTable(err)
	}
	return t, nil
}

// findCharsetFile looks for dir/<name>.<ext> across all known formats.
// A missing file is a plain miss (nil, nil); a file that exists but fails
// to parse is an error, not a fallthrough.
func findCharsetFile(dir, name string) (*format.File, error) {
	for _, fm := range format.All() {
		for _, ext := range fm.Extensions() {
			path := filepath.Join(dir, name+"."+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			return LoadCharsetFile(path)
		}
	}
	return nil, nil
}

func wrapInvalidTable(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidTable, err)
}
