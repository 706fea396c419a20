// Package charset provides the immutable bidirectional character↔code table
// used by the codec. Tables are validated eagerly at construction and never
// mutated afterwards, so they are safe to share across goroutines.
package charset

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/AndrewDonelson/vsnsl/internal/format"
)

// ErrEmptyMapping is returned when a table is built from no characters.
var ErrEmptyMapping = errors.New("charset: empty mapping")

// Table is an immutable bijective mapping between characters and
// fixed-width numeric codes.
type Table struct {
	width     int
	limit     int // largest value representable in width digits
	maxCode   int
	toCode    map[rune]int
	toChar    map[int]rune
	hasDigits bool
}

// New builds a Table from a character→code mapping. The code width is
// derived from the largest code. Construction fails if the mapping is
// empty, contains a negative code, or assigns one code to two characters.
func New(mapping map[rune]int) (*Table, error) {
	if len(mapping) == 0 {
		return nil, ErrEmptyMapping
	}
	toCode := make(map[rune]int, len(mapping))
	toChar := make(map[int]rune, len(mapping))
	maxCode := 0
	for r, code := range mapping {
		if code < 0 {
			return nil, fmt.Errorf("charset: negative code %d for %q", code, r)
		}
		if prev, dup := toChar[code]; dup {
			return nil, fmt.Errorf("charset: code %d assigned to both %q and %q", code, prev, r)
		}
		toCode[r] = code
		toChar[code] = r
		if code > maxCode {
			maxCode = code
		}
	}
	t := &Table{
		width:   digitWidth(maxCode),
		maxCode: maxCode,
		toCode:  toCode,
		toChar:  toChar,
	}
	t.limit = pow10(t.width) - 1
	t.hasDigits = true
	for r := '0'; r <= '9'; r++ {
		if _, ok := toCode[r]; !ok {
			t.hasDigits = false
			break
		}
	}
	return t, nil
}

// FromFiles builds a Table from one or more charset files, merging by
// Priority (higher wins on conflicting characters, later codes from the
// same character are ignored). Each file's Offset is added to its codes
// before merging.
func FromFiles(files ...*format.File) (*Table, error) {
	if len(files) == 0 {
		return nil, ErrEmptyMapping
	}
	merged := make([]*format.File, len(files))
	copy(merged, files)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Priority > merged[j].Priority
	})

	mapping := make(map[rune]int)
	for _, f := range merged {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		for key, code := range f.Mapping {
			r, size := utf8.DecodeRuneInString(key)
			if r == utf8.RuneError || size != len(key) {
				return nil, fmt.Errorf("charset: mapping key %q is not a single character", key)
			}
			if _, exists := mapping[r]; exists {
				continue // a higher-priority file already mapped it
			}
			mapping[r] = code + f.Offset
		}
	}
	return New(mapping)
}

// Width returns the fixed number of decimal digits each code occupies.
func (t *Table) Width() int { return t.width }

// Limit returns the largest value representable in Width digits.
func (t *Table) Limit() int { return t.limit }

// MaxCode returns the largest code in the table.
func (t *Table) MaxCode() int { return t.maxCode }

// Size returns the number of mapped characters.
func (t *Table) Size() int { return len(t.toCode) }

// HasDigits reports whether the table maps every decimal digit 0–9.
// Lock sequences longer than one require this.
func (t *Table) HasDigits() bool { return t.hasDigits }

// Code returns the code for r.
func (t *Table) Code(r rune) (int, bool) {
	code, ok := t.toCode[r]
	return code, ok
}

// Char returns the character for code.
func (t *Table) Char(code int) (rune, bool) {
	r, ok := t.toChar[code]
	return r, ok
}

// Runes returns every mapped character. Order is unspecified.
func (t *Table) Runes() []rune {
	out := make([]rune, 0, len(t.toCode))
	for r := range t.toCode {
		out = append(out, r)
	}
	return out
}

func digitWidth(n int) int {
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	return w
}

func pow10(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
