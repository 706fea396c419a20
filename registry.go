package vsnsl

import (
	"errors"
	"sort"
	"sync"

	"github.com/AndrewDonelson/vsnsl/internal/charset"
	"github.com/AndrewDonelson/vsnsl/internal/format"
)

// registeredCharset pairs a charset file with the table compiled from it.
type registeredCharset struct {
	file  *format.File
	table *charset.Table
}

// charsetRegistry holds all charsets known to a codec instance, keyed by
// name. It is the first source the resolver consults and the cache the
// slower sources back-fill.
type charsetRegistry struct {
	mu       sync.RWMutex
	charsets map[string]*registeredCharset
}

func newCharsetRegistry() *charsetRegistry {
	return &charsetRegistry{charsets: make(map[string]*registeredCharset)}
}

// register compiles and stores a charset file under name. Registration
// fails when the name is taken, unless overwrite is set (back-fills and
// saves overwrite; explicit registration does not).
func (r *charsetRegistry) register(name string, f *format.File, overwrite bool) (*registeredCharset, error) {
	t, err := charset.FromFiles(f)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.charsets[name]; exists && !overwrite {
		return nil, ErrCharsetDuplicate
	}
	rc := &registeredCharset{file: f, table: t}
	r.charsets[name] = rc
	return rc, nil
}

func (r *charsetRegistry) get(name string) (*registeredCharset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rc, ok := r.charsets[name]
	return rc, ok
}

func (r *charsetRegistry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.charsets))
	for name := range r.charsets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RegisterCharset compiles a charset file and stores it in the codec's
// in-process registry under name, without touching any external store.
// Registering a name twice fails with ErrCharsetDuplicate.
func (c *Codec) RegisterCharset(name string, f *CharsetFile) error {
	if _, err := c.registry.register(name, f, false); err != nil {
		if errors.Is(err, ErrCharsetDuplicate) {
			return err
		}
		return wrapInvalidTable(err)
	}
	c.logger.Info("charset registered", "name", name)
	return nil
}

// Charsets returns the names of all charsets in the in-process registry.
func (c *Codec) Charsets() []string { return c.registry.names() }
