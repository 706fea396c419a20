// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// resolver.go — named charset resolution with source fallthrough
// (registry → charset dir → Redis → Postgres) and back-fill of the faster
// sources on a hit, plus the write-through SaveCharset path.

package vsnsl

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/AndrewDonelson/vsnsl/internal/charset"
	"github.com/AndrewDonelson/vsnsl/internal/format"
	"github.com/AndrewDonelson/vsnsl/internal/pgstore"
	"github.com/AndrewDonelson/vsnsl/internal/redstore"
)

// UseCharset resolves the named charset and atomically swaps it in as the
// active table. In-flight operations keep the snapshot they started with.
func (c *Codec) UseCharset(ctx context.Context, name string) error {
	t, err := c.resolveCharset(ctx, name)
	if err != nil {
		return err
	}
	c.swapTable(t)
	c.logger.Info("charset swapped", "name", name, "size", t.Size(), "width", t.Width())
	return nil
}

// resolveCharset tries each configured source in order and back-fills the
// registry (and Redis, for a Postgres hit) so the next lookup is cheap.
func (c *Codec) resolveCharset(ctx context.Context, name string) (*charset.Table, error) {
	// Registry hit
	if rc, ok := c.registry.get(name); ok {
		return rc.table, nil
	}

	// Charset directory
	if c.cfg.CharsetDir != "" {
		f, err := findCharsetFile(c.cfg.CharsetDir, name)
		if err != nil {
			return nil, err
		}
		if f != nil {
			return c.admitCharset(name, f)
		}
	}

	// Redis
	if c.rstore != nil {
		f, err := c.rstore.Load(ctx, name)
		if err == nil {
			return c.admitCharset(name, f)
		}
		if !errors.Is(err, redstore.ErrMiss) {
			return nil, err
		}
	}

	// Postgres; back-fill Redis on a hit
	if c.pstore != nil {
		f, err := c.pstore.Load(ctx, name)
		if err == nil {
			if c.rstore != nil {
				if rerr := c.rstore.Save(ctx, name, f); rerr != nil {
					c.logger.Warn("redis back-fill failed", "name", name, "error", rerr)
				}
			}
			return c.admitCharset(name, f)
		}
		if !errors.Is(err, pgstore.ErrMiss) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrCharsetNotFound, name)
}

// admitCharset compiles a resolved file and back-fills the registry.
func (c *Codec) admitCharset(name string, f *format.File) (*charset.Table, error) {
	rc, err := c.registry.register(name, f, true)
	if err != nil {
		return nil, wrapInvalidTable(err)
	}
	return rc.table, nil
}

// SaveCharset validates a charset file and writes it through every
// configured store: Postgres first, then Redis, then the in-process
// registry. A zero Timestamp is stamped with the codec clock.
func (c *Codec) SaveCharset(ctx context.Context, name string, f *CharsetFile) error {
	if _, err := charset.FromFiles(f); err != nil {
		return wrapInvalidTable(err)
	}
	if f.Timestamp == 0 {
		f.Timestamp = c.clock.Now().Unix()
	}

	if c.pstore != nil {
		if err := c.pstore.Save(ctx, name, f); err != nil {
			return err
		}
	}
	if c.rstore != nil {
		if err := c.rstore.Save(ctx, name, f); err != nil {
			return err
		}
	}
	if _, err := c.registry.register(name, f, true); err != nil {
		return wrapInvalidTable(err)
	}
	c.logger.Info("charset saved", "name", name, "chars", len(f.Mapping))
	return nil
}

// ListCharsets returns the union of charset names across the registry and
// every configured store, sorted and de-duplicated.
func (c *Codec) ListCharsets(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, name := range c.registry.names() {
		seen[name] = struct{}{}
	}
	if c.rstore != nil {
		names, err := c.rstore.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			seen[name] = struct{}{}
		}
	}
	if c.pstore != nil {
		names, err := c.pstore.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
