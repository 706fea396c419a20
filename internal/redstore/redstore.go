// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// redstore.go — Redis-backed charset store: save/load/list/delete named
// charset files, values serialized through a format.Format, and the ErrMiss
// sentinel that drives clean source fallthrough in the resolver.

// Package redstore provides the Redis charset store adapter.
package redstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/AndrewDonelson/vsnsl/internal/format"
)

// ErrMiss is returned by Load when the named charset does not exist in
// Redis. Callers use errors.Is(err, redstore.ErrMiss) to distinguish a miss
// from a genuine Redis error.
var ErrMiss = errors.New("redstore: miss")

// defaultPrefix namespaces charset keys so the store can share a Redis
// database with application data.
const defaultPrefix = "vsnsl:charset"

// Store is the Redis charset store adapter.
type Store struct {
	client    redis.UniversalClient
	format    format.Format
	keyPrefix string
}

// Options configures a new Store.
type Options struct {
	Client    redis.UniversalClient
	Format    format.Format
	KeyPrefix string
}

// New creates a new Store.
func New(opts Options) *Store {
	if opts.Format == nil {
		opts.Format = format.MsgPack{}
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = defaultPrefix
	}
	return &Store{client: opts.Client, format: opts.Format, keyPrefix: opts.KeyPrefix}
}

// key returns the Redis key for a charset name.
// Plain concatenation; this sits on the resolver's fallthrough path.
func (s *Store) key(name string) string {
	return s.keyPrefix + ":" + name
}

// Ping verifies the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Save stores a charset file under the given name. Charsets do not expire.
func (s *Store) Save(ctx context.Context, name string, f *format.File) error {
	if err := f.Validate(); err != nil {
		return err
	}
	b, err := s.format.Marshal(f)
	if err != nil {
		return fmt.Errorf("redstore marshal %s: %w", name, err)
	}
	k := s.key(name)
	if err := s.client.Set(ctx, k, b, 0).Err(); err != nil {
		return fmt.Errorf("redstore save %s: %w", k, err)
	}
	return nil
}

// Load retrieves the charset file stored under name.
// Returns ErrMiss when the name is unknown.
func (s *Store) Load(ctx context.Context, name string) (*format.File, error) {
	k := s.key(name)
	b, err := s.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redstore load %s: %w", k, err)
	}
	f, err := s.format.Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("redstore unmarshal %s: %w", k, err)
	}
	return f, nil
}

// List returns the names of all stored charsets.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var (
		names  []string
		cursor uint64
		prefix = s.keyPrefix + ":"
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redstore list: %w", err)
		}
		for _, k := range keys {
			names = append(names, strings.TrimPrefix(k, prefix))
		}
		if next == 0 {
			return names, nil
		}
		cursor = next
	}
}

// Delete removes the charset stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	k := s.key(name)
	if err := s.client.Del(ctx, k).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redstore delete %s: %w", k, err)
	}
	return nil
}
