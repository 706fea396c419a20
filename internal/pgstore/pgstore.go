// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// pgstore.go — PostgreSQL charset store: idempotent schema bootstrap,
// upsert, load-by-name, list, and delete for named charset files. Payloads
// are stored as bytes alongside the format name that produced them.

// Package pgstore provides the PostgreSQL charset store adapter.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AndrewDonelson/vsnsl/internal/format"
)

// ErrMiss is returned by Load when the named charset does not exist.
var ErrMiss = errors.New("pgstore: miss")

// tableName holds every persisted charset, one row per name.
const tableName = "vsnsl_charsets"

const createTableSQL = `
CREATE TABLE IF NOT EXISTS ` + tableName + ` (
	name      TEXT PRIMARY KEY,
	author    TEXT NOT NULL DEFAULT '',
	ts        BIGINT NOT NULL DEFAULT 0,
	priority  INT NOT NULL DEFAULT 0,
	fmt       TEXT NOT NULL,
	payload   BYTEA NOT NULL
)`

// Store is the PostgreSQL charset store adapter.
type Store struct {
	pool   *pgxpool.Pool
	format format.Format
}

// New creates a new Store from an existing pool. fm controls how charset
// payloads are serialized; nil selects MessagePack.
func New(pool *pgxpool.Pool, fm format.Format) *Store {
	if fm == nil {
		fm = format.MsgPack{}
	}
	return &Store{pool: pool, format: fm}
}

// Ping verifies the pool is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// EnsureSchema creates the charset table if it does not exist (idempotent).
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("pgstore ensure schema: %w", err)
	}
	return nil
}

// Save upserts a charset file under the given name.
func (s *Store) Save(ctx context.Context, name string, f *format.File) error {
	if err := f.Validate(); err != nil {
		return err
	}
	payload, err := s.format.Marshal(f)
	if err != nil {
		return fmt.Errorf("pgstore marshal %s: %w", name, err)
	}
	sql := `INSERT INTO ` + tableName + ` (name, author, ts, priority, fmt, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			author = EXCLUDED.author,
			ts = EXCLUDED.ts,
			priority = EXCLUDED.priority,
			fmt = EXCLUDED.fmt,
			payload = EXCLUDED.payload`
	_, err = s.pool.Exec(ctx, sql, name, f.Author, f.Timestamp, f.Priority, s.format.Name(), payload)
	if err != nil {
		return fmt.Errorf("pgstore save %s: %w", name, err)
	}
	return nil
}

// Load retrieves the charset file stored under name.
// Returns ErrMiss when the name is unknown.
func (s *Store) Load(ctx context.Context, name string) (*format.File, error) {
	var (
		fmtName string
		payload []byte
	)
	sql := `SELECT fmt, payload FROM ` + tableName + ` WHERE name = $1`
	err := s.pool.QueryRow(ctx, sql, name).Scan(&fmtName, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("pgstore load %s: %w", name, err)
	}
	fm, ok := format.ByName(fmtName)
	if !ok {
		return nil, fmt.Errorf("pgstore load %s: unknown stored format %q", name, fmtName)
	}
	f, err := fm.Unmarshal(payload)
	if err != nil {
		return nil, fmt.Errorf("pgstore unmarshal %s: %w", name, err)
	}
	return f, nil
}

// List returns the names of all stored charsets, highest priority first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM `+tableName+` ORDER BY priority DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("pgstore list: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("pgstore list scan: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore list rows: %w", err)
	}
	return names, nil
}

// Delete removes the charset stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM `+tableName+` WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("pgstore delete %s: %w", name, err)
	}
	return nil
}
