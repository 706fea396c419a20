package vsnsl

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/AndrewDonelson/vsnsl/internal/charset"
	"github.com/AndrewDonelson/vsnsl/internal/clock"
	"github.com/AndrewDonelson/vsnsl/internal/format"
	"github.com/AndrewDonelson/vsnsl/internal/memo"
	"github.com/AndrewDonelson/vsnsl/internal/metrics"
	"github.com/AndrewDonelson/vsnsl/internal/pgstore"
	"github.com/AndrewDonelson/vsnsl/internal/redstore"
)

// Re-export types so callers only import this package.
type Table = charset.Table
type CharsetFile = format.File
type Format = format.Format
type MetricsRecorder = metrics.MetricsRecorder

// NewTable builds a charset table from a character→code mapping. The code
// width is derived from the largest code; the mapping must be a bijection
// over non-negative codes.
func NewTable(mapping map[rune]int) (*Table, error) {
	t, err := charset.New(mapping)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	return t, nil
}

// DefaultTable returns the bundled charset table (letters, digits, space,
// and common punctuation from code 100, width 3). It maps the decimal
// digits, so it supports multi-lock sequences of any length.
func DefaultTable() *Table { return charset.Default() }

// ────────────────────────────────────────────────────────────────────────────
// Config
// ────────────────────────────────────────────────────────────────────────────

// EvictionPolicy determines which memo entry is evicted when MaxEntries is
// reached.
type EvictionPolicy int

const (
	EvictLRU EvictionPolicy = iota
	EvictLFU
	EvictFIFO
)

// MemoPoolConfig configures the in-memory result memoisation cache.
type MemoPoolConfig struct {
	Enabled    bool
	MaxEntries int
	Eviction   EvictionPolicy
}

// RedisPoolConfig configures the Redis charset store client.
type RedisPoolConfig struct {
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresPoolConfig configures the PostgreSQL connection pool.
type PostgresPoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Config contains all Codec configuration.
type Config struct {
	// DefaultLock is the lock used by Encode and Decode. Zero is a valid
	// lock: it leaves codes unshifted.
	DefaultLock int

	// Table, when set, is used directly and CharsetDir is ignored at
	// construction time.
	Table *Table

	// CharsetDir holds charset files (json/yaml/msgpack); all parseable
	// files are merged by priority into the initial table, and the
	// directory doubles as a named-charset source for UseCharset.
	CharsetDir string

	// DisableDefaultTable leaves the codec without a table when neither
	// Table nor CharsetDir is given. Every codec call then fails with
	// ErrTableNotInitialized until SetTable or UseCharset supplies one.
	DisableDefaultTable bool

	// Charset store DSNs
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string

	// Pool sizes
	RedisPool    RedisPoolConfig
	PostgresPool PostgresPoolConfig

	// MemoPool enables memoisation of encode/decode results.
	MemoPool MemoPoolConfig

	// Optional overrideable components. Format selects the serialization
	// used for charset payloads written to the Redis and Postgres stores;
	// it defaults to JSON.
	Format  Format
	Clock   clock.Clock
	Metrics MetricsRecorder
	Logger  Logger
}

func (c *Config) defaults() {
	if c.Format == nil {
		c.Format = format.Default
	}
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
	if c.Metrics == nil {
		c.Metrics = metrics.Noop{}
	}
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
	if c.MemoPool.Enabled && c.MemoPool.MaxEntries == 0 {
		c.MemoPool.MaxEntries = 100_000
	}
	if c.PostgresPool.MaxConns == 0 {
		c.PostgresPool.MaxConns = 10
	}
	if c.PostgresPool.MinConns == 0 {
		c.PostgresPool.MinConns = 1
	}
	if c.PostgresPool.MaxConnLifetime == 0 {
		c.PostgresPool.MaxConnLifetime = 30 * time.Minute
	}
	if c.PostgresPool.MaxConnIdleTime == 0 {
		c.PostgresPool.MaxConnIdleTime = 10 * time.Minute
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Stats
// ────────────────────────────────────────────────────────────────────────────

type codecStats struct {
	Encodes atomic.Int64
	Decodes atomic.Int64
	Batches atomic.Int64
	Errors  atomic.Int64
}

// Stats is the snapshot returned by Codec.Stats().
type Stats struct {
	Encodes     int64
	Decodes     int64
	Batches     int64
	Errors      int64
	MemoHits    int64
	MemoMisses  int64
	MemoEntries int64
}

// ────────────────────────────────────────────────────────────────────────────
// Codec
// ────────────────────────────────────────────────────────────────────────────

// Codec is the main entry-point for the VSNSL library. All encode/decode
// operations are pure and safe for concurrent use; the active table is held
// behind an atomic pointer so a hot swap never exposes a half-applied
// mapping to an in-flight call.
type Codec struct {
	cfg      Config
	table    atomic.Pointer[charset.Table]
	registry *charsetRegistry
	memo     *memo.Store
	rclient  *redis.Client
	rstore   *redstore.Store
	pgpool   *pgxpool.Pool
	pstore   *pgstore.Store
	stats    codecStats
	metrics  MetricsRecorder
	logger   Logger
	clock    clock.Clock
	closed   atomic.Bool
}

// NewCodec creates and initialises a Codec from the provided Config.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.MemoPool.MaxEntries < 0 {
		return nil, fmt.Errorf("%w: memo pool MaxEntries is negative", ErrInvalidConfig)
	}
	if cfg.MemoPool.Eviction < EvictLRU || cfg.MemoPool.Eviction > EvictFIFO {
		return nil, fmt.Errorf("%w: unknown eviction policy %d", ErrInvalidConfig, cfg.MemoPool.Eviction)
	}
	cfg.defaults()

	c := &Codec{
		cfg:      cfg,
		registry: newCharsetRegistry(),
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		clock:    cfg.Clock,
	}

	// Initial table
	switch {
	case cfg.Table != nil:
		c.table.Store(cfg.Table)
	case cfg.CharsetDir != "":
		t, err := LoadCharsetDir(cfg.CharsetDir)
		if err != nil {
			return nil, fmt.Errorf("vsnsl: load charset dir: %w", err)
		}
		c.table.Store(t)
	case !cfg.DisableDefaultTable:
		c.table.Store(charset.Default())
	}

	// Memo pool
	if cfg.MemoPool.Enabled {
		c.memo = memo.New(memo.Options{
			MaxEntries: cfg.MemoPool.MaxEntries,
			Eviction:   memo.EvictionPolicy(cfg.MemoPool.Eviction),
		})
	}

	// Redis charset store
	if cfg.RedisAddr != "" {
		c.rclient = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPool.PoolSize,
			DialTimeout:  cfg.RedisPool.DialTimeout,
			ReadTimeout:  cfg.RedisPool.ReadTimeout,
			WriteTimeout: cfg.RedisPool.WriteTimeout,
		})
		c.rstore = redstore.New(redstore.Options{Client: c.rclient, Format: cfg.Format})
	}

	// Postgres charset store
	if cfg.PostgresDSN != "" {
		pgCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("vsnsl: postgres config: %w", err)
		}
		pgCfg.MaxConns = cfg.PostgresPool.MaxConns
		pgCfg.MinConns = cfg.PostgresPool.MinConns
		pgCfg.MaxConnLifetime = cfg.PostgresPool.MaxConnLifetime
		pgCfg.MaxConnIdleTime = cfg.PostgresPool.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(context.Background(), pgCfg)
		if err != nil {
			return nil, fmt.Errorf("vsnsl: postgres pool: %w", err)
		}
		c.pgpool = pool
		c.pstore = pgstore.New(pool, cfg.Format)
	}

	if t := c.table.Load(); t != nil {
		c.logger.Info("codec initialised",
			"charset_size", t.Size(), "code_width", t.Width(), "default_lock", cfg.DefaultLock)
	} else {
		c.logger.Warn("codec initialised without a table; calls fail until one is set")
	}
	return c, nil
}

// EnsureStorage creates the Postgres charset table if a store is configured
// (idempotent). Call once at deploy time before SaveCharset.
func (c *Codec) EnsureStorage(ctx context.Context) error {
	if c.pstore == nil {
		return nil
	}
	return c.pstore.EnsureSchema(ctx)
}

// SetTable atomically swaps the active charset table. In-flight operations
// keep the snapshot they started with.
func (c *Codec) SetTable(t *Table) error {
	if t == nil {
		return ErrInvalidTable
	}
	c.swapTable(t)
	return nil
}

// swapTable installs t and drops memoised results, which were computed
// against the previous table.
func (c *Codec) swapTable(t *charset.Table) {
	c.table.Store(t)
	if c.memo != nil {
		c.memo.Flush()
	}
}

// Table returns the active charset table, or nil if none is set.
func (c *Codec) Table() *Table { return c.table.Load() }

// DefaultLock returns the lock used by Encode and Decode.
func (c *Codec) DefaultLock() int { return c.cfg.DefaultLock }

// Stats returns a snapshot of operation counters.
func (c *Codec) Stats() Stats {
	s := Stats{
		Encodes: c.stats.Encodes.Load(),
		Decodes: c.stats.Decodes.Load(),
		Batches: c.stats.Batches.Load(),
		Errors:  c.stats.Errors.Load(),
	}
	if c.memo != nil {
		ms := c.memo.Stats()
		s.MemoHits = ms.Hits
		s.MemoMisses = ms.Misses
		s.MemoEntries = ms.Entries
	}
	return s
}

// Close releases store connections. The codec itself needs no teardown.
func (c *Codec) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	var firstErr error
	if c.rclient != nil {
		if err := c.rclient.Close(); err != nil {
			firstErr = err
		}
	}
	if c.pgpool != nil {
		c.pgpool.Close()
	}
	return firstErr
}

// activeTable returns the current table snapshot for one operation.
func (c *Codec) activeTable() (*charset.Table, error) {
	t := c.table.Load()
	if t == nil {
		return nil, ErrTableNotInitialized
	}
	return t, nil
}
