package vsnsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewDonelson/vsnsl"
)

// ── Construction ─────────────────────────────────────────────────────────────

func TestNewCodec_Defaults(t *testing.T) {
	c, err := vsnsl.NewCodec(vsnsl.Config{})
	require.NoError(t, err)
	defer c.Close()

	tbl := c.Table()
	require.NotNil(t, tbl)
	assert.Equal(t, 3, tbl.Width())
	assert.True(t, tbl.HasDigits())
	assert.Equal(t, 0, c.DefaultLock())
}

func TestNewCodec_NoTable(t *testing.T) {
	c, err := vsnsl.NewCodec(vsnsl.Config{DisableDefaultTable: true})
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Table())

	_, err = c.EncodeData("abc", 1)
	assert.ErrorIs(t, err, vsnsl.ErrTableNotInitialized)

	_, err = c.DecodeData("101102103", 1)
	assert.ErrorIs(t, err, vsnsl.ErrTableNotInitialized)

	_, err = c.EncodeBatch([]string{"abc"}, 1)
	assert.ErrorIs(t, err, vsnsl.ErrTableNotInitialized)

	_, err = c.MultiEncode([]int{1, 2}, "abc")
	assert.ErrorIs(t, err, vsnsl.ErrTableNotInitialized)

	_, err = c.ConvertData("101102103", 1, 2)
	assert.ErrorIs(t, err, vsnsl.ErrTableNotInitialized)

	// Supplying a table brings the codec to life.
	require.NoError(t, c.SetTable(vsnsl.DefaultTable()))
	enc, err := c.EncodeData("abc", 1)
	require.NoError(t, err)
	assert.Equal(t, "101102103", enc)
}

func TestNewCodec_InvalidConfig(t *testing.T) {
	_, err := vsnsl.NewCodec(vsnsl.Config{
		MemoPool: vsnsl.MemoPoolConfig{Enabled: true, MaxEntries: -1},
	})
	assert.ErrorIs(t, err, vsnsl.ErrInvalidConfig)

	_, err = vsnsl.NewCodec(vsnsl.Config{
		MemoPool: vsnsl.MemoPoolConfig{Eviction: vsnsl.EvictionPolicy(42)},
	})
	assert.ErrorIs(t, err, vsnsl.ErrInvalidConfig)
}

func TestNewTable_Invalid(t *testing.T) {
	_, err := vsnsl.NewTable(map[rune]int{'a': 100, 'b': 100})
	assert.ErrorIs(t, err, vsnsl.ErrInvalidTable)

	_, err = vsnsl.NewTable(nil)
	assert.ErrorIs(t, err, vsnsl.ErrInvalidTable)
}

// ── Table swap ───────────────────────────────────────────────────────────────

func TestSetTable_Swap(t *testing.T) {
	c := newCodec(t)

	enc, err := c.EncodeData("a", 0)
	require.NoError(t, err)
	assert.Equal(t, "100", enc)

	tbl, err := vsnsl.NewTable(map[rune]int{'a': 500, 'b': 501})
	require.NoError(t, err)
	require.NoError(t, c.SetTable(tbl))

	enc, err = c.EncodeData("a", 0)
	require.NoError(t, err)
	assert.Equal(t, "500", enc)
}

func TestSetTable_Nil(t *testing.T) {
	c := newCodec(t)
	assert.ErrorIs(t, c.SetTable(nil), vsnsl.ErrInvalidTable)
}

// ── Stats ────────────────────────────────────────────────────────────────────

func TestCodec_Stats(t *testing.T) {
	c := newCodec(t)

	_, err := c.EncodeData("abc", 1)
	require.NoError(t, err)
	_, err = c.EncodeData("def", 1)
	require.NoError(t, err)
	_, err = c.DecodeData("101102103", 1)
	require.NoError(t, err)
	_, err = c.EncodeData("☃", 1)
	require.Error(t, err)

	s := c.Stats()
	assert.Equal(t, int64(2), s.Encodes)
	assert.Equal(t, int64(1), s.Decodes)
	assert.Equal(t, int64(1), s.Errors)
}

// ── Memo pool ────────────────────────────────────────────────────────────────

func TestCodec_Memo(t *testing.T) {
	c, err := vsnsl.NewCodec(vsnsl.Config{
		MemoPool: vsnsl.MemoPoolConfig{Enabled: true, MaxEntries: 1024},
	})
	require.NoError(t, err)
	defer c.Close()

	first, err := c.EncodeData("hello", 3)
	require.NoError(t, err)
	second, err := c.EncodeData("hello", 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	s := c.Stats()
	assert.Equal(t, int64(1), s.MemoHits)
	assert.GreaterOrEqual(t, s.MemoEntries, int64(1))

	// Different lock, different key.
	third, err := c.EncodeData("hello", 4)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestCodec_MemoFlushedOnSwap(t *testing.T) {
	c, err := vsnsl.NewCodec(vsnsl.Config{
		MemoPool: vsnsl.MemoPoolConfig{Enabled: true, MaxEntries: 1024},
	})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.EncodeData("a", 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, c.Stats().MemoEntries, int64(1))

	tbl, err := vsnsl.NewTable(map[rune]int{'a': 900})
	require.NoError(t, err)
	require.NoError(t, c.SetTable(tbl))
	assert.Equal(t, int64(0), c.Stats().MemoEntries)

	// The memoised result from the old table must not leak through.
	enc, err := c.EncodeData("a", 0)
	require.NoError(t, err)
	assert.Equal(t, "900", enc)
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func TestCodec_Close_Idempotent(t *testing.T) {
	c, err := vsnsl.NewCodec(vsnsl.Config{})
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0000.00.00-0000-dev", vsnsl.Version())
}
