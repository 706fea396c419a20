package memo_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewDonelson/vsnsl/internal/memo"
)

func TestMemo_SetGet(t *testing.T) {
	s := memo.New(memo.Options{MaxEntries: 1000})
	s.Set("e:1:abc", "101102103")

	v, ok := s.Get("e:1:abc")
	require.True(t, ok)
	assert.Equal(t, "101102103", v)
}

func TestMemo_Miss(t *testing.T) {
	s := memo.New(memo.Options{MaxEntries: 1000})
	_, ok := s.Get("missing")
	assert.False(t, ok)

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(0), stats.Hits)
}

func TestMemo_Overwrite(t *testing.T) {
	s := memo.New(memo.Options{MaxEntries: 1000})
	s.Set("k", "v1")
	s.Set("k", "v2")

	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, int64(1), s.Stats().Entries)
}

func TestMemo_Delete(t *testing.T) {
	s := memo.New(memo.Options{MaxEntries: 1000})
	s.Set("k", "v")
	s.Delete("k")
	_, ok := s.Get("k")
	assert.False(t, ok)
}

func TestMemo_Flush(t *testing.T) {
	s := memo.New(memo.Options{MaxEntries: 1000})
	for i := 0; i < 50; i++ {
		s.Set(fmt.Sprintf("k%d", i), "v")
	}
	s.Flush()
	assert.Equal(t, int64(0), s.Stats().Entries)
}

func TestMemo_BoundRespected(t *testing.T) {
	for _, policy := range []memo.EvictionPolicy{memo.LRU, memo.LFU, memo.FIFO} {
		s := memo.New(memo.Options{MaxEntries: 64, Eviction: policy})
		for i := 0; i < 500; i++ {
			s.Set(fmt.Sprintf("k%d", i), "v")
		}
		assert.LessOrEqual(t, s.Stats().Entries, int64(64), "policy %d", policy)
	}
}

func TestMemo_OnEvict(t *testing.T) {
	evicted := 0
	s := memo.New(memo.Options{
		MaxEntries: 64,
		OnEvict:    func(key, value string) { evicted++ },
	})
	for i := 0; i < 200; i++ {
		s.Set(fmt.Sprintf("k%d", i), "v")
	}
	assert.Greater(t, evicted, 0)
}

func TestMemo_Unbounded(t *testing.T) {
	s := memo.New(memo.Options{})
	for i := 0; i < 500; i++ {
		s.Set(fmt.Sprintf("k%d", i), "v")
	}
	assert.Equal(t, int64(500), s.Stats().Entries)
}
