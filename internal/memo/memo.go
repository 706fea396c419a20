// Package memo provides a sharded, concurrent in-memory cache for codec
// results with bounded size and eviction. Entries carry no TTL: a memoised
// result stays valid until the owner swaps its table, at which point the
// owner calls Flush.
package memo

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const numShards = 64

// EvictionPolicy determines which entry is removed when MaxEntries is reached.
type EvictionPolicy int

const (
	LRU  EvictionPolicy = iota // Least Recently Used
	LFU                        // Least Frequently Used
	FIFO                       // First In, First Out
)

// Options configures a memo Store.
type Options struct {
	MaxEntries int
	Eviction   EvictionPolicy
	OnEvict    func(key, value string)
}

// entry holds a memoised result and eviction metadata.
type entry struct {
	key   string
	value string
	freq  int
	elem  *list.Element
}

// shard is one partition of the cache.
type shard struct {
	mu         sync.RWMutex
	items      map[string]*entry
	evictList  *list.List
	maxEntries int
	policy     EvictionPolicy
	onEvict    func(key, value string)
}

// Store is the sharded memoisation cache.
type Store struct {
	shards [numShards]*shard
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a new memo Store. MaxEntries is the per-shard bound scaled
// down from the total; zero means unbounded.
func New(opts Options) *Store {
	perShard := opts.MaxEntries / numShards
	if opts.MaxEntries > 0 && perShard == 0 {
		perShard = 1
	}
	s := &Store{}
	for i := 0; i < numShards; i++ {
		s.shards[i] = &shard{
			items:      make(map[string]*entry),
			evictList:  list.New(),
			maxEntries: perShard,
			policy:     opts.Eviction,
			onEvict:    opts.OnEvict,
		}
	}
	return s
}

func (s *Store) getShard(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[h.Sum32()%numShards]
}

// Set stores value under key.
func (s *Store) Set(key, value string) {
	sh := s.getShard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if e, ok := sh.items[key]; ok {
		e.value = value
		e.freq++
		if sh.policy != LFU {
			sh.evictList.MoveToFront(e.elem)
		}
		return
	}

	if sh.maxEntries > 0 && len(sh.items) >= sh.maxEntries {
		sh.evict()
	}

	e := &entry{key: key, value: value, freq: 1}
	switch sh.policy {
	case LRU, FIFO:
		e.elem = sh.evictList.PushFront(e)
	case LFU:
		e.elem = sh.evictList.PushBack(e)
	}
	sh.items[key] = e
}

// Get retrieves a memoised value by key.
func (s *Store) Get(key string) (string, bool) {
	sh := s.getShard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.items[key]
	if !ok {
		s.misses.Add(1)
		return "", false
	}
	e.freq++
	if sh.policy == LRU {
		sh.evictList.MoveToFront(e.elem)
	}
	s.hits.Add(1)
	return e.value, true
}

// Delete removes a key from the cache.
func (s *Store) Delete(key string) {
	sh := s.getShard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if e, ok := sh.items[key]; ok {
		sh.removeEntry(e)
	}
}

// Flush removes all entries from all shards.
func (s *Store) Flush() {
	for i := 0; i < numShards; i++ {
		sh := s.shards[i]
		sh.mu.Lock()
		sh.items = make(map[string]*entry)
		sh.evictList.Init()
		sh.mu.Unlock()
	}
}

// Stats holds hit/miss/entry counts.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int64
}

// Stats returns current statistics.
func (s *Store) Stats() Stats {
	var total int64
	for i := 0; i < numShards; i++ {
		sh := s.shards[i]
		sh.mu.RLock()
		total += int64(len(sh.items))
		sh.mu.RUnlock()
	}
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load(), Entries: total}
}

// evict removes one entry according to the shard's policy.
// Caller must hold sh.mu.
func (sh *shard) evict() {
	switch sh.policy {
	case LRU, FIFO:
		if back := sh.evictList.Back(); back != nil {
			sh.removeEntry(back.Value.(*entry))
		}
	case LFU:
		var victim *entry
		for _, e := range sh.items {
			if victim == nil || e.freq < victim.freq {
				victim = e
			}
		}
		if victim != nil {
			sh.removeEntry(victim)
		}
	}
}

// removeEntry unlinks e from the shard. Caller must hold sh.mu.
func (sh *shard) removeEntry(e *entry) {
	delete(sh.items, e.key)
	if e.elem != nil {
		sh.evictList.Remove(e.elem)
	}
	if sh.onEvict != nil {
		sh.onEvict(e.key, e.value)
	}
}
