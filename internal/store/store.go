// Package store implements the in-memory backend: a thread-safe store of
// simple keys and hash fields, sharded for low contention on disjoint keys.
package store

import (
	"hash/fnv"
	"sync"

	"github.com/lukluk/rendang/internal/resp"
)

const shardCount = 32

type shard struct {
	mu     sync.RWMutex
	kv     map[string]resp.Frame
	hashes map[string]map[string]resp.Frame
}

// Store is a sharded concurrent map keyed by string; each shard guards its
// own slice of the `kv` namespace and its own slice of the `hmap` namespace
// with one RWMutex, so disjoint-key operations never contend. It is a cheap
// handle to share across connection goroutines — callers hold a single
// *Store, never a copy of its shards.
type Store struct {
	shards []*shard
}

// New returns an empty Store.
func New() *Store {
	shards := make([]*shard, shardCount)
	for i := range shards {
		shards[i] = &shard{
			kv:     make(map[string]resp.Frame),
			hashes: make(map[string]map[string]resp.Frame),
		}
	}
	return &Store{shards: shards}
}

func (s *Store) shardFor(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

// Get returns a deep clone of the stored value for key, or false if absent.
func (s *Store) Get(key string) (resp.Frame, bool) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	f, ok := sh.kv[key]
	if !ok {
		return resp.Frame{}, false
	}
	return f.Clone(), true
}

// Set inserts or replaces the value stored at key.
func (s *Store) Set(key string, value resp.Frame) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.kv[key] = value.Clone()
}

// HGet returns a deep clone of the field stored under key, or false if the
// key or the field is absent.
func (s *Store) HGet(key, field string) (resp.Frame, bool) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	fields, ok := sh.hashes[key]
	if !ok {
		return resp.Frame{}, false
	}
	f, ok := fields[field]
	if !ok {
		return resp.Frame{}, false
	}
	return f.Clone(), true
}

// HSet creates the hash at key on first use and stores field within it.
func (s *Store) HSet(key, field string, value resp.Frame) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	fields, ok := sh.hashes[key]
	if !ok {
		fields = make(map[string]resp.Frame)
		sh.hashes[key] = fields
	}
	fields[field] = value.Clone()
}

// HashEntry is one field/value pair returned by HGetAll.
type HashEntry struct {
	Field string
	Value resp.Frame
}

// HGetAll returns every field in the hash at key, in unspecified order
// (callers that need determinism sort the result themselves). A nil slice
// means the key holds no hash.
func (s *Store) HGetAll(key string) []HashEntry {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	fields, ok := sh.hashes[key]
	if !ok {
		return nil
	}
	out := make([]HashEntry, 0, len(fields))
	for field, value := range fields {
		out = append(out, HashEntry{Field: field, Value: value.Clone()})
	}
	return out
}
