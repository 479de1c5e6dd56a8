package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/safak4545x/swifttube/infrastructure/logger"
)

// Namespace separates independent cache subtrees sharing the same envelope
// and expiry mechanics.
type Namespace string

const (
	// NamespaceResults holds structured query results (search pages,
	// playlist listings, enrichment counts, settings).
	NamespaceResults Namespace = "results"
	// NamespaceAssets holds binary payloads such as thumbnails and avatars.
	NamespaceAssets Namespace = "assets"
)

var namespaces = []Namespace{NamespaceResults, NamespaceAssets}

// envelope is the serialized on-disk shape. An entry is valid iff
// now < Expiry; expired entries are deleted lazily on read.
type envelope struct {
	Value  json.RawMessage `json:"value"`
	Expiry time.Time       `json:"expiry"`
}

type memoryEntry struct {
	raw    json.RawMessage
	expiry time.Time
}

// Store is the two-tier TTL cache: a bounded in-memory map in front of a
// durable file-per-key directory tree. All operations are safe for
// concurrent callers; disk writes go through temp-file-then-rename so a
// crash mid-write never leaves a corrupt entry visible.
type Store struct {
	mu     sync.Mutex
	root   string
	bound  int
	memory map[string]memoryEntry
	now    func() time.Time
}

// NewStore creates the namespace directories under root and returns a ready
// store. memoryEntries bounds the fast tier; zero or negative means 512.
func NewStore(root string, memoryEntries int) (*Store, error) {
	if memoryEntries <= 0 {
		memoryEntries = 512
	}
	s := &Store{
		root:   root,
		bound:  memoryEntries,
		memory: make(map[string]memoryEntry),
		now:    time.Now,
	}
	for _, ns := range namespaces {
		if err := os.MkdirAll(filepath.Join(root, string(ns)), 0o755); err != nil {
			return nil, fmt.Errorf("create cache namespace %s: %w", ns, err)
		}
	}
	return s, nil
}

// Get returns the raw cached payload for key, or nil when absent, expired,
// or unreadable. Memory is checked first; a valid disk hit repopulates the
// memory tier.
func (s *Store) Get(ns Namespace, key string) json.RawMessage {
	memKey := string(ns) + "/" + hashKey(key)

	s.mu.Lock()
	if entry, ok := s.memory[memKey]; ok {
		if s.now().Before(entry.expiry) {
			s.mu.Unlock()
			return entry.raw
		}
		delete(s.memory, memKey)
	}
	s.mu.Unlock()

	path := s.path(ns, key)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Corrupt entry: treat as a miss and drop it so the next write
		// starts clean.
		logger.GetLogger().WithField("key", key).Warn("Dropping corrupt cache entry")
		_ = os.Remove(path)
		return nil
	}
	if !s.now().Before(env.Expiry) {
		_ = os.Remove(path)
		return nil
	}

	s.mu.Lock()
	s.remember(memKey, env.Value, env.Expiry)
	s.mu.Unlock()
	return env.Value
}

// Set stores the raw payload under key with the given TTL, writing the
// memory tier immediately and the disk tier atomically.
func (s *Store) Set(ns Namespace, key string, raw json.RawMessage, ttl time.Duration) error {
	expiry := s.now().Add(ttl)
	memKey := string(ns) + "/" + hashKey(key)

	s.mu.Lock()
	s.remember(memKey, raw, expiry)
	s.mu.Unlock()

	data, err := json.Marshal(envelope{Value: raw, Expiry: expiry})
	if err != nil {
		return fmt.Errorf("encode cache envelope: %w", err)
	}
	return s.writeAtomic(ns, key, data)
}

// Delete removes an entry from both tiers.
func (s *Store) Delete(ns Namespace, key string) {
	memKey := string(ns) + "/" + hashKey(key)
	s.mu.Lock()
	delete(s.memory, memKey)
	s.mu.Unlock()
	_ = os.Remove(s.path(ns, key))
}

// Clear empties the memory tier and recreates every namespace directory.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.memory = make(map[string]memoryEntry)
	s.mu.Unlock()

	for _, ns := range namespaces {
		dir := filepath.Join(s.root, string(ns))
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clear cache namespace %s: %w", ns, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("recreate cache namespace %s: %w", ns, err)
		}
	}
	return nil
}

// remember inserts into the bounded memory tier. Caller holds s.mu.
func (s *Store) remember(memKey string, raw json.RawMessage, expiry time.Time) {
	if len(s.memory) >= s.bound {
		for k := range s.memory {
			delete(s.memory, k)
			break
		}
	}
	s.memory[memKey] = memoryEntry{raw: raw, expiry: expiry}
}

func (s *Store) path(ns Namespace, key string) string {
	return filepath.Join(s.root, string(ns), hashKey(key))
}

func (s *Store) writeAtomic(ns Namespace, key string, data []byte) error {
	dir := filepath.Join(s.root, string(ns))
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create cache temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write cache temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close cache temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(ns, key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("publish cache entry: %w", err)
	}
	return nil
}

// Get fetches and decodes a typed value from the store. A decode failure is
// treated like corruption: the entry is dropped and nil is returned.
func Get[T any](s *Store, ns Namespace, key string) *T {
	raw := s.Get(ns, key)
	if raw == nil {
		return nil
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		logger.GetLogger().WithField("key", key).WithField("error", err).Warn("Cache entry failed to decode, dropping")
		s.Delete(ns, key)
		return nil
	}
	return &value
}

// Set encodes and stores a typed value with the given TTL.
func Set[T any](s *Store, ns Namespace, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	return s.Set(ns, key, raw, ttl)
}
