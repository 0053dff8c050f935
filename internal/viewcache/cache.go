// Package viewcache keeps serialized list and detail views keyed by entity
// kind and filter set, and implements optimistic mutation with rollback.
package viewcache

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Key identifies one cached view. Detail views use the entity id as Scope,
// list views use a hash of the canonical filter.
type Key struct {
	Kind  string
	List  bool
	Scope string
}

func (k Key) String() string {
	if k.List {
		return k.Kind + ":list:" + k.Scope
	}
	return k.Kind + ":" + k.Scope
}

// DetailKey keys a single entity.
func DetailKey(kind, id string) Key {
	return Key{Kind: kind, Scope: id}
}

// ListKey keys a filtered list. The filter is canonicalized through its JSON
// encoding, so two equal filters always map to the same key.
func ListKey(kind string, filter any) Key {
	raw, err := json.Marshal(filter)
	if err != nil {
		raw = []byte(fmt.Sprintf("%#v", filter))
	}
	return Key{Kind: kind, List: true, Scope: fmt.Sprintf("%x", md5.Sum(raw))}
}

type entry struct {
	data     []byte
	stale    bool
	storedAt time.Time
}

// Cache is safe for concurrent use. Concurrent mutations of the same key are
// not serialized; the last write wins.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*entry
	ttl     time.Duration
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get decodes a fresh entry into dst. Stale or expired entries report false so
// the caller refetches.
func (c *Cache) Get(key Key, dst any) bool {
	c.mu.RLock()
	e, ok := c.entries[key]
	var data []byte
	if ok && !e.stale && (c.ttl <= 0 || c.now().Sub(e.storedAt) <= c.ttl) {
		data = e.data
	}
	c.mu.RUnlock()

	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// Set stores the JSON encoding of v as a fresh entry.
func (c *Cache) Set(key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode view %s: %w", key, err)
	}
	c.mu.Lock()
	c.entries[key] = &entry{data: raw, storedAt: c.now()}
	c.mu.Unlock()
	return nil
}

// Raw returns a copy of the stored bytes regardless of freshness.
func (c *Cache) Raw(key Key) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return bytes.Clone(e.data), true
}

// Keys returns every cached key of the given kind.
func (c *Cache) Keys(kind string) []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var keys []Key
	for k := range c.entries {
		if k.Kind == kind {
			keys = append(keys, k)
		}
	}
	return keys
}

// Snapshot is a verbatim copy of a set of entries; absent keys are recorded
// as absent so Restore deletes anything written after the snapshot.
type Snapshot map[Key]*entry

// Snapshot copies the current state of the given keys.
func (c *Cache) Snapshot(keys ...Key) Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := make(Snapshot, len(keys))
	for _, k := range keys {
		if e, ok := c.entries[k]; ok {
			cp := *e
			cp.data = bytes.Clone(e.data)
			snap[k] = &cp
		} else {
			snap[k] = nil
		}
	}
	return snap
}

// Restore puts every snapshotted entry back exactly as it was.
func (c *Cache) Restore(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range snap {
		if e == nil {
			delete(c.entries, k)
			continue
		}
		cp := *e
		cp.data = bytes.Clone(e.data)
		c.entries[k] = &cp
	}
}

// Invalidate marks the given keys stale.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		if e, ok := c.entries[k]; ok {
			e.stale = true
		}
	}
}

// CleanExpired drops stale and expired entries and returns how many it removed.
func (c *Cache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if e.stale || (c.ttl > 0 && now.Sub(e.storedAt) > c.ttl) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) put(key Key, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.data = data
}
