package viewcache

import "fmt"

// Mutation is one optimistic write.
type Mutation struct {
	// Keys are the views that may contain the affected entity.
	Keys []Key
	// Apply rewrites one cached view speculatively. Returning ok=false leaves
	// the view untouched (e.g. the entity is not in that list).
	Apply func(key Key, raw []byte) (updated []byte, ok bool, err error)
	// Commit performs the authoritative write.
	Commit func() error
}

// Mutate snapshots every key, applies the speculative change, runs Commit and
// then either marks the keys stale (success) or restores the snapshot
// verbatim (failure). The Commit error is returned unchanged.
func (c *Cache) Mutate(m Mutation) error {
	snap := c.Snapshot(m.Keys...)

	for _, k := range m.Keys {
		prev := snap[k]
		if prev == nil || m.Apply == nil {
			continue
		}
		updated, ok, err := m.Apply(k, prev.data)
		if err != nil {
			c.Restore(snap)
			return fmt.Errorf("apply optimistic update to %s: %w", k, err)
		}
		if ok {
			c.put(k, updated)
		}
	}

	if err := m.Commit(); err != nil {
		c.Restore(snap)
		return err
	}

	c.Invalidate(m.Keys...)
	return nil
}
