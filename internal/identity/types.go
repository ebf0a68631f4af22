package identity

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Class distinguishes the two kinds of artifacts tracked by the cache.
type Class string

const (
	ClassModel Class = "model"
	ClassLora  Class = "lora"
)

// Entry is the cached identity of one artifact.
type Entry struct {
	Fingerprint string
	Filename    string
}

// MarshalJSON encodes an entry as the two-element array used by
// local_hashmem.json.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Fingerprint, e.Filename})
}

// UnmarshalJSON decodes a [fingerprint, filename] pair.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("cache entry must have 2 elements, got %d", len(pair))
	}
	e.Fingerprint, e.Filename = pair[0], pair[1]
	return nil
}

// Cache maps search keys to artifact identities.
type Cache struct {
	entries map[string]Entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Get returns the entry stored under key.
func (c *Cache) Get(key string) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Put stores e under key, replacing any previous entry.
func (c *Cache) Put(key string, e Entry) {
	c.entries[key] = e
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	delete(c.entries, key)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Keys returns all search keys in ascending order.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
