// Package cache provides bounded ProgramCache implementations for compiled
// migration expressions.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize bounds the number of compiled programs kept by New(0).
const DefaultSize = 256

// LRU is a size bounded, concurrency safe program cache.
type LRU struct {
	entries *lru.Cache[string, any]
}

// New builds an LRU holding up to size programs. Non positive sizes fall back
// to DefaultSize.
func New(size int) (*LRU, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &LRU{entries: entries}, nil
}

// Get returns the program cached under key.
func (c *LRU) Get(key string) (any, bool) {
	return c.entries.Get(key)
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *LRU) Set(key string, value any) {
	c.entries.Add(key, value)
}

// Len reports the number of cached programs.
func (c *LRU) Len() int {
	return c.entries.Len()
}

// Purge drops every cached program.
func (c *LRU) Purge() {
	c.entries.Purge()
}
