// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"maps"
	"sort"
	"strings"
	"sync"
)

// MemStore is the in-memory fallback for one resource, used when the engine
// is constructed without a database. Rows are kept sorted by key so listing
// and paging stay deterministic. All access serializes through the lock.
type MemStore struct {
	mu    sync.RWMutex
	items []memItem
}

type memItem struct {
	key string
	row Row
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore { return &MemStore{} }

// memKey joins composite key values into the sort key.
func memKey(keyVals []string) string { return strings.Join(keyVals, "/") }

// indexOf finds the item index for key, or where it would be inserted.
func (store *MemStore) indexOf(key string) (int, bool) {
	i := sort.Search(len(store.items), func(k int) bool {
		return store.items[k].key >= key
	})
	if i >= len(store.items) {
		return i, false
	}
	return i, store.items[i].key == key
}

// Get returns a copy of the row stored under the key values.
func (store *MemStore) Get(keyVals ...string) (Row, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	i, found := store.indexOf(memKey(keyVals))
	if !found {
		return nil, false
	}
	return maps.Clone(store.items[i].row), true
}

// Put inserts or replaces the row stored under the key values.
func (store *MemStore) Put(row Row, keyVals ...string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	key := memKey(keyVals)
	i, found := store.indexOf(key)
	if found {
		store.items[i].row = maps.Clone(row)
		return
	}
	store.items = append(store.items, memItem{})
	copy(store.items[i+1:], store.items[i:])
	store.items[i] = memItem{key: key, row: maps.Clone(row)}
}

// Merge applies the given column values onto an existing row. It reports
// whether the row existed.
func (store *MemStore) Merge(vals Row, keyVals ...string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	i, found := store.indexOf(memKey(keyVals))
	if !found {
		return false
	}
	for col, val := range vals {
		store.items[i].row[col] = val
	}
	return true
}

// Delete removes the row. It reports whether the row existed.
func (store *MemStore) Delete(keyVals ...string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	i, found := store.indexOf(memKey(keyVals))
	if !found {
		return false
	}
	copy(store.items[i:], store.items[i+1:])
	store.items = store.items[:len(store.items)-1]
	return true
}

// List snapshots every row in key order.
func (store *MemStore) List() []Row {
	store.mu.RLock()
	defer store.mu.RUnlock()

	out := make([]Row, 0, len(store.items))
	for _, item := range store.items {
		out = append(out, maps.Clone(item.row))
	}
	return out
}

// LinkStore is the in-memory fallback for link tables: a map from the A-side
// id to the ordered set of linked B-side ids, guarded by a single lock.
type LinkStore struct {
	mu    sync.Mutex
	links map[string][]string
}

// NewLinkStore creates an empty link store.
func NewLinkStore() *LinkStore {
	return &LinkStore{links: make(map[string][]string)}
}

// Link adds each B id to A's set, skipping ones already present.
func (store *LinkStore) Link(a string, bs []string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing := store.links[a]
	for _, b := range bs {
		if !contains(existing, b) {
			existing = append(existing, b)
		}
	}
	store.links[a] = existing
}

// Replace swaps A's set for exactly the given ids (deduplicated, in order).
func (store *LinkStore) Replace(a string, bs []string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var next []string
	for _, b := range bs {
		if !contains(next, b) {
			next = append(next, b)
		}
	}
	store.links[a] = next
}

// Unlink removes every link from A.
func (store *LinkStore) Unlink(a string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.links, a)
}

// Linked returns a copy of A's linked ids.
func (store *LinkStore) Linked(a string) []string {
	store.mu.Lock()
	defer store.mu.Unlock()

	out := make([]string, len(store.links[a]))
	copy(out, store.links[a])
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
