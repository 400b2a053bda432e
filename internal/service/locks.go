package service

import (
	"sort"
	"sync"
)

// keyedLocks serializes mutating operations per app name so overlapping
// mutate and refresh calls cannot lose updates. Locks for a batch are
// acquired in sorted order to rule out deadlock between two batches.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedLocks) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// acquire locks every key and returns the matching release func.
func (k *keyedLocks) acquire(keys ...string) func() {
	unique := make(map[string]bool, len(keys))
	for _, key := range keys {
		unique[key] = true
	}

	ordered := make([]string, 0, len(unique))
	for key := range unique {
		ordered = append(ordered, key)
	}
	sort.Strings(ordered)

	acquired := make([]*sync.Mutex, 0, len(ordered))
	for _, key := range ordered {
		m := k.get(key)
		m.Lock()
		acquired = append(acquired, m)
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}
