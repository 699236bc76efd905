// Package lockpkg provides keyed mutual exclusion.
package lockpkg

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyMutex serializes callers that share a key while callers with different
// keys proceed independently. Entries are dropped once nobody holds or waits
// for them, so the map only holds keys with in-flight work.
type KeyMutex[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*entry
}

// NewKeyMutex returns a ready to use KeyMutex.
func NewKeyMutex[K comparable]() *KeyMutex[K] {
	return &KeyMutex[K]{entries: make(map[K]*entry)}
}

// Lock blocks until the key is free and returns the function releasing it.
func (km *KeyMutex[K]) Lock(key K) (unlock func()) {
	km.mu.Lock()

	e, ok := km.entries[key]
	if !ok {
		e = &entry{}
		km.entries[key] = e
	}
	e.refs++

	km.mu.Unlock()

	e.mu.Lock()

	var once sync.Once

	return func() {
		once.Do(func() {
			e.mu.Unlock()

			km.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(km.entries, key)
			}
			km.mu.Unlock()
		})
	}
}

// Len returns the number of keys currently held or awaited.
func (km *KeyMutex[K]) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.entries)
}
