// Package kmutex provides mutual exclusion keyed by string, used to
// serialize read-then-decide sequences per entity (one reaction toggle per
// (target, user), one chat turn per session).
package kmutex

import (
	"sync"
)

// KeyedMutex hands out one mutex per key. Mutexes are retained for the
// lifetime of the process; the key space here (sessions, (target,user)
// pairs) is small enough that no eviction is needed.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
}

// Unlock releases the mutex for key. Unlocking a key that was never locked
// panics, same as sync.Mutex.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	m := k.locks[key]
	k.mu.Unlock()
	m.Unlock()
}
