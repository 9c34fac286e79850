package availability

import "sync"

// keyedLocks serializes writes per key. The conflict check and the store
// insert are two separate calls, so without this two concurrent writes for
// the same provider and kind could both pass the check and persist an
// overlap.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use, and returns the
// unlock function.
func (k *keyedLocks) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
