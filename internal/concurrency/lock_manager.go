package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key. The in-memory progression store
// uses it to serialize compare-and-swap writes per user.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for key, creating it on first use. Locks are
// never evicted; the key space is bounded by the user set.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
