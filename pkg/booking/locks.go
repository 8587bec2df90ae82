package booking

import "sync"

// LockRegistry serializes work per aggregate identifier. Claims against the
// same TrainSchedule queue up behind one mutex while unrelated schedules
// proceed in parallel.
type LockRegistry struct {
	mutex sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLockRegistry() *LockRegistry {
	return &LockRegistry{
		locks: map[string]*sync.Mutex{},
	}
}

// Lock acquires the aggregate's mutex and returns its unlock function.
func (r *LockRegistry) Lock(aggregateID string) func() {
	r.mutex.Lock()
	lock, exists := r.locks[aggregateID]
	if !exists {
		lock = &sync.Mutex{}
		r.locks[aggregateID] = lock
	}
	r.mutex.Unlock()

	lock.Lock()

	return lock.Unlock
}
