package service

import "sync"

// accountLocks serializes detection runs per account. Two concurrent runs for
// the same account are not safe against each other (merge reads then writes),
// while runs for different accounts share no mutable state and may proceed in
// parallel.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for one account, creating it on first use, and
// returns the unlock function.
func (a *accountLocks) Lock(accountID string) func() {
	a.mu.Lock()
	m, ok := a.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		a.locks[accountID] = m
	}
	a.mu.Unlock()

	m.Lock()
	return m.Unlock
}
