package governance

import "sync"

// proposalLocks serializes mutating operations per proposal ID so the
// read-check-write sequence of vote/finalize/execute runs as one unit.
// Operations on different proposals proceed concurrently.
type proposalLocks struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func newProposalLocks() *proposalLocks {
	return &proposalLocks{locks: make(map[uint64]*sync.Mutex)}
}

func (pl *proposalLocks) lock(id uint64) *sync.Mutex {
	pl.mu.Lock()
	m, ok := pl.locks[id]
	if !ok {
		m = &sync.Mutex{}
		pl.locks[id] = m
	}
	pl.mu.Unlock()
	m.Lock()
	return m
}
