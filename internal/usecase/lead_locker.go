package usecase

import "sync"

// LeadLocker serializa, dentro do processo, as operações que recalculam o total de um mesmo lead.
// Leads diferentes não se bloqueiam.
type LeadLocker struct {
	mu    sync.Mutex
	locks map[string]*leadLock
}

type leadLock struct {
	mu   sync.Mutex
	refs int
}

func NewLeadLocker() *LeadLocker {
	return &LeadLocker{locks: make(map[string]*leadLock)}
}

// Lock bloqueia codLead e devolve a função que libera o lock.
func (l *LeadLocker) Lock(codLead string) func() {
	l.mu.Lock()
	lock, ok := l.locks[codLead]
	if !ok {
		lock = &leadLock{}
		l.locks[codLead] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, codLead)
		}
		l.mu.Unlock()
	}
}

func (l *LeadLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
