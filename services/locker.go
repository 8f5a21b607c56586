package services

import "sync"

// sessionLocker serializes read-modify-write cycles per session id within
// this process. The version check in the repository still guards against
// writers in other processes; this lock just keeps local operations from
// burning retries against each other.
type sessionLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocker() *sessionLocker {
	return &sessionLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *sessionLocker) Lock(sessionID string) func() {
	l.mu.Lock()
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
