package service

import (
	"sync"
	"sync/atomic"
)

// SyncContext carries the per-run state that UI collaborators observe and
// control: a cancellation flag and progress callbacks. All methods are safe
// on a nil receiver, so callers that do not care may pass nil.
type SyncContext struct {
	cancelled atomic.Bool

	// PermissionRefresh marks the run as a pure permission refresh: clean
	// rows whose content is current get is_permission=1.
	PermissionRefresh bool

	// OnProgress receives a percentage in [0, 100].
	OnProgress func(percent int)
	// OnTotal receives the number of records a push is about to attempt.
	OnTotal func(total int)
	// OnCount receives the number of records attempted so far.
	OnCount func(done int)
	// OnNotice receives short user-facing messages.
	OnNotice func(msg string)
}

func NewSyncContext() *SyncContext {
	return &SyncContext{}
}

// Cancel asks the running pull to stop at its next check point.
func (sc *SyncContext) Cancel() {
	if sc == nil {
		return
	}
	sc.cancelled.Store(true)
}

func (sc *SyncContext) Cancelled() bool {
	return sc != nil && sc.cancelled.Load()
}

func (sc *SyncContext) permissionRefresh() bool {
	return sc != nil && sc.PermissionRefresh
}

func (sc *SyncContext) progress(percent int) {
	if sc != nil && sc.OnProgress != nil {
		sc.OnProgress(percent)
	}
}

func (sc *SyncContext) total(n int) {
	if sc != nil && sc.OnTotal != nil {
		sc.OnTotal(n)
	}
}

func (sc *SyncContext) count(n int) {
	if sc != nil && sc.OnCount != nil {
		sc.OnCount(n)
	}
}

func (sc *SyncContext) notice(msg string) {
	if sc != nil && sc.OnNotice != nil {
		sc.OnNotice(msg)
	}
}

// SyncSession tracks the sync contexts currently running so that a logout
// (or an explicit cancel request) can stop all of them at once.
type SyncSession struct {
	mu     sync.Mutex
	active map[*SyncContext]struct{}
}

func NewSyncSession() *SyncSession {
	return &SyncSession{active: make(map[*SyncContext]struct{})}
}

// Begin registers sc (creating one when nil) and returns it.
func (s *SyncSession) Begin(sc *SyncContext) *SyncContext {
	if sc == nil {
		sc = NewSyncContext()
	}

	s.mu.Lock()
	s.active[sc] = struct{}{}
	s.mu.Unlock()

	return sc
}

// End unregisters sc.
func (s *SyncSession) End(sc *SyncContext) {
	s.mu.Lock()
	delete(s.active, sc)
	s.mu.Unlock()
}

// CancelAll cancels every running context and returns how many there were.
func (s *SyncSession) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sc := range s.active {
		sc.Cancel()
	}
	return len(s.active)
}

// Running reports the number of registered contexts.
func (s *SyncSession) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
