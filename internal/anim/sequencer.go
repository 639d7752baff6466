package anim

import "time"

// Sequencer keeps at most one pending phase transition per key (window id).
//
// It is not safe for concurrent use; callers guard it with the same lock
// that protects the state the callbacks mutate. Because a timer callback
// may already be waiting on that lock when the transition is cancelled,
// callbacks receive a token and must Claim it before acting.
type Sequencer struct {
	clock   Clock
	next    uint64
	pending map[string]pendingStep
}

type pendingStep struct {
	token uint64
	timer Timer
}

// NewSequencer creates a sequencer on the given clock.
func NewSequencer(clock Clock) *Sequencer {
	return &Sequencer{
		clock:   clock,
		pending: make(map[string]pendingStep),
	}
}

// Schedule arranges for fire to run after d, replacing any pending
// transition for key. It returns the token passed to fire.
func (s *Sequencer) Schedule(key string, d time.Duration, fire func(token uint64)) uint64 {
	s.Cancel(key)
	s.next++
	token := s.next
	timer := s.clock.AfterFunc(d, func() { fire(token) })
	s.pending[key] = pendingStep{token: token, timer: timer}
	return token
}

// Claim consumes the pending transition for key if token is still current.
// A false result means the transition was cancelled or superseded.
func (s *Sequencer) Claim(key string, token uint64) bool {
	step, ok := s.pending[key]
	if !ok || step.token != token {
		return false
	}
	delete(s.pending, key)
	return true
}

// Cancel stops the pending transition for key. It reports whether one existed.
func (s *Sequencer) Cancel(key string) bool {
	step, ok := s.pending[key]
	if !ok {
		return false
	}
	step.timer.Stop()
	delete(s.pending, key)
	return true
}

// Pending reports whether key has a scheduled transition.
func (s *Sequencer) Pending(key string) bool {
	_, ok := s.pending[key]
	return ok
}

// CancelAll stops every pending transition.
func (s *Sequencer) CancelAll() {
	for key := range s.pending {
		s.Cancel(key)
	}
}
