package loop

import (
	"time"

	"github.com/tomz197/kittens/internal/game"
)

// frameScheduler is the host's animation-frame queue: it holds the single
// outstanding request until the loop fires it on the next tick.
type frameScheduler struct {
	pending func(now time.Time)
}

var _ game.Scheduler = (*frameScheduler)(nil)

// RequestFrame implements game.Scheduler.
func (s *frameScheduler) RequestFrame(frame func(now time.Time)) {
	s.pending = frame
}

// fire runs the pending frame. The frame may request the next one.
func (s *frameScheduler) fire(now time.Time) bool {
	frame := s.pending
	if frame == nil {
		return false
	}
	s.pending = nil
	frame(now)
	return true
}

// reset drops any pending request.
func (s *frameScheduler) reset() {
	s.pending = nil
}
