// Package loop hosts game sessions on a terminal: it paces frames, drains
// input once per frame and moves between the title, playing and game-over
// screens.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/kittens/internal/game"
	"github.com/tomz197/kittens/internal/input"
)

// ErrIdle is returned by Run when nobody pressed a key for IdleTimeout
// outside a running session.
var ErrIdle = errors.New("idle timeout")

// Run shows the title screen and hosts sessions until the player quits,
// the idle timeout expires or ctx is cancelled.
func Run(ctx context.Context, fe Frontend, opts Options) error {
	return NewState(fe, opts).Run(ctx)
}

// Run is the Input → Frame → Present cycle at a fixed tick rate.
func (s *State) Run(ctx context.Context) error {
	s.LastActivity = s.opts.Clock()
	s.showTitle()
	if err := s.present(); err != nil {
		return err
	}

	ticker := time.NewTicker(s.opts.FrameTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.opts.Logger.Info("shutting down", "phase", s.Phase, "sessions", s.Sessions)
			s.showShutdown()
			return s.present()
		case <-ticker.C:
		}

		done, err := s.Tick(s.opts.Clock())
		if err != nil || done {
			return err
		}
	}
}

// Tick drains input, applies it and fires the pending frame. done reports
// that the player quit or was disconnected.
func (s *State) Tick(now time.Time) (done bool, err error) {
	in := s.frontend.Poll()
	if in.Quit {
		s.opts.Logger.Info("player quit", "phase", s.Phase, "sessions", s.Sessions)
		return true, nil
	}
	if active(in) {
		s.LastActivity = now
		s.warned = false
	}

	switch s.Phase {
	case PhaseTitle, PhaseOver:
		if in.Start {
			s.startSession(now)
		} else if err := s.checkIdle(now); err != nil {
			return true, err
		}
	case PhasePlaying:
		for _, c := range in.Commands {
			s.Engine.Apply(c)
		}
		s.sched.fire(now)
		if s.Engine.State() == game.GameOver {
			s.finishSession(now)
		}
	}

	return false, s.present()
}

func active(in input.Input) bool {
	return in.Start || len(in.Commands) > 0 || len(in.Pressed) > 0
}

// startSession replaces any previous engine with a fresh session and runs
// its first frame.
func (s *State) startSession(now time.Time) {
	s.sched.reset()
	s.Sessions++
	s.Engine = game.NewEngine(
		s.opts.Session,
		s.frontend.Surface(),
		&s.sched,
		game.WithSounds(s.opts.Sounds),
		game.WithRand(s.opts.NewRand()),
	)
	s.Phase = PhasePlaying
	s.opts.Logger.Info("session started", "session", s.Sessions)
	s.Engine.Start(now)
}

func (s *State) finishSession(now time.Time) {
	e := s.Engine
	s.Phase = PhaseOver
	s.LastActivity = now
	s.opts.Logger.Info("game over",
		"session", s.Sessions,
		"score", e.Score(),
		"bonus", e.Bonus(),
		"total", e.Total(),
		"level", e.Level(),
	)
	s.showRestartPrompt()
}

// checkIdle warns once after IdleWarning and disconnects at IdleTimeout.
func (s *State) checkIdle(now time.Time) error {
	limit := s.opts.IdleTimeout
	if limit <= 0 {
		return nil
	}
	idle := now.Sub(s.LastActivity)
	if idle >= limit {
		s.opts.Logger.Info("disconnecting idle player", "idle", idle.Round(time.Second))
		return ErrIdle
	}
	if !s.warned && idle >= s.opts.IdleWarning {
		s.warned = true
		s.showIdleWarning()
	}
	return nil
}

func (s *State) present() error {
	if err := s.frontend.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
