package loop

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/kittens/internal/config"
	"github.com/tomz197/kittens/internal/game"
	"github.com/tomz197/kittens/internal/input"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// fakeFrontend replays queued inputs and records draw requests.
type fakeFrontend struct {
	mu       sync.Mutex
	inputs   []input.Input
	texts    []string
	sprites  []game.Sprite
	presents int
	err      error
}

func (f *fakeFrontend) queue(in ...input.Input) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in...)
}

func (f *fakeFrontend) Poll() input.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.inputs) == 0 {
		return input.Input{}
	}
	in := f.inputs[0]
	f.inputs = f.inputs[1:]
	return in
}

func (f *fakeFrontend) Surface() game.Surface { return f }

func (f *fakeFrontend) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presents++
	return f.err
}

func (f *fakeFrontend) DrawSprite(s game.Sprite, _, _ float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sprites = append(f.sprites, s)
}

func (f *fakeFrontend) DrawText(text string, _, _ float64, _ game.TextStyle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
}

func (f *fakeFrontend) hasText(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.ContainsFunc(f.texts, func(s string) bool { return strings.HasPrefix(s, prefix) })
}

type recordingSounds struct{ played []game.Sound }

func (r *recordingSounds) Play(s game.Sound) { r.played = append(r.played, s) }

func testOptions() Options {
	return Options{
		Session: config.DefaultSession(),
		NewRand: func() game.Rand { return rand.New(rand.NewSource(1)) },
	}
}

func TestStartRunsFirstFrame(t *testing.T) {
	fe := &fakeFrontend{}
	s := NewState(fe, testOptions())
	fe.queue(input.Input{Start: true})

	if done, err := s.Tick(t0); done || err != nil {
		t.Fatalf("Tick = %v, %v", done, err)
	}
	if s.Phase != PhasePlaying || s.Engine == nil || s.Sessions != 1 {
		t.Fatalf("phase=%v engine=%v sessions=%d", s.Phase, s.Engine, s.Sessions)
	}
	if !fe.hasText("SCORE: 1") {
		t.Error("first frame should draw the HUD with the start score")
	}
	if fe.presents != 1 {
		t.Errorf("presents = %d, want 1", fe.presents)
	}
}

func TestCommandsApplyBeforeFrame(t *testing.T) {
	fe := &fakeFrontend{}
	s := NewState(fe, testOptions())
	fe.queue(input.Input{Start: true}, input.Input{Commands: []game.Command{game.MoveLeft, game.MoveLeft}})

	_, _ = s.Tick(t0)
	_, _ = s.Tick(t0.Add(16 * time.Millisecond))

	if x := s.Engine.Player().X; x != 0 {
		t.Errorf("player x = %v, want 0 after two moves left", x)
	}
	if got := s.Engine.Score(); got != 17 {
		t.Errorf("score = %d, want 17 after one 16 ms frame", got)
	}
}

func TestGameOverShowsPromptAndRestarts(t *testing.T) {
	fe := &fakeFrontend{}
	sounds := &recordingSounds{}
	opts := testOptions()
	opts.Sounds = sounds
	s := NewState(fe, opts)

	fe.queue(input.Input{Start: true})
	_, _ = s.Tick(t0)

	s.Engine.Player().NumLives = 0
	_, _ = s.Tick(t0.Add(16 * time.Millisecond))

	if s.Phase != PhaseOver {
		t.Fatalf("phase = %v, want over", s.Phase)
	}
	if !fe.hasText("Press ENTER to play again") || !fe.hasText("TOTAL:") {
		t.Error("game over screen should show the tally and restart prompt")
	}
	if !slices.Contains(sounds.played, game.SoundGameOver) {
		t.Error("game over sound not played")
	}

	first := s.Engine
	fe.queue(input.Input{Start: true})
	_, _ = s.Tick(t0.Add(time.Second))

	if s.Engine == first || s.Sessions != 2 || s.Phase != PhasePlaying {
		t.Fatalf("restart did not begin a fresh session")
	}
	if s.Engine.Score() != 1 || s.Engine.Player().NumLives != 5 {
		t.Errorf("fresh session score=%d lives=%d", s.Engine.Score(), s.Engine.Player().NumLives)
	}
}

func TestTitleIgnoresCommands(t *testing.T) {
	fe := &fakeFrontend{}
	s := NewState(fe, testOptions())
	fe.queue(input.Input{Commands: []game.Command{game.ShootUp}})

	_, _ = s.Tick(t0)

	if s.Phase != PhaseTitle || s.Engine != nil {
		t.Error("commands on the title screen should not start a session")
	}
}

func TestQuitEndsTick(t *testing.T) {
	fe := &fakeFrontend{}
	s := NewState(fe, testOptions())
	fe.queue(input.Input{Quit: true})

	done, err := s.Tick(t0)
	if !done || err != nil {
		t.Errorf("Tick = %v, %v, want done", done, err)
	}
}

func TestIdleWarnsThenDisconnects(t *testing.T) {
	fe := &fakeFrontend{}
	opts := testOptions()
	opts.IdleTimeout = 100 * time.Second
	s := NewState(fe, opts)
	s.LastActivity = t0

	if done, _ := s.Tick(t0.Add(70 * time.Second)); done || fe.hasText("Still there?") {
		t.Fatal("no warning expected before three quarters of the timeout")
	}
	if done, _ := s.Tick(t0.Add(80 * time.Second)); done || !fe.hasText("Still there?") {
		t.Fatal("warning expected at three quarters of the timeout")
	}

	done, err := s.Tick(t0.Add(100 * time.Second))
	if !done || !errors.Is(err, ErrIdle) {
		t.Errorf("Tick = %v, %v, want ErrIdle", done, err)
	}
}

func TestIdleWarningThreshold(t *testing.T) {
	fe := &fakeFrontend{}
	opts := testOptions()
	opts.IdleTimeout = InactivityDisconnectUser
	opts.IdleWarning = InactivityWarnUser
	s := NewState(fe, opts)
	s.LastActivity = t0

	_, _ = s.Tick(t0.Add(InactivityWarnUser - time.Second))
	if fe.hasText("Still there?") {
		t.Fatal("no warning expected before the warning threshold")
	}
	if done, _ := s.Tick(t0.Add(InactivityWarnUser)); done || !fe.hasText("Still there?") {
		t.Fatal("warning expected at the warning threshold")
	}
}

func TestActivityResetsIdleClock(t *testing.T) {
	fe := &fakeFrontend{}
	opts := testOptions()
	opts.IdleTimeout = 100 * time.Second
	s := NewState(fe, opts)
	s.LastActivity = t0

	fe.queue(input.Input{Pressed: []byte("x")})
	_, _ = s.Tick(t0.Add(90 * time.Second))

	if done, err := s.Tick(t0.Add(150 * time.Second)); done || err != nil {
		t.Errorf("Tick = %v, %v, want still connected", done, err)
	}
}

func TestPresentErrorIsWrapped(t *testing.T) {
	boom := errors.New("broken pipe")
	fe := &fakeFrontend{err: boom}
	s := NewState(fe, testOptions())

	_, err := s.Tick(t0)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	fe := &fakeFrontend{}
	fe.queue(input.Input{}, input.Input{Quit: true})
	opts := testOptions()
	opts.FrameTime = time.Millisecond

	if err := Run(context.Background(), fe, opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !fe.hasText("KITTENS vs LION LICKERS") {
		t.Error("title screen not drawn")
	}
}

func TestRunShowsShutdownOnCancel(t *testing.T) {
	fe := &fakeFrontend{}
	opts := testOptions()
	opts.FrameTime = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, fe, opts) }()
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if !fe.hasText("Server is shutting down") {
		t.Error("shutdown notice not drawn")
	}
}

func TestFrameSchedulerHoldsOneRequest(t *testing.T) {
	var sched frameScheduler
	calls := 0
	frame := func(time.Time) { calls++ }

	if sched.fire(t0) {
		t.Fatal("fire with nothing pending should report false")
	}
	sched.RequestFrame(frame)
	sched.RequestFrame(frame)
	sched.fire(t0)
	sched.fire(t0)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	sched.RequestFrame(frame)
	sched.reset()
	if sched.fire(t0) {
		t.Error("reset should drop the pending request")
	}
}
