package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/kittens/internal/config"
	"github.com/tomz197/kittens/internal/game"
	"github.com/tomz197/kittens/internal/input"
)

// Phase is what the terminal is currently showing.
type Phase int

const (
	PhaseTitle   Phase = iota // Title screen
	PhasePlaying              // A session is running
	PhaseOver                 // Final tally with restart prompt
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	default:
		return "title"
	}
}

// Frontend is a terminal the loop drives: a keyboard source and a
// rendering sink that shows what was drawn on Present.
type Frontend interface {
	Poll() input.Input
	Surface() game.Surface
	Present() error
}

// Options configures Run. Zero values pick defaults.
type Options struct {
	Session     config.Session
	Sounds      game.SoundSink
	Logger      *log.Logger
	FrameTime   time.Duration
	IdleTimeout time.Duration    // Disconnect after this long idle outside a session; 0 never
	IdleWarning time.Duration    // Warn after this long idle; 0 means three quarters of IdleTimeout
	Clock       func() time.Time // Frame timestamps
	NewRand     func() game.Rand // Random source per session
}

func (o *Options) setDefaults() {
	if o.Session == (config.Session{}) {
		o.Session = config.DefaultSession()
	}
	if o.Sounds == nil {
		o.Sounds = game.NopSounds{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.FrameTime <= 0 {
		o.FrameTime = targetFrameTime
	}
	if o.IdleWarning <= 0 || o.IdleWarning > o.IdleTimeout {
		o.IdleWarning = o.IdleTimeout * 3 / 4
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.NewRand == nil {
		o.NewRand = func() game.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
}

// State is one terminal's view: the current phase and, while playing or
// over, the session engine.
type State struct {
	opts     Options
	frontend Frontend
	sched    frameScheduler

	Phase        Phase
	Engine       *game.Engine
	Sessions     int       // Sessions started so far
	LastActivity time.Time // Last keypress
	warned       bool
}

// NewState creates a state showing the title screen.
func NewState(fe Frontend, opts Options) *State {
	opts.setDefaults()
	return &State{
		opts:     opts,
		frontend: fe,
		Phase:    PhaseTitle,
	}
}
