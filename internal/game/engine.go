package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/kittens/internal/config"
)

// State is the session phase.
type State int

const (
	Running  State = iota // Frames are being scheduled
	GameOver              // Terminal: no more frames
)

func (s State) String() string {
	if s == GameOver {
		return "game-over"
	}
	return "running"
}

// Scheduler runs a frame callback at the host's next animation frame.
// At most one request is outstanding; the engine re-requests from inside
// the callback only after the frame has completed.
type Scheduler interface {
	RequestFrame(frame func(now time.Time))
}

// Engine owns every entity of a session and runs the frame cycle.
// It is not safe for concurrent use: input must be applied from the same
// goroutine that runs frames.
type Engine struct {
	cfg       config.Session
	surface   Surface
	scheduler Scheduler
	sounds    SoundSink
	rng       Rand

	player  *Player
	enemies Slots[Enemy] // Indexed by lane
	shots   Slots[Shot]

	score     int64
	level     int
	bonus     int64
	lastFrame time.Time
	state     State

	freeLanes []int // Reused by replenish
}

// Option customises an Engine.
type Option func(*Engine)

// WithRand sets the random source used for lane choice and enemy speed.
func WithRand(rng Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithSounds sets the audio sink.
func WithSounds(s SoundSink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sounds = s
		}
	}
}

// NewEngine creates a session: one player, MaxEnemies enemies in distinct
// lanes, no shots. cfg is expected to be valid (see config.Session.Validate).
func NewEngine(cfg config.Session, surface Surface, scheduler Scheduler, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		surface:   surface,
		scheduler: scheduler,
		sounds:    NopSounds{},
		player:    NewPlayer(cfg),
		enemies:   NewSlots[Enemy](cfg.Lanes()),
		shots:     NewSlots[Shot](cfg.MaxActiveShots),
		score:     cfg.StartScore,
		state:     Running,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.level = e.computeLevel()
	e.replenish()
	return e
}

// Start marks now as the previous frame and runs the first frame immediately.
func (e *Engine) Start(now time.Time) {
	e.lastFrame = now
	e.frame(now)
}

// Apply executes an input command against the session.
// Commands arriving after game over are ignored.
func (e *Engine) Apply(c Command) {
	if e.state == GameOver {
		return
	}
	if c.IsShoot() {
		e.Shoot(c.Direction())
		return
	}
	e.player.Move(c.Direction())
}

// Shoot spawns a shot from the player's centre if the active-shot cap allows.
// Returns whether a shot was fired.
func (e *Engine) Shoot(d Direction) bool {
	shot := e.player.Shoot(d, e.cfg.ShotSpeed)
	if !e.shots.Add(shot) {
		return false
	}
	e.sounds.Play(SoundShot)
	return true
}

// Player returns the session's player.
func (e *Engine) Player() *Player { return e.player }

// Enemies returns the lane slots.
func (e *Engine) Enemies() *Slots[Enemy] { return &e.enemies }

// Shots returns the shot slots.
func (e *Engine) Shots() *Slots[Shot] { return &e.shots }

// Score returns elapsed play time in milliseconds (plus the start score).
func (e *Engine) Score() int64 { return e.score }

// Level returns max(1, ceil(score / LevelThreshold)).
func (e *Engine) Level() int { return e.level }

// Bonus returns points earned by shooting enemies.
func (e *Engine) Bonus() int64 { return e.bonus }

// Total returns score plus bonus.
func (e *Engine) Total() int64 { return e.score + e.bonus }

// State returns the session phase.
func (e *Engine) State() State { return e.state }

// Config returns the session parameters.
func (e *Engine) Config() config.Session { return e.cfg }

func (e *Engine) computeLevel() int {
	t := e.cfg.LevelThreshold
	level := int((e.score + t - 1) / t)
	return max(level, 1)
}

// replenish fills empty lanes until MaxEnemies are occupied, choosing
// uniformly among the free lanes.
func (e *Engine) replenish() {
	for e.enemies.Count() < e.cfg.MaxEnemies {
		e.freeLanes = e.enemies.Free(e.freeLanes[:0])
		if len(e.freeLanes) == 0 {
			return
		}
		lane := e.freeLanes[e.rng.Intn(len(e.freeLanes))]
		e.enemies.Put(lane, NewEnemy(float64(lane)*e.cfg.EnemyWidth, e.level, e.cfg, e.rng))
	}
}
