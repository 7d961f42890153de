package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/kittens/internal/config"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// drawCall is one request recorded by recordingSurface.
type drawCall struct {
	sprite Sprite
	text   string
	x, y   float64
}

type recordingSurface struct {
	calls []drawCall
}

func (r *recordingSurface) DrawSprite(s Sprite, x, y float64) {
	r.calls = append(r.calls, drawCall{sprite: s, x: x, y: y})
}

func (r *recordingSurface) DrawText(text string, x, y float64, _ TextStyle) {
	r.calls = append(r.calls, drawCall{sprite: -1, text: text, x: x, y: y})
}

func (r *recordingSurface) reset() { r.calls = r.calls[:0] }

func (r *recordingSurface) sprites() []Sprite {
	var out []Sprite
	for _, c := range r.calls {
		if c.text == "" {
			out = append(out, c.sprite)
		}
	}
	return out
}

func (r *recordingSurface) texts() []string {
	var out []string
	for _, c := range r.calls {
		if c.text != "" {
			out = append(out, c.text)
		}
	}
	return out
}

// manualScheduler holds the requested frame until the test steps it.
type manualScheduler struct {
	pending  func(time.Time)
	requests int
}

func (m *manualScheduler) RequestFrame(frame func(time.Time)) {
	m.pending = frame
	m.requests++
}

// step runs the pending frame at now. Returns false if none was scheduled.
func (m *manualScheduler) step(now time.Time) bool {
	frame := m.pending
	if frame == nil {
		return false
	}
	m.pending = nil
	frame(now)
	return true
}

type recordingSounds struct {
	played []Sound
}

func (r *recordingSounds) Play(s Sound) { r.played = append(r.played, s) }

func (r *recordingSounds) count(s Sound) int {
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

// fixedRand returns constant values so spawn lanes and speeds are predictable.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return min(r.n, n-1) }

type harness struct {
	engine    *Engine
	surface   *recordingSurface
	scheduler *manualScheduler
	sounds    *recordingSounds
}

func newHarness(t *testing.T, cfg config.Session, rng Rand) *harness {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	h := &harness{
		surface:   &recordingSurface{},
		scheduler: &manualScheduler{},
		sounds:    &recordingSounds{},
	}
	h.engine = NewEngine(cfg, h.surface, h.scheduler, WithRand(rng), WithSounds(h.sounds))
	return h
}

// clearEnemies empties every lane so a frame resolves no enemy collisions.
func (h *harness) clearEnemies() {
	for lane := 0; lane < h.engine.enemies.Len(); lane++ {
		h.engine.enemies.Remove(lane)
	}
}

// placeEnemy puts a motionless enemy in lane at y.
func (h *harness) placeEnemy(lane int, y float64) *Enemy {
	cfg := h.engine.cfg
	en := NewEnemy(float64(lane)*cfg.EnemyWidth, 1, cfg, fixedRand{})
	en.Y = y
	en.Speed = 0
	h.engine.enemies.Put(lane, en)
	return en
}

func (h *harness) occupiedLanes() []int {
	var lanes []int
	h.engine.enemies.Each(func(i int, _ *Enemy) { lanes = append(lanes, i) })
	return lanes
}

func (h *harness) containsEnemy(target *Enemy) bool {
	found := false
	h.engine.enemies.Each(func(_ int, en *Enemy) {
		if en == target {
			found = true
		}
	})
	return found
}
