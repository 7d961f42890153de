package game

import (
	"github.com/tomz197/kittens/internal/config"
	"github.com/tomz197/kittens/internal/physics"
)

// Rand is the randomness the engine needs. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Enemy is a lion licker sliding down its lane.
type Enemy struct {
	Entity
	Speed float64 // px per ms, frozen at spawn

	width, height, topBuffer float64
}

// NewEnemy spawns an enemy just above the canvas at x. Its speed is drawn
// once from the level at spawn time: higher levels raise the mean speed.
func NewEnemy(x float64, level int, cfg config.Session, rng Rand) *Enemy {
	return &Enemy{
		Entity: Entity{
			Sprite: SpriteEnemy,
			X:      x,
			Y:      -cfg.EnemyHeight,
		},
		Speed:     rng.Float64()/cfg.EnemySpeedSpread + float64(level)*cfg.LevelSpeedStep + cfg.EnemyBaseSpeed,
		width:     cfg.EnemyWidth,
		height:    cfg.EnemyHeight,
		topBuffer: cfg.EnemyTopBuffer,
	}
}

// Update moves the enemy down by elapsed milliseconds times its speed.
func (e *Enemy) Update(elapsedMs float64) {
	e.Y += elapsedMs * e.Speed
}

// HitBox returns the collidable part of the sprite: its full width but only
// the rows below the transparent top margin.
func (e *Enemy) HitBox() physics.Rect {
	return physics.RectAt(e.X, e.Y+e.topBuffer, e.width, e.height-e.topBuffer)
}

// CollidesWithHitBox tests a single point, usually another entity's
// top-left anchor, against the reduced hit box.
func (e *Enemy) CollidesWithHitBox(px, py float64) bool {
	return e.HitBox().Contains(px, py)
}
