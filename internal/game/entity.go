// Package game implements the lane shooter simulation: entities, the per-frame
// update/render/collision cycle and the session state machine.
package game

import "github.com/tomz197/kittens/internal/config"

// Sprite identifies an image the rendering sink knows how to draw.
type Sprite int

const (
	SpriteBackground Sprite = iota
	SpriteGameOverBackground
	SpriteEnemy
	SpritePlayer
	SpritePlayerGameOver
	SpriteShotUp
	SpriteShotDown
	SpriteShotLeft
	SpriteShotRight
	SpriteHeartFull
	SpriteHeartEmpty
)

// Sizes of sprites that are not derived from the session parameters.
const (
	ShotLength    = 24
	ShotThickness = 6
	HeartSize     = 18
)

// SpriteSize returns the drawn size of a sprite in logical pixels.
func SpriteSize(s Sprite, cfg config.Session) (w, h float64) {
	switch s {
	case SpriteBackground, SpriteGameOverBackground:
		return cfg.GameWidth, cfg.GameHeight
	case SpriteEnemy:
		return cfg.EnemyWidth, cfg.EnemyHeight
	case SpritePlayer, SpritePlayerGameOver:
		return cfg.PlayerWidth, cfg.PlayerHeight
	case SpriteShotUp, SpriteShotDown:
		return ShotThickness, ShotLength
	case SpriteShotLeft, SpriteShotRight:
		return ShotLength, ShotThickness
	case SpriteHeartFull, SpriteHeartEmpty:
		return HeartSize, HeartSize
	default:
		return 0, 0
	}
}

// TextStyle selects how the sink colours a line of text.
type TextStyle int

const (
	TextHighlight TextStyle = iota // Pale yellow headline text
	TextPlain                      // White body text
)

// Surface is the rendering sink. The core only issues draw requests;
// rasterisation belongs to the implementation.
type Surface interface {
	DrawSprite(s Sprite, x, y float64)
	DrawText(text string, x, y float64, style TextStyle)
}

// Renderer is implemented by everything that can put itself on a Surface.
type Renderer interface {
	Render(s Surface)
}

// Entity is a sprite at a position. Player, Enemy and Shot embed it.
type Entity struct {
	Sprite Sprite
	X, Y   float64
}

// Render issues a single draw of the sprite at the entity position.
func (e *Entity) Render(s Surface) {
	s.DrawSprite(e.Sprite, e.X, e.Y)
}

// Sound identifies a fire-and-forget audio cue.
type Sound int

const (
	SoundShot Sound = iota
	SoundImpact
	SoundGameOver
)

// SoundSink receives audio cues. Play must not block on playback.
type SoundSink interface {
	Play(s Sound)
}

// NopSounds discards every cue.
type NopSounds struct{}

// Play does nothing.
func (NopSounds) Play(Sound) {}
