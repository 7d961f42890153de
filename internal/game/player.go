package game

import "github.com/tomz197/kittens/internal/config"

// Player is the user-controlled cat. It moves on a grid one sprite at a time.
type Player struct {
	Entity
	NumLives int

	width, height  float64
	maxX, maxY     float64
	centerX, halfY float64
}

// NewPlayer places the player in lane 2, resting just above the bottom margin.
func NewPlayer(cfg config.Session) *Player {
	return &Player{
		Entity: Entity{
			Sprite: SpritePlayer,
			X:      2 * cfg.PlayerWidth,
			Y:      cfg.GameHeight - cfg.PlayerHeight - cfg.PlayerTopBuffer,
		},
		NumLives: cfg.StartLives,
		width:    cfg.PlayerWidth,
		height:   cfg.PlayerHeight,
		maxX:     cfg.GameWidth - cfg.PlayerWidth,
		maxY:     cfg.GameHeight - 2*cfg.PlayerHeight,
		centerX:  cfg.PlayerWidth / 2,
		halfY:    cfg.PlayerHeight / 2,
	}
}

// Move teleports the player one sprite width or height. Moves that would
// leave the canvas are ignored.
func (p *Player) Move(d Direction) {
	switch {
	case d == Left && p.X > 0:
		p.X -= p.width
	case d == Right && p.X < p.maxX:
		p.X += p.width
	case d == Up && p.Y > 0:
		p.Y -= p.height
	case d == Down && p.Y < p.maxY:
		p.Y += p.height
	}
}

// Center returns the middle of the player sprite, where shots are spawned.
func (p *Player) Center() (x, y float64) {
	return p.X + p.centerX, p.Y + p.halfY
}

// Shoot builds a shot leaving the player's centre in direction d.
func (p *Player) Shoot(d Direction, speed float64) *Shot {
	x, y := p.Center()
	return NewShot(x, y, d, speed)
}

// Lives returns the remaining lives, never below zero.
func (p *Player) Lives() int {
	return max(p.NumLives, 0)
}
