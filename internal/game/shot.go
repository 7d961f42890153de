package game

var shotSprites = [...]Sprite{
	Up:    SpriteShotUp,
	Down:  SpriteShotDown,
	Left:  SpriteShotLeft,
	Right: SpriteShotRight,
}

// Shot is a rainbow laser travelling along one axis.
type Shot struct {
	Entity
	Direction Direction
	Speed     float64 // px per ms
}

// NewShot creates a shot at (x, y) heading in direction d.
func NewShot(x, y float64, d Direction, speed float64) *Shot {
	sprite := SpriteShotUp
	if d >= 0 && int(d) < len(shotSprites) {
		sprite = shotSprites[d]
	}
	return &Shot{
		Entity:    Entity{Sprite: sprite, X: x, Y: y},
		Direction: d,
		Speed:     speed,
	}
}

// Update advances the shot by elapsed milliseconds along its axis.
func (s *Shot) Update(elapsedMs float64) {
	step := elapsedMs * s.Speed
	switch s.Direction {
	case Up:
		s.Y -= step
	case Down:
		s.Y += step
	case Left:
		s.X -= step
	case Right:
		s.X += step
	}
}
