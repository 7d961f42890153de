package game

// Direction is one of the four cardinal directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Command is a discrete player intent delivered by an input source.
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	MoveUp
	MoveDown
	ShootLeft
	ShootRight
	ShootUp
	ShootDown
)

var commandDirections = [...]Direction{
	MoveLeft:   Left,
	MoveRight:  Right,
	MoveUp:     Up,
	MoveDown:   Down,
	ShootLeft:  Left,
	ShootRight: Right,
	ShootUp:    Up,
	ShootDown:  Down,
}

// Direction returns the direction the command moves or shoots in.
func (c Command) Direction() Direction {
	if c < 0 || int(c) >= len(commandDirections) {
		return Up
	}
	return commandDirections[c]
}

// IsShoot reports whether the command fires a shot rather than moving.
func (c Command) IsShoot() bool {
	return c >= ShootLeft && c <= ShootDown
}

func (c Command) String() string {
	if c.IsShoot() {
		return "shoot-" + c.Direction().String()
	}
	return "move-" + c.Direction().String()
}
