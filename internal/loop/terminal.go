package loop

import (
	"bufio"
	"io"

	"github.com/tomz197/kittens/internal/config"
	"github.com/tomz197/kittens/internal/draw"
	"github.com/tomz197/kittens/internal/game"
	"github.com/tomz197/kittens/internal/input"
)

// Terminal is the ANSI frontend: keys from a raw byte stream, frames as
// escape sequences. It works over any reader/writer pair, such as a local
// raw-mode tty or an SSH channel.
type Terminal struct {
	stream  *input.Stream
	surface *draw.Surface
}

var _ Frontend = (*Terminal)(nil)

// NewTerminal starts reading keys from r. Frames go to w, sized by size.
func NewTerminal(r *bufio.Reader, w io.Writer, size draw.TermSizeFunc, cfg config.Session) *Terminal {
	return &Terminal{
		stream:  input.StartStream(r),
		surface: draw.NewSurface(w, size, cfg),
	}
}

// Open prepares the terminal for drawing.
func (t *Terminal) Open() error { return t.surface.Open() }

// Close restores the cursor and clears the screen.
func (t *Terminal) Close() error { return t.surface.Close() }

// Poll implements Frontend.
func (t *Terminal) Poll() input.Input { return input.ReadInput(t.stream) }

// Surface implements Frontend.
func (t *Terminal) Surface() game.Surface { return t.surface }

// Present implements Frontend.
func (t *Terminal) Present() error { return t.surface.Present() }
