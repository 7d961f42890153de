// Package input turns a raw terminal byte stream into discrete game commands.
package input

import (
	"bufio"

	"github.com/tomz197/kittens/internal/game"
)

// Input is everything pressed since the previous frame.
type Input struct {
	Quit     bool
	Start    bool           // Enter or space: begin or restart a session
	Commands []game.Command // In arrival order
	Pressed  []byte         // Raw bytes, for activity tracking
}

// Stream delivers input bytes via a channel. Bytes are read on a separate
// goroutine and drained once per frame by ReadInput.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete escape sequence carried to the next frame
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking.
// A closed stream (EOF on the reader) reports Quit.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	if !closed {
		buf, s.pending = splitIncomplete(buf)
	}
	in := Parse(buf)
	if closed {
		in.Quit = true
	}
	return in
}

// splitIncomplete holds back a trailing ESC or ESC [ whose final byte has
// not arrived yet.
func splitIncomplete(buf []byte) (complete, rest []byte) {
	n := len(buf)
	switch {
	case n >= 1 && buf[n-1] == '\x1b':
		return buf[:n-1], append([]byte(nil), buf[n-1:]...)
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		return buf[:n-2], append([]byte(nil), buf[n-2:]...)
	}
	return buf, nil
}

// Parse decodes a batch of bytes. Arrow keys (ESC [ A-D) move, WASD shoot.
func Parse(buf []byte) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if cmd, ok := arrowCommand(buf[i+2]); ok {
				in.Commands = append(in.Commands, cmd)
				i += 2
				continue
			}
		}

		applyByte(&in, b)
	}

	return in
}

func arrowCommand(code byte) (game.Command, bool) {
	switch code {
	case 'A':
		return game.MoveUp, true
	case 'B':
		return game.MoveDown, true
	case 'C':
		return game.MoveRight, true
	case 'D':
		return game.MoveLeft, true
	}
	return 0, false
}

// applyByte handles single-byte keys.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A':
		in.Commands = append(in.Commands, game.ShootLeft)
	case 'd', 'D':
		in.Commands = append(in.Commands, game.ShootRight)
	case 'w', 'W':
		in.Commands = append(in.Commands, game.ShootUp)
	case 's', 'S':
		in.Commands = append(in.Commands, game.ShootDown)
	case ' ', '\n', '\r':
		in.Start = true
	}
}

// Merge folds other into in, keeping command order.
func (in *Input) Merge(other Input) {
	in.Quit = in.Quit || other.Quit
	in.Start = in.Start || other.Start
	in.Commands = append(in.Commands, other.Commands...)
	in.Pressed = append(in.Pressed, other.Pressed...)
}
