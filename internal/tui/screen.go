// Package tui renders sessions with tcell and turns tcell key events into
// game input.
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/kittens/internal/config"
	"github.com/tomz197/kittens/internal/draw"
	"github.com/tomz197/kittens/internal/game"
	"github.com/tomz197/kittens/internal/input"
)

// Cell colours per sprite.
var (
	styleField     = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	styleFieldOver = tcell.StyleDefault.Background(tcell.ColorMaroon)
	styleEnemy     = tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack)
	stylePlayer    = tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	stylePlayerKO  = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorBlack)
	styleShot      = tcell.StyleDefault.Background(tcell.ColorYellow)
	styleHeart     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHeartOff  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHighlight = tcell.StyleDefault.Foreground(tcell.ColorLightYellow).Bold(true)
	stylePlain     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Screen draws game sprites as coloured cells on a tcell screen scaled to fit
// the terminal. It also implements the frontend side of the run loop.
type Screen struct {
	screen tcell.Screen
	cfg    config.Session
	events chan tcell.Event

	cols, rows     int
	offCol, offRow int
	scaleX, scaleY float64 // Cells per logical pixel
	field          tcell.Style
}

// New initialises screen and starts forwarding its events.
func New(screen tcell.Screen, cfg config.Session) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()

	s := &Screen{
		screen: screen,
		cfg:    cfg,
		events: make(chan tcell.Event, 100),
		field:  styleField,
	}
	s.layout()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(s.events)
				return
			}
			s.events <- ev
		}
	}()
	return s, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

// Surface returns s; the screen is its own draw target.
func (s *Screen) Surface() game.Surface { return s }

// Present shows the frame.
func (s *Screen) Present() error {
	s.screen.Show()
	return nil
}

// Poll drains pending events without blocking.
func (s *Screen) Poll() input.Input {
	var in input.Input
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				in.Quit = true
				return in
			}
			s.handle(ev, &in)
		default:
			return in
		}
	}
}

func (s *Screen) handle(ev tcell.Event, in *input.Input) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		in.Merge(keyInput(ev))
	case *tcell.EventResize:
		s.layout()
		s.screen.Sync()
	}
}

// keyInput maps a key event onto the same bindings as the byte stream.
func keyInput(ev *tcell.EventKey) input.Input {
	var in input.Input
	switch ev.Key() {
	case tcell.KeyLeft:
		in.Commands = append(in.Commands, game.MoveLeft)
	case tcell.KeyRight:
		in.Commands = append(in.Commands, game.MoveRight)
	case tcell.KeyUp:
		in.Commands = append(in.Commands, game.MoveUp)
	case tcell.KeyDown:
		in.Commands = append(in.Commands, game.MoveDown)
	case tcell.KeyCtrlC:
		in.Quit = true
	case tcell.KeyEnter:
		in.Start = true
	case tcell.KeyRune:
		in = input.Parse([]byte(string(ev.Rune())))
	}
	return in
}

// layout recomputes the cell block the scene occupies.
func (s *Screen) layout() {
	w, h := s.screen.Size()
	s.cols, s.rows, s.offCol, s.offRow = draw.FitCells(s.cfg.GameWidth, s.cfg.GameHeight, w, h)
	s.scaleX = float64(s.cols) / s.cfg.GameWidth
	s.scaleY = float64(s.rows) / s.cfg.GameHeight
}

// cell maps a logical point to a screen cell.
func (s *Screen) cell(x, y float64) (col, row int) {
	return s.offCol + int(math.Floor(x*s.scaleX)), s.offRow + int(math.Floor(y*s.scaleY))
}

// inField reports whether a cell lies inside the scene block.
func (s *Screen) inField(col, row int) bool {
	return col >= s.offCol && col < s.offCol+s.cols && row >= s.offRow && row < s.offRow+s.rows
}

// fill paints every cell the logical rectangle touches.
func (s *Screen) fill(x, y, w, h float64, ch rune, style tcell.Style) {
	c0, r0 := s.cell(x, y)
	c1 := s.offCol + max(int(math.Ceil((x+w)*s.scaleX)), c0-s.offCol+1)
	r1 := s.offRow + max(int(math.Ceil((y+h)*s.scaleY)), r0-s.offRow+1)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if s.inField(col, row) {
				s.screen.SetContent(col, row, ch, nil, style)
			}
		}
	}
}

// DrawSprite implements game.Surface.
func (s *Screen) DrawSprite(sp game.Sprite, x, y float64) {
	w, h := game.SpriteSize(sp, s.cfg)

	switch sp {
	case game.SpriteBackground:
		s.clearField(styleField)
	case game.SpriteGameOverBackground:
		s.clearField(styleFieldOver)
	case game.SpriteEnemy:
		top := s.cfg.EnemyTopBuffer
		s.fill(x+w/8, y+top/2, w/4, top/2, '▲', s.field.Foreground(tcell.ColorOrange))
		s.fill(x+w*5/8, y+top/2, w/4, top/2, '▲', s.field.Foreground(tcell.ColorOrange))
		s.fill(x, y+top, w, h-top, ' ', styleEnemy)
	case game.SpritePlayer:
		top := s.cfg.PlayerTopBuffer
		s.fill(x, y+top, w, h-top, '^', stylePlayer)
	case game.SpritePlayerGameOver:
		top := s.cfg.PlayerTopBuffer
		s.fill(x, y+top, w, h-top, 'x', stylePlayerKO)
	case game.SpriteShotUp, game.SpriteShotDown, game.SpriteShotLeft, game.SpriteShotRight:
		s.fill(x, y, w, h, ' ', styleShot)
	case game.SpriteHeartFull:
		col, row := s.cell(x, y)
		s.put(col, row, '♥', styleHeart.Background(fieldBackground(s.field)))
	case game.SpriteHeartEmpty:
		col, row := s.cell(x, y)
		s.put(col, row, '♡', styleHeartOff.Background(fieldBackground(s.field)))
	}
}

func (s *Screen) clearField(style tcell.Style) {
	s.screen.Clear()
	s.field = style
	s.fill(0, 0, s.cfg.GameWidth, s.cfg.GameHeight, ' ', style)
}

func (s *Screen) put(col, row int, ch rune, style tcell.Style) {
	if s.inField(col, row) {
		s.screen.SetContent(col, row, ch, nil, style)
	}
}

// DrawText implements game.Surface. y is the baseline; text is clipped at
// the scene edge.
func (s *Screen) DrawText(text string, x, y float64, style game.TextStyle) {
	st := stylePlain
	if style == game.TextHighlight {
		st = styleHighlight
	}
	st = st.Background(fieldBackground(s.field))

	col, row := s.cell(x, y)
	for i, r := range []rune(text) {
		s.put(col+i, row, r, st)
	}
}

func fieldBackground(st tcell.Style) tcell.Color {
	_, bg, _ := st.Decompose()
	return bg
}
