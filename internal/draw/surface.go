package draw

import (
	"fmt"
	"io"

	"github.com/tomz197/kittens/internal/config"
	"github.com/tomz197/kittens/internal/game"
)

type textItem struct {
	text  string
	x, y  float64
	style game.TextStyle
}

// Surface rasterises game draw requests onto a Canvas and writes frames as
// ANSI sequences. A frame starts with a background sprite and stays on the
// surface until the next one, so Present may be called repeatedly.
type Surface struct {
	cfg    config.Session
	canvas *Canvas
	out    *ChunkWriter
	size   TermSizeFunc
	texts  []textItem
}

// NewSurface creates a surface writing to w, sized by size (DefaultTermSizeFunc
// when nil).
func NewSurface(w io.Writer, size TermSizeFunc, cfg config.Session) *Surface {
	if size == nil {
		size = DefaultTermSizeFunc
	}
	s := &Surface{
		cfg:    cfg,
		canvas: NewCanvas(cfg.GameWidth, cfg.GameHeight, 80, 24),
		out:    NewChunkWriter(w),
		size:   size,
	}
	s.refit()
	return s
}

var _ game.Surface = (*Surface)(nil)

// Canvas exposes the pixel buffer.
func (s *Surface) Canvas() *Canvas { return s.canvas }

// DrawSprite implements game.Surface.
func (s *Surface) DrawSprite(sp game.Sprite, x, y float64) {
	c := s.canvas
	w, h := game.SpriteSize(sp, s.cfg)

	switch sp {
	case game.SpriteBackground:
		c.Clear()
		s.texts = s.texts[:0]
	case game.SpriteGameOverBackground:
		c.Clear()
		s.texts = s.texts[:0]
		c.StrokeRect(x+2, y+2, w-4, h-4)
	case game.SpriteEnemy:
		s.drawEnemy(x, y, w, h)
	case game.SpritePlayer:
		s.drawPlayer(x, y, w, h, true)
	case game.SpritePlayerGameOver:
		s.drawPlayer(x, y, w, h, false)
	case game.SpriteShotUp, game.SpriteShotDown, game.SpriteShotLeft, game.SpriteShotRight:
		c.FillRect(x, y, w, h)
	case game.SpriteHeartFull:
		c.FillRect(x, y, w, h)
	case game.SpriteHeartEmpty:
		c.StrokeRect(x, y, w, h)
	}
}

// drawEnemy outlines the hit box and puts a pair of ears in the margin above it.
func (s *Surface) drawEnemy(x, y, w, h float64) {
	const inset = 4
	top := y + s.cfg.EnemyTopBuffer
	s.canvas.StrokeRect(x+inset, top, w-2*inset, h-s.cfg.EnemyTopBuffer-inset)

	ear := w / 4
	s.canvas.DrawPolygon([]Point{{x + inset, top}, {x + inset + ear/2, top - ear}, {x + inset + ear, top}}, true)
	s.canvas.DrawPolygon([]Point{{x + w - inset - ear, top}, {x + w - inset - ear/2, top - ear}, {x + w - inset, top}}, true)
}

// drawPlayer draws a triangle below the transparent top margin.
func (s *Surface) drawPlayer(x, y, w, h float64, filled bool) {
	top := y + s.cfg.PlayerTopBuffer
	s.canvas.DrawPolygon([]Point{{x + w/2, top}, {x + w, y + h}, {x, y + h}}, filled)
}

// DrawText implements game.Surface. y is the text baseline.
func (s *Surface) DrawText(text string, x, y float64, style game.TextStyle) {
	s.texts = append(s.texts, textItem{text: text, x: x, y: y, style: style})
}

// Open hides the cursor and clears the terminal.
func (s *Surface) Open() error {
	s.out.WriteString(seqHideCursor + seqClear)
	return s.out.Flush()
}

// Close restores the terminal.
func (s *Surface) Close() error {
	s.out.WriteString(seqReset + seqClear + seqShowCursor)
	return s.out.Flush()
}

// Present writes the current frame, then adapts to any terminal resize.
func (s *Surface) Present() error {
	s.out.WriteString(seqClear)
	if err := s.canvas.RenderBorder(s.out); err != nil {
		return fmt.Errorf("render border: %w", err)
	}
	if err := s.canvas.Render(s.out); err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}
	s.writeTexts()
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	s.refit()
	return nil
}

func (s *Surface) writeTexts() {
	cols, _ := s.canvas.Size()
	for _, t := range s.texts {
		col, row := s.canvas.LogicalToCell(t.x, t.y)
		room := cols - col + 1
		if room <= 0 {
			continue
		}
		text := t.text
		if len(text) > room {
			text = text[:room]
		}
		if t.style == game.TextHighlight {
			s.out.WriteAt(col, row, seqBold+seqYellow+text+seqReset)
		} else {
			s.out.WriteAt(col, row, text)
		}
	}
}

// refit tracks the terminal size. A failing size query keeps the last layout.
func (s *Surface) refit() {
	w, h, err := s.size()
	if err != nil || w <= 0 || h <= 0 {
		return
	}
	s.canvas.Fit(w, h)
	s.out.SetOffset(s.canvas.Offset())
}
