package game

import "fmt"

// HUD text positions, in logical pixels (text y is the baseline).
const (
	hudMarginX    = 5
	hudLineHeight = 25
	hudFirstLine  = 30
	heartGap      = 4
)

// renderHUD draws score, bonus, level, lives and the heart row.
func (e *Engine) renderHUD() {
	s := e.surface
	s.DrawText(fmt.Sprintf("SCORE: %d", e.score), hudMarginX, hudFirstLine, TextHighlight)
	s.DrawText(fmt.Sprintf("BONUS: %d", e.bonus), hudMarginX, hudFirstLine+hudLineHeight, TextHighlight)
	s.DrawText(fmt.Sprintf("LEVEL: %d", e.level), hudMarginX, hudFirstLine+2*hudLineHeight, TextHighlight)

	livesX := e.cfg.GameWidth / 11 * 7
	s.DrawText(fmt.Sprintf("LIVES: %d", e.player.Lives()), livesX, hudFirstLine, TextHighlight)
	e.renderHearts(livesX, hudFirstLine+heartGap)
}

// renderHearts draws one heart per starting life, full for those remaining.
func (e *Engine) renderHearts(x, y float64) {
	lives := e.player.Lives()
	for i, n := 0, max(e.cfg.StartLives, lives); i < n; i++ {
		sprite := SpriteHeartEmpty
		if i < lives {
			sprite = SpriteHeartFull
		}
		e.surface.DrawSprite(sprite, x+float64(i)*(HeartSize+heartGap), y)
	}
}

// renderGameOver draws the terminal screen with the final tally.
func (e *Engine) renderGameOver() {
	s := e.surface
	s.DrawSprite(SpriteGameOverBackground, 0, 0)
	e.player.Sprite = SpritePlayerGameOver
	e.player.Render(s)

	s.DrawText("Ugh, Lion Lickers SUCK!", hudMarginX, hudFirstLine, TextHighlight)
	s.DrawText(fmt.Sprintf("SCORE: %d", e.score), hudMarginX, hudFirstLine+30, TextPlain)
	s.DrawText(fmt.Sprintf("BONUS: %d", e.bonus), hudMarginX, hudFirstLine+60, TextPlain)
	s.DrawText(fmt.Sprintf("TOTAL: %d", e.Total()), hudMarginX, hudFirstLine+90, TextPlain)
}
