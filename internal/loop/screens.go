package loop

import "github.com/tomz197/kittens/internal/game"

const textMarginX = 5

// showTitle draws the title screen.
func (s *State) showTitle() {
	surface := s.frontend.Surface()
	surface.DrawSprite(game.SpriteBackground, 0, 0)
	surface.DrawText("KITTENS vs LION LICKERS", textMarginX, 150, game.TextHighlight)
	surface.DrawText("Press ENTER to play", textMarginX, 200, game.TextPlain)
	surface.DrawText("Arrows: move", textMarginX, 260, game.TextPlain)
	surface.DrawText("W A S D: shoot", textMarginX, 285, game.TextPlain)
	surface.DrawText("Q: quit", textMarginX, 310, game.TextPlain)
}

// showRestartPrompt adds the restart hint under the final tally.
func (s *State) showRestartPrompt() {
	h := s.opts.Session.GameHeight
	s.frontend.Surface().DrawText("Press ENTER to play again", textMarginX, h-40, game.TextHighlight)
}

func (s *State) showIdleWarning() {
	h := s.opts.Session.GameHeight
	s.frontend.Surface().DrawText("Still there? Press a key", textMarginX, h-70, game.TextPlain)
}

func (s *State) showShutdown() {
	surface := s.frontend.Surface()
	surface.DrawSprite(game.SpriteBackground, 0, 0)
	surface.DrawText("Server is shutting down", textMarginX, 200, game.TextHighlight)
	surface.DrawText("Thanks for playing!", textMarginX, 240, game.TextPlain)
}
