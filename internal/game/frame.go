package game

import (
	"time"

	"github.com/tomz197/kittens/internal/physics"
)

// frame is one tick: advance, render, resolve, evict, replenish, then
// either schedule the next tick or finish the session.
func (e *Engine) frame(now time.Time) {
	if e.state == GameOver {
		return
	}

	// Whole milliseconds only; the remainder carries into the next frame.
	elapsed := now.Sub(e.lastFrame).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
		e.lastFrame = now
	} else {
		e.lastFrame = e.lastFrame.Add(time.Duration(elapsed) * time.Millisecond)
	}
	dt := float64(elapsed)

	e.score += elapsed
	e.level = e.computeLevel()

	e.shots.Each(func(_ int, s *Shot) { s.Update(dt) })
	e.enemies.Each(func(_ int, en *Enemy) { en.Update(dt) })

	e.renderScene()
	e.resolveCollisions()
	e.evictShots()
	e.replenish()

	if e.player.NumLives <= 0 {
		e.state = GameOver
		e.renderGameOver()
		e.sounds.Play(SoundGameOver)
		return
	}

	e.renderHUD()
	e.scheduler.RequestFrame(e.frame)
}

// renderScene draws back to front: background, enemies, player, shots.
func (e *Engine) renderScene() {
	e.surface.DrawSprite(SpriteBackground, 0, 0)
	e.enemies.Each(func(_ int, en *Enemy) { en.Render(e.surface) })
	e.player.Render(e.surface)
	e.shots.Each(func(_ int, s *Shot) { s.Render(e.surface) })
}

// resolveCollisions applies, per lane: escape, else player hit; then,
// independently, shot hits against the same enemy.
func (e *Engine) resolveCollisions() {
	h := e.cfg.GameHeight
	for lane := 0; lane < e.enemies.Len(); lane++ {
		enemy := e.enemies.Get(lane)
		if enemy == nil {
			continue
		}

		if enemy.Y > h {
			e.enemies.Remove(lane)
		} else if enemy.CollidesWithHitBox(e.player.X, e.player.Y) {
			e.player.NumLives--
			e.enemies.Remove(lane)
			e.sounds.Play(SoundImpact)
		}

		for i := 0; i < e.shots.Len(); i++ {
			shot := e.shots.Get(i)
			if shot == nil || !enemy.CollidesWithHitBox(shot.X, shot.Y) {
				continue
			}
			e.enemies.Remove(lane)
			e.shots.Remove(i)
			e.bonus += e.cfg.ShotBonus
		}
	}
}

// evictShots removes shots that left the canvas.
func (e *Engine) evictShots() {
	w, h := e.cfg.GameWidth, e.cfg.GameHeight
	for i := 0; i < e.shots.Len(); i++ {
		if s := e.shots.Get(i); s != nil && !physics.InBounds(s.X, s.Y, w, h) {
			e.shots.Remove(i)
		}
	}
}
