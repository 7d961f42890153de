// Package audio synthesises the game's sound cues and plays them through the
// system speaker with beep.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/tomz197/kittens/internal/game"
)

var sounds = []game.Sound{game.SoundShot, game.SoundImpact, game.SoundGameOver}

// Player is a game.SoundSink. Effects are rendered once into buffers and
// each cue plays a fresh streamer over them, so overlapping cues mix.
type Player struct {
	cfg    Config
	format beep.Format

	mu      sync.Mutex
	buffers map[game.Sound]*beep.Buffer
	play    func(...beep.Streamer) // nil until Start
}

var _ game.SoundSink = (*Player)(nil)

// New renders the effects for cfg. Nothing is audible until Start.
func New(cfg Config) *Player {
	rate := beep.SampleRate(cfg.SampleRate)
	p := &Player{
		cfg:     cfg,
		format:  beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		buffers: make(map[game.Sound]*beep.Buffer, len(sounds)),
	}
	for _, s := range sounds {
		buf := beep.NewBuffer(p.format)
		buf.Append(beep.Take(rate.N(effectDuration(s)), Effect(s, rate, cfg.Volume)))
		p.buffers[s] = buf
	}
	return p
}

// Start opens the speaker. A disabled player stays silent and never touches
// the audio device.
func (p *Player) Start() error {
	if !p.cfg.Enabled {
		return nil
	}
	rate := p.format.SampleRate
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	p.mu.Lock()
	p.play = speaker.Play
	p.mu.Unlock()
	return nil
}

// Play queues the cue and returns immediately.
func (p *Player) Play(s game.Sound) {
	p.mu.Lock()
	play := p.play
	buf := p.buffers[s]
	p.mu.Unlock()

	if play == nil || buf == nil {
		return
	}
	play(buf.Streamer(0, buf.Len()))
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	started := p.play != nil
	p.play = nil
	p.mu.Unlock()

	if started {
		speaker.Close()
	}
}
