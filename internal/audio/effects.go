package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/tomz197/kittens/internal/game"
)

// Effect timings.
const (
	shotDuration     = 90 * time.Millisecond
	shotAttack       = 5 * time.Millisecond
	shotRelease      = 60 * time.Millisecond
	impactDuration   = 220 * time.Millisecond
	impactAttack     = 2 * time.Millisecond
	impactRelease    = 180 * time.Millisecond
	gameOverNote     = 260 * time.Millisecond
	gameOverLastNote = 600 * time.Millisecond
	gameOverAttack   = 10 * time.Millisecond
	gameOverRelease  = 120 * time.Millisecond
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer producing duration worth of wave at freq.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with attack and release ramps over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; 0 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is an enveloped oscillator.
func tone(freq float64, wave WaveType, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, duration, wave, rate), duration, attack, release, rate)
}

// shotEffect is a short square blip.
func shotEffect(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(1046.5, WaveSquare, shotDuration, shotAttack, shotRelease, rate), 0.4)
}

// impactEffect is a noise burst over a low saw thud.
func impactEffect(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(tone(0, WaveNoise, impactDuration, impactAttack, impactRelease, rate), 0.5),
		newVolume(tone(110, WaveSaw, impactDuration, impactAttack, impactRelease, rate), 0.5),
	)
}

// gameOverEffect is a falling three-note phrase.
func gameOverEffect(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(523.25, WaveSine, gameOverNote, gameOverAttack, gameOverRelease, rate),
		tone(392.00, WaveSine, gameOverNote, gameOverAttack, gameOverRelease, rate),
		tone(261.63, WaveSine, gameOverLastNote, gameOverAttack, gameOverLastNote/2, rate),
	)
}

// Effect returns a fresh streamer for sound, scaled by volume.
// Unknown sounds return nil.
func Effect(sound game.Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch sound {
	case game.SoundShot:
		s = shotEffect(rate)
	case game.SoundImpact:
		s = impactEffect(rate)
	case game.SoundGameOver:
		s = gameOverEffect(rate)
	default:
		return nil
	}
	return newVolume(s, volume)
}

// effectDuration is the playing time of each effect.
func effectDuration(sound game.Sound) time.Duration {
	switch sound {
	case game.SoundShot:
		return shotDuration
	case game.SoundImpact:
		return impactDuration
	case game.SoundGameOver:
		return 2*gameOverNote + gameOverLastNote
	}
	return 0
}
