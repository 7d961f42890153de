package audio

import (
	"fmt"

	"github.com/tomz197/kittens/internal/config"
)

// Config controls sound output.
type Config struct {
	Enabled    bool
	SampleRate int     // Hz
	Volume     float64 // 0.0 - 1.0
}

// DefaultConfig returns audible defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		SampleRate: 44100,
		Volume:     0.5,
	}
}

// ConfigFromEnv applies KITTENS_VOLUME (0-100) and KITTENS_SAMPLE_RATE to the defaults.
// A volume of 0 disables audio.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	vol, err := config.GetEnvInt("KITTENS_VOLUME", int(cfg.Volume*100))
	if err != nil {
		return cfg, err
	}
	cfg.Volume = min(max(float64(vol)/100, 0), 1)
	cfg.Enabled = cfg.Volume > 0

	rate, err := config.GetEnvInt("KITTENS_SAMPLE_RATE", cfg.SampleRate)
	if err != nil {
		return cfg, err
	}
	if rate <= 0 {
		return cfg, fmt.Errorf("KITTENS_SAMPLE_RATE: must be positive, got %d", rate)
	}
	cfg.SampleRate = rate

	return cfg, nil
}
