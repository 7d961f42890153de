package config

import (
	"strings"
	"testing"
)

func TestDefaultSessionIsValid(t *testing.T) {
	s := DefaultSession()
	if err := s.Validate(); err != nil {
		t.Fatalf("default session invalid: %v", err)
	}
	if got := s.Lanes(); got != 5 {
		t.Errorf("Lanes() = %d, want 5", got)
	}
}

func TestValidateRejectsTooManyEnemies(t *testing.T) {
	s := DefaultSession()
	s.MaxEnemies = 6

	err := s.Validate()
	if err == nil {
		t.Fatal("expected error for more enemies than lanes")
	}
	if !strings.Contains(err.Error(), "lanes") {
		t.Errorf("error %q does not mention lanes", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	s := DefaultSession()
	s.StartLives = 0
	s.LevelThreshold = 0

	err := s.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"start lives", "level threshold"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestSessionFromEnvOverrides(t *testing.T) {
	t.Setenv("KITTENS_START_LIVES", "2")
	t.Setenv("KITTENS_MAX_SHOTS", "3")
	t.Setenv("KITTENS_LEVEL_THRESHOLD", "500")
	t.Setenv("KITTENS_SHOT_BONUS", "250")
	t.Setenv("KITTENS_SHOT_SPEED", "1.5")

	s, err := SessionFromEnv()
	if err != nil {
		t.Fatalf("SessionFromEnv: %v", err)
	}
	if s.StartLives != 2 || s.MaxActiveShots != 3 || s.LevelThreshold != 500 || s.ShotBonus != 250 || s.ShotSpeed != 1.5 {
		t.Errorf("overrides not applied: %+v", s)
	}
}

func TestSessionFromEnvBadNumber(t *testing.T) {
	t.Setenv("KITTENS_START_LIVES", "five")

	if _, err := SessionFromEnv(); err == nil {
		t.Fatal("expected parse error")
	} else if !strings.Contains(err.Error(), "KITTENS_START_LIVES") {
		t.Errorf("error %q does not name the variable", err)
	}
}

func TestSessionFromEnvInvalidValue(t *testing.T) {
	t.Setenv("KITTENS_START_LIVES", "-1")

	if _, err := SessionFromEnv(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("KITTENS_TEST_EMPTY", "")
	if got := GetEnv("KITTENS_TEST_UNSET_VAR", "x"); got != "x" {
		t.Errorf("GetEnv unset = %q, want x", got)
	}
	if n, err := GetEnvInt("KITTENS_TEST_EMPTY", 7); err != nil || n != 7 {
		t.Errorf("GetEnvInt empty = %d, %v; want 7, nil", n, err)
	}
}
