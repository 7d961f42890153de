package config

import (
	"errors"
	"fmt"
)

// Canvas dimensions in logical pixels. y grows downward.
const (
	GameWidth  = 375
	GameHeight = 500
)

// Enemy
const (
	EnemyWidth     = 75
	EnemyHeight    = 156
	EnemyTopBuffer = 58 // Transparent top margin of the enemy sprite, excluded from the hit box
	MaxEnemies     = 3

	EnemyBaseSpeed   = 0.25 // px per ms
	EnemySpeedSpread = 3.5  // Random component is rand/EnemySpeedSpread
	LevelSpeedStep   = 0.05 // Added to mean speed per level
)

// Player
const (
	PlayerWidth     = 75
	PlayerHeight    = 70
	PlayerTopBuffer = 10
	StartLives      = 5
)

// Shots
const (
	ShotSpeed      = 0.6 // px per ms
	MaxActiveShots = 1
	ShotBonus      = 100
)

// Scoring
const (
	StartScore     = 1
	LevelThreshold = 10000 // Score (elapsed ms) per level
)

// Session holds every tunable parameter of one play-through.
// Values are fixed for the lifetime of a session.
type Session struct {
	GameWidth  float64
	GameHeight float64

	EnemyWidth       float64
	EnemyHeight      float64
	EnemyTopBuffer   float64
	MaxEnemies       int
	EnemyBaseSpeed   float64
	EnemySpeedSpread float64
	LevelSpeedStep   float64

	PlayerWidth     float64
	PlayerHeight    float64
	PlayerTopBuffer float64
	StartLives      int

	ShotSpeed      float64
	MaxActiveShots int
	ShotBonus      int64

	StartScore     int64
	LevelThreshold int64
}

// DefaultSession returns the parameters of the classic game.
func DefaultSession() Session {
	return Session{
		GameWidth:        GameWidth,
		GameHeight:       GameHeight,
		EnemyWidth:       EnemyWidth,
		EnemyHeight:      EnemyHeight,
		EnemyTopBuffer:   EnemyTopBuffer,
		MaxEnemies:       MaxEnemies,
		EnemyBaseSpeed:   EnemyBaseSpeed,
		EnemySpeedSpread: EnemySpeedSpread,
		LevelSpeedStep:   LevelSpeedStep,
		PlayerWidth:      PlayerWidth,
		PlayerHeight:     PlayerHeight,
		PlayerTopBuffer:  PlayerTopBuffer,
		StartLives:       StartLives,
		ShotSpeed:        ShotSpeed,
		MaxActiveShots:   MaxActiveShots,
		ShotBonus:        ShotBonus,
		StartScore:       StartScore,
		LevelThreshold:   LevelThreshold,
	}
}

// SessionFromEnv returns DefaultSession with KITTENS_* overrides applied.
func SessionFromEnv() (Session, error) {
	s := DefaultSession()

	var err error
	if s.StartLives, err = GetEnvInt("KITTENS_START_LIVES", s.StartLives); err != nil {
		return s, err
	}
	if s.MaxActiveShots, err = GetEnvInt("KITTENS_MAX_SHOTS", s.MaxActiveShots); err != nil {
		return s, err
	}
	threshold, err := GetEnvInt("KITTENS_LEVEL_THRESHOLD", int(s.LevelThreshold))
	if err != nil {
		return s, err
	}
	s.LevelThreshold = int64(threshold)
	bonus, err := GetEnvInt("KITTENS_SHOT_BONUS", int(s.ShotBonus))
	if err != nil {
		return s, err
	}
	s.ShotBonus = int64(bonus)
	if s.ShotSpeed, err = GetEnvFloat("KITTENS_SHOT_SPEED", s.ShotSpeed); err != nil {
		return s, err
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Lanes returns the number of horizontal enemy lanes.
func (s Session) Lanes() int {
	if s.EnemyWidth <= 0 {
		return 0
	}
	return int(s.GameWidth / s.EnemyWidth)
}

// Validate reports parameters that would make the simulation ill-defined.
func (s Session) Validate() error {
	var errs []error
	if s.GameWidth <= 0 || s.GameHeight <= 0 {
		errs = append(errs, fmt.Errorf("canvas must be positive, got %vx%v", s.GameWidth, s.GameHeight))
	}
	if s.EnemyWidth <= 0 || s.EnemyHeight <= 0 {
		errs = append(errs, fmt.Errorf("enemy size must be positive, got %vx%v", s.EnemyWidth, s.EnemyHeight))
	}
	if s.EnemyTopBuffer < 0 || s.EnemyTopBuffer >= s.EnemyHeight {
		errs = append(errs, fmt.Errorf("enemy top buffer %v outside [0, %v)", s.EnemyTopBuffer, s.EnemyHeight))
	}
	if s.PlayerWidth <= 0 || s.PlayerHeight <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %vx%v", s.PlayerWidth, s.PlayerHeight))
	}
	if s.MaxEnemies < 0 || s.MaxEnemies > s.Lanes() {
		errs = append(errs, fmt.Errorf("max enemies %d exceeds %d lanes", s.MaxEnemies, s.Lanes()))
	}
	if s.EnemySpeedSpread <= 0 {
		errs = append(errs, fmt.Errorf("enemy speed spread must be positive, got %v", s.EnemySpeedSpread))
	}
	if s.MaxActiveShots < 0 {
		errs = append(errs, fmt.Errorf("max active shots must not be negative, got %d", s.MaxActiveShots))
	}
	if s.StartLives <= 0 {
		errs = append(errs, fmt.Errorf("start lives must be positive, got %d", s.StartLives))
	}
	if s.LevelThreshold <= 0 {
		errs = append(errs, fmt.Errorf("level threshold must be positive, got %d", s.LevelThreshold))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}
	return nil
}
