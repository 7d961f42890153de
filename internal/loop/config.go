package loop

import "time"

// Frame pacing.
const (
	targetFPS       = 60
	targetFrameTime = time.Second / targetFPS
)

// Inactivity outside a running session.
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
