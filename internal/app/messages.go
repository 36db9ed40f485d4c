package app

import "time"

// FrameMsg drives the animation loop.
type FrameMsg struct {
	Time time.Time
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
