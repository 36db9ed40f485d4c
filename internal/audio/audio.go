// Package audio owns narration playback: the process-wide output context,
// payload decoding and the handles for in-flight clips.
package audio

import (
	"errors"
	"time"
)

var (
	ErrNotReady          = errors.New("audio output not initialized")
	ErrSampleRate        = errors.New("clip sample rate does not match output")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Channels and bytes per sample of every Clip.
const (
	Channels       = 2
	BytesPerSample = 2
)

// Clip is decoded 16-bit little-endian stereo PCM ready for playback.
type Clip struct {
	PCM        []byte
	SampleRate int
}

// Duration is the playback length of the clip.
func (c *Clip) Duration() time.Duration {
	if c == nil || c.SampleRate == 0 {
		return 0
	}
	frames := len(c.PCM) / (Channels * BytesPerSample)
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// Output is the audio output context narration plays through.
type Output interface {
	// Resume creates the output on first use and resumes it if suspended.
	Resume() error
	// Suspend pauses all output without discarding players.
	Suspend() error
	// Play starts the clip and returns its handle.
	Play(clip *Clip) (Handle, error)
	// SampleRate is the fixed rate clips must be decoded to.
	SampleRate() int
}

// Handle is an in-flight clip.
type Handle interface {
	// Stop halts playback. Stopping a finished clip is a no-op.
	Stop()
	// Done is closed exactly once, when the clip ends or is stopped.
	Done() <-chan struct{}
}
