// Package narration turns lecture text into a playing audio clip through a
// pluggable speech synthesis provider.
package narration

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	ErrProviderUnavailable = errors.New("speech provider unavailable")
	ErrEmptyText           = errors.New("narration text is empty")
	ErrTextTooLong         = errors.New("text exceeds maximum length")
)

// MaxTextLength is the longest text any provider is asked to speak.
const MaxTextLength = 4096

// Provider synthesizes speech for a piece of text.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "daemon")
	Name() string

	// Synthesize converts text to encoded audio
	Synthesize(ctx context.Context, req *Request) (*Speech, error)

	// Health checks if the provider is available
	Health(ctx context.Context) error
}

// Request is a synthesis request.
type Request struct {
	Text  string
	Voice string
	Speed float64 // 0.25 to 4.0, 0 means provider default
}

// Speech is encoded audio returned by a provider.
type Speech struct {
	Audio          []byte
	Format         string // wav or mp3
	SampleRate     int
	Voice          string
	Provider       string
	ProcessingTime time.Duration
}

func validate(req *Request) error {
	if req == nil || req.Text == "" {
		return ErrEmptyText
	}
	if len(req.Text) > MaxTextLength {
		return ErrTextTooLong
	}
	return nil
}
