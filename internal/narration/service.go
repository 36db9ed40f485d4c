package narration

import (
	"context"
	"fmt"

	"github.com/jwulff/holodeck/internal/audio"
	"github.com/rs/zerolog"
)

// Narrator starts spoken playback of a lecture.
// A nil handle with an error means the narration is not going to happen.
type Narrator interface {
	Narrate(ctx context.Context, text string, out audio.Output) (audio.Handle, error)
}

// Service is the Narrator backed by a Provider, an optional Store and the
// audio decoder.
type Service struct {
	provider Provider
	store    Store
	voice    string
	speed    float64
	logger   zerolog.Logger
}

// NewService creates a narration service. store may be nil.
func NewService(provider Provider, store Store, voice string, speed float64, logger zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		store:    store,
		voice:    voice,
		speed:    speed,
		logger:   logger.With().Str("component", "narration").Logger(),
	}
}

// Provider returns the configured provider.
func (s *Service) Provider() Provider { return s.provider }

// Narrate synthesizes text, decodes it at the output rate and starts it.
func (s *Service) Narrate(ctx context.Context, text string, out audio.Output) (audio.Handle, error) {
	speech, err := s.Speech(ctx, text)
	if err != nil {
		return nil, err
	}

	clip, err := audio.Decode(speech.Audio, speech.Format, out.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("decode narration: %w", err)
	}

	handle, err := out.Play(clip)
	if err != nil {
		return nil, fmt.Errorf("play narration: %w", err)
	}

	s.logger.Info().
		Str("provider", speech.Provider).
		Dur("duration", clip.Duration()).
		Msg("Narration started")
	return handle, nil
}

// Speech returns encoded audio for text, from the store when possible.
func (s *Service) Speech(ctx context.Context, text string) (*Speech, error) {
	req := &Request{Text: text, Voice: s.voice, Speed: s.speed}
	if err := validate(req); err != nil {
		return nil, err
	}

	key := CacheKey(providerIdentity(s.provider), s.voice, s.speed, text)
	if s.store != nil {
		row, err := s.store.Get(key)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Narration cache read failed")
		} else if row != nil {
			s.logger.Debug().Str("key", key[:12]).Msg("Narration cache hit")
			return speechFromRow(row), nil
		}
	}

	speech, err := s.provider.Synthesize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesize with %s: %w", s.provider.Name(), err)
	}

	if s.store != nil {
		if err := s.store.Put(rowFromSpeech(key, speech)); err != nil {
			s.logger.Warn().Err(err).Msg("Narration cache write failed")
		}
	}
	return speech, nil
}
