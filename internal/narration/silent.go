package narration

import "context"

// SilentProvider never produces audio. With it the lesson moves straight
// from the lecture button to the quiz.
type SilentProvider struct{}

// Name returns the provider identifier.
func (SilentProvider) Name() string { return "none" }

// Synthesize always fails with ErrProviderUnavailable.
func (SilentProvider) Synthesize(context.Context, *Request) (*Speech, error) {
	return nil, ErrProviderUnavailable
}

// Health always fails with ErrProviderUnavailable.
func (SilentProvider) Health(context.Context) error {
	return ErrProviderUnavailable
}
