package lesson

import "github.com/jwulff/holodeck/internal/audio"

// Every deferred message carries the epoch that scheduled it. The
// controller drops messages from an older epoch.

// NarrationStartedMsg reports that playback of the lecture began.
type NarrationStartedMsg struct {
	Epoch  uint64
	Handle audio.Handle
}

// NarrationEndedMsg reports that a handle finished or was stopped.
type NarrationEndedMsg struct {
	Epoch  uint64
	Handle audio.Handle
}

// NarrationFailedMsg reports that no narration could be produced.
type NarrationFailedMsg struct {
	Epoch uint64
	Err   error
}

// QuizRevealMsg fires when the grace delay after narration has passed.
type QuizRevealMsg struct {
	Epoch uint64
}

// FeedbackElapsedMsg fires when answer feedback has been shown long enough.
type FeedbackElapsedMsg struct {
	Epoch uint64
}
