// Package db provides SQLite access for holodeck: read-only content packs and
// the synthesized narration cache.
package db

import "time"

// ModuleRow is a module as stored in a content pack.
type ModuleRow struct {
	ID          string
	Position    int
	Title       string
	Description string
	Lecture     string
	Color       string
}

// QuestionRow is a quiz question as stored in a content pack.
type QuestionRow struct {
	ModuleID string
	Position int
	Prompt   string
	Options  []string
	Correct  int
}

// Narration is a cached synthesized lecture.
type Narration struct {
	Key        string
	Provider   string
	Voice      string
	Format     string
	SampleRate int
	Audio      []byte
	CreatedAt  time.Time
}
