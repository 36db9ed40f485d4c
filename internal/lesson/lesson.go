// Package lesson is the session state machine: module selection, lecture
// narration, quiz reveal, scoring and completion.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwulff/holodeck/internal/audio"
	"github.com/jwulff/holodeck/internal/catalog"
	"github.com/jwulff/holodeck/internal/narration"
	"github.com/rs/zerolog"
)

// Scoring and timing defaults.
const (
	AnswerAward          = 100
	CompletionBonus      = 500
	PassThreshold        = 2
	DefaultGraceDelay    = 1200 * time.Millisecond
	DefaultFeedbackDelay = 2 * time.Second
)

// Feedback texts.
const (
	CorrectMessage   = "Correct! Your neural patterns are aligning."
	IncorrectMessage = "Inaccurate data. Recalibrate and try again."
)

var (
	ErrUnknownModule   = catalog.ErrUnknownModule
	ErrQuizHidden      = errors.New("quiz is not visible")
	ErrFeedbackPending = errors.New("feedback is still showing")
	ErrInvalidOption   = errors.New("answer option out of range")
	errNoHandle        = errors.New("narrator returned no handle")
)

// Phase summarizes where the session is.
type Phase int

const (
	Idle Phase = iota
	Narrating
	AwaitingQuiz
	QuizActive
	ShowingFeedback
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Narrating:
		return "narrating"
	case AwaitingQuiz:
		return "awaiting-quiz"
	case QuizActive:
		return "quiz"
	case ShowingFeedback:
		return "feedback"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Renderer is told which module's visualization to show.
type Renderer interface {
	SetActiveModule(id catalog.ModuleID)
}

// Feedback is the verdict on the last answer.
type Feedback struct {
	Correct bool
	Message string
}

// Options tunes the controller's delays.
type Options struct {
	GraceDelay    time.Duration
	FeedbackDelay time.Duration
}

// Controller owns the session state. It is not safe for concurrent use;
// the bubbletea update loop is its only caller. Deferred work is returned
// as tea.Cmd and comes back through Update.
type Controller struct {
	catalog  *catalog.Catalog
	narrator narration.Narrator
	output   audio.Output
	renderer Renderer
	logger   zerolog.Logger
	opts     Options

	active        catalog.ModuleID
	narrating     bool
	ended         bool
	sidebarOpen   bool
	points        int
	completed     map[catalog.ModuleID]bool
	quizVisible   bool
	questionIndex int
	correctCount  int
	feedback      *Feedback

	handle audio.Handle
	cancel context.CancelFunc
	epoch  uint64
}

// New creates a controller positioned on the catalog's first module.
// renderer may be nil.
func New(cat *catalog.Catalog, narrator narration.Narrator, out audio.Output, renderer Renderer, opts Options, logger zerolog.Logger) *Controller {
	if opts.GraceDelay <= 0 {
		opts.GraceDelay = DefaultGraceDelay
	}
	if opts.FeedbackDelay <= 0 {
		opts.FeedbackDelay = DefaultFeedbackDelay
	}

	c := &Controller{
		catalog:     cat,
		narrator:    narrator,
		output:      out,
		renderer:    renderer,
		logger:      logger.With().Str("component", "lesson").Logger(),
		opts:        opts,
		sidebarOpen: true,
		completed:   make(map[catalog.ModuleID]bool),
	}
	c.active = cat.First().ID
	if renderer != nil {
		renderer.SetActiveModule(c.active)
	}
	return c
}

// SelectModule makes id the active module. Any narration is stopped and
// the quiz is reset; points and completions are kept. Selecting the active
// module again performs the same reset.
func (c *Controller) SelectModule(id catalog.ModuleID) error {
	if !c.catalog.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownModule, id)
	}

	c.stopNarration()
	c.epoch++
	c.narrating = false
	c.ended = false
	c.hideQuiz()
	c.active = id

	if c.renderer != nil {
		c.renderer.SetActiveModule(id)
	}
	c.logger.Info().Str("module", string(id)).Uint64("epoch", c.epoch).Msg("Module selected")
	return nil
}

// StartLecture begins narrating the active module's lecture. It returns
// nil when narration is already active.
func (c *Controller) StartLecture() tea.Cmd {
	if c.narrating {
		return nil
	}
	mod, err := c.catalog.Get(c.active)
	if err != nil {
		return nil
	}

	c.stopNarration()
	c.epoch++
	c.hideQuiz()
	c.narrating = true
	c.ended = false

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	epoch := c.epoch
	narrator, out := c.narrator, c.output
	text := mod.Lecture

	c.logger.Info().Str("module", string(mod.ID)).Uint64("epoch", epoch).Msg("Lecture requested")

	return func() tea.Msg {
		if narrator == nil || out == nil {
			return NarrationFailedMsg{Epoch: epoch, Err: narration.ErrProviderUnavailable}
		}
		if err := out.Resume(); err != nil {
			return NarrationFailedMsg{Epoch: epoch, Err: err}
		}
		h, err := narrator.Narrate(ctx, text, out)
		if err != nil {
			return NarrationFailedMsg{Epoch: epoch, Err: err}
		}
		if h == nil {
			return NarrationFailedMsg{Epoch: epoch, Err: errNoHandle}
		}
		return NarrationStartedMsg{Epoch: epoch, Handle: h}
	}
}

// Update applies a deferred message and returns any follow-up command.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NarrationStartedMsg:
		if msg.Epoch != c.epoch || !c.narrating || c.handle != nil {
			msg.Handle.Stop()
			return nil
		}
		c.handle = msg.Handle
		return waitForEnd(msg.Epoch, msg.Handle)

	case NarrationEndedMsg:
		if msg.Epoch != c.epoch || msg.Handle != c.handle || c.ended {
			return nil
		}
		c.ended = true
		epoch := c.epoch
		return tea.Tick(c.opts.GraceDelay, func(time.Time) tea.Msg {
			return QuizRevealMsg{Epoch: epoch}
		})

	case QuizRevealMsg:
		if msg.Epoch != c.epoch || !c.narrating {
			return nil
		}
		c.finishNarration()
		c.showQuiz()
		c.logger.Info().Str("module", string(c.active)).Msg("Quiz revealed")
		return nil

	case NarrationFailedMsg:
		if msg.Epoch != c.epoch || !c.narrating {
			return nil
		}
		c.logger.Warn().Err(msg.Err).Str("module", string(c.active)).Msg("Narration failed, continuing to quiz")
		c.stopNarration()
		c.finishNarration()
		c.showQuiz()
		return nil

	case FeedbackElapsedMsg:
		if msg.Epoch != c.epoch || c.feedback == nil {
			return nil
		}
		c.feedback = nil
		c.advance()
		return nil
	}
	return nil
}

// AnswerQuiz scores option against the current question and returns the
// command that ends the feedback period.
func (c *Controller) AnswerQuiz(option int) (tea.Cmd, error) {
	if !c.quizVisible {
		return nil, ErrQuizHidden
	}
	if c.feedback != nil {
		return nil, ErrFeedbackPending
	}
	q, ok := c.Question()
	if !ok {
		return nil, ErrQuizHidden
	}
	if option < 0 || option >= len(q.Options) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidOption, option, len(q.Options))
	}

	if option == q.Correct {
		c.correctCount++
		c.points += AnswerAward
		c.feedback = &Feedback{Correct: true, Message: CorrectMessage}
	} else {
		c.feedback = &Feedback{Correct: false, Message: IncorrectMessage}
	}

	c.logger.Debug().
		Str("module", string(c.active)).
		Int("question", c.questionIndex).
		Bool("correct", c.feedback.Correct).
		Msg("Answer scored")

	epoch := c.epoch
	return tea.Tick(c.opts.FeedbackDelay, func(time.Time) tea.Msg {
		return FeedbackElapsedMsg{Epoch: epoch}
	}), nil
}

// Close stops any narration. Used on quit.
func (c *Controller) Close() {
	c.stopNarration()
	c.epoch++
	c.narrating = false
	c.ended = false
}

// ActiveModule returns the active module id.
func (c *Controller) ActiveModule() catalog.ModuleID { return c.active }

// Module returns the active module's content.
func (c *Controller) Module() catalog.Module {
	m, _ := c.catalog.Get(c.active)
	return m
}

// Catalog returns the content the session runs over.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Narrating reports whether a lecture is playing or about to reveal the quiz.
func (c *Controller) Narrating() bool { return c.narrating }

func (c *Controller) QuizVisible() bool { return c.quizVisible }

func (c *Controller) QuestionIndex() int { return c.questionIndex }

func (c *Controller) CorrectCount() int { return c.correctCount }

func (c *Controller) Points() int { return c.points }

// Epoch is the generation deferred messages are checked against.
func (c *Controller) Epoch() uint64 { return c.epoch }

func (c *Controller) SidebarOpen() bool { return c.sidebarOpen }

// ToggleSidebar opens or closes the module list.
func (c *Controller) ToggleSidebar() { c.sidebarOpen = !c.sidebarOpen }

// Feedback returns the verdict being shown, or nil.
func (c *Controller) Feedback() *Feedback {
	if c.feedback == nil {
		return nil
	}
	f := *c.feedback
	return &f
}

// Question returns the current question while the quiz is visible.
func (c *Controller) Question() (catalog.Question, bool) {
	if !c.quizVisible {
		return catalog.Question{}, false
	}
	quiz := c.Module().Quiz
	if c.questionIndex < 0 || c.questionIndex >= len(quiz) {
		return catalog.Question{}, false
	}
	return quiz[c.questionIndex], true
}

// Completed reports whether id has been passed.
func (c *Controller) Completed(id catalog.ModuleID) bool { return c.completed[id] }

// CompletedCount returns the number of passed modules.
func (c *Controller) CompletedCount() int { return len(c.completed) }

// GlobalProgress is the passed fraction of the catalog, in [0,1].
func (c *Controller) GlobalProgress() float64 {
	total := c.catalog.Len()
	if total == 0 {
		return 0
	}
	return float64(len(c.completed)) / float64(total)
}

// Phase derives the session phase from the flags.
func (c *Controller) Phase() Phase {
	switch {
	case c.narrating && c.ended:
		return AwaitingQuiz
	case c.narrating:
		return Narrating
	case c.feedback != nil:
		return ShowingFeedback
	case c.quizVisible:
		return QuizActive
	}
	return Idle
}

func (c *Controller) advance() {
	if c.questionIndex+1 < len(c.Module().Quiz) {
		c.questionIndex++
		return
	}

	if c.correctCount >= PassThreshold {
		c.completed[c.active] = true
		c.points += CompletionBonus
		c.logger.Info().
			Str("module", string(c.active)).
			Int("correct", c.correctCount).
			Int("points", c.points).
			Msg("Module passed")
	} else {
		c.logger.Info().
			Str("module", string(c.active)).
			Int("correct", c.correctCount).
			Msg("Module not passed")
	}
	c.hideQuiz()
}

func (c *Controller) showQuiz() {
	c.quizVisible = true
	c.questionIndex = 0
	c.correctCount = 0
	c.feedback = nil
}

func (c *Controller) hideQuiz() {
	c.quizVisible = false
	c.questionIndex = 0
	c.correctCount = 0
	c.feedback = nil
}

func (c *Controller) finishNarration() {
	c.narrating = false
	c.ended = false
	c.handle = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// stopNarration halts and drops the current handle and cancels any
// synthesis still in flight.
func (c *Controller) stopNarration() {
	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func waitForEnd(epoch uint64, h audio.Handle) tea.Cmd {
	return func() tea.Msg {
		<-h.Done()
		return NarrationEndedMsg{Epoch: epoch, Handle: h}
	}
}
