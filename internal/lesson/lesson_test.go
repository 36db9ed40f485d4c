package lesson

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwulff/holodeck/internal/audio"
	"github.com/jwulff/holodeck/internal/catalog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	stopped int
}

func newFakeHandle() *fakeHandle { return &fakeHandle{done: make(chan struct{})} }

func (h *fakeHandle) Stop() {
	h.mu.Lock()
	h.stopped++
	h.mu.Unlock()
	h.finish()
}

func (h *fakeHandle) finish()               { h.once.Do(func() { close(h.done) }) }
func (h *fakeHandle) Done() <-chan struct{} { return h.done }

func (h *fakeHandle) stops() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

type fakeOutput struct {
	resumes   int
	resumeErr error
}

func (o *fakeOutput) Resume() error {
	o.resumes++
	return o.resumeErr
}
func (o *fakeOutput) Suspend() error                         { return nil }
func (o *fakeOutput) SampleRate() int                        { return 44100 }
func (o *fakeOutput) Play(*audio.Clip) (audio.Handle, error) { return newFakeHandle(), nil }

type fakeNarrator struct {
	handles []*fakeHandle
	err     error
	texts   []string
}

func (n *fakeNarrator) Narrate(_ context.Context, text string, _ audio.Output) (audio.Handle, error) {
	n.texts = append(n.texts, text)
	if n.err != nil {
		return nil, n.err
	}
	h := newFakeHandle()
	n.handles = append(n.handles, h)
	return h, nil
}

func (n *fakeNarrator) last() *fakeHandle { return n.handles[len(n.handles)-1] }

type fakeRenderer struct{ ids []catalog.ModuleID }

func (r *fakeRenderer) SetActiveModule(id catalog.ModuleID) { r.ids = append(r.ids, id) }

type harness struct {
	c        *Controller
	narrator *fakeNarrator
	output   *fakeOutput
	renderer *fakeRenderer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		narrator: &fakeNarrator{},
		output:   &fakeOutput{},
		renderer: &fakeRenderer{},
	}
	h.c = New(catalog.Builtin(), h.narrator, h.output, h.renderer, Options{
		GraceDelay:    time.Millisecond,
		FeedbackDelay: time.Millisecond,
	}, zerolog.Nop())
	return h
}

// run executes cmd and feeds its message back, returning the follow-up.
func (h *harness) run(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return h.c.Update(cmd())
}

// lectureToQuiz plays a lecture to its natural end and reveals the quiz.
func (h *harness) lectureToQuiz(t *testing.T) {
	t.Helper()
	wait := h.run(h.c.StartLecture())
	require.NotNil(t, wait)
	require.Equal(t, Narrating, h.c.Phase())

	h.narrator.last().finish()
	reveal := h.run(wait)
	require.NotNil(t, reveal)
	require.Equal(t, AwaitingQuiz, h.c.Phase())

	h.run(reveal)
	require.True(t, h.c.QuizVisible())
}

func (h *harness) answer(t *testing.T, option int) {
	t.Helper()
	cmd, err := h.c.AnswerQuiz(option)
	require.NoError(t, err)
	h.run(cmd)
}

func TestNewStartsOnFirstModule(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, catalog.Atom, h.c.ActiveModule())
	assert.Equal(t, []catalog.ModuleID{catalog.Atom}, h.renderer.ids)
	assert.True(t, h.c.SidebarOpen())
	assert.Equal(t, Idle, h.c.Phase())
	assert.Zero(t, h.c.Points())
	assert.Zero(t, h.c.GlobalProgress())
}

func TestSelectUnknownModule(t *testing.T) {
	h := newHarness(t)
	epoch := h.c.Epoch()

	err := h.c.SelectModule("WORMHOLES")
	assert.ErrorIs(t, err, ErrUnknownModule)
	assert.Equal(t, catalog.Atom, h.c.ActiveModule())
	assert.Equal(t, epoch, h.c.Epoch())
}

func TestSelectModuleIsAnIdempotentReset(t *testing.T) {
	h := newHarness(t)
	h.lectureToQuiz(t)

	require.NoError(t, h.c.SelectModule(catalog.Atom))
	require.NoError(t, h.c.SelectModule(catalog.Atom))

	assert.Equal(t, catalog.Atom, h.c.ActiveModule())
	assert.False(t, h.c.Narrating())
	assert.False(t, h.c.QuizVisible())
	assert.Zero(t, h.c.QuestionIndex())
	assert.Equal(t, catalog.Atom, h.renderer.ids[len(h.renderer.ids)-1])
}

func TestStartLectureWhileNarratingIsNoop(t *testing.T) {
	h := newHarness(t)

	cmd := h.c.StartLecture()
	require.NotNil(t, cmd)
	epoch := h.c.Epoch()

	assert.Nil(t, h.c.StartLecture())
	assert.Equal(t, epoch, h.c.Epoch())

	h.run(cmd)
	assert.Nil(t, h.c.StartLecture())
	assert.Len(t, h.narrator.handles, 1)
}

func TestLectureRevealsQuizAfterNarration(t *testing.T) {
	h := newHarness(t)
	h.lectureToQuiz(t)

	assert.Equal(t, 1, h.output.resumes)
	assert.Equal(t, []string{h.c.Module().Lecture}, h.narrator.texts)
	assert.False(t, h.c.Narrating())
	assert.Equal(t, QuizActive, h.c.Phase())
	assert.Zero(t, h.c.QuestionIndex())

	q, ok := h.c.Question()
	require.True(t, ok)
	assert.Equal(t, h.c.Module().Quiz[0].Prompt, q.Prompt)
}

func TestNarrationFailureFallsThroughToQuiz(t *testing.T) {
	h := newHarness(t)
	h.narrator.err = errors.New("synthesis offline")

	assert.Nil(t, h.run(h.c.StartLecture()))
	assert.False(t, h.c.Narrating())
	assert.True(t, h.c.QuizVisible())
	assert.Zero(t, h.c.QuestionIndex())
}

func TestOutputFailureFallsThroughToQuiz(t *testing.T) {
	h := newHarness(t)
	h.output.resumeErr = errors.New("no audio device")

	h.run(h.c.StartLecture())
	assert.Empty(t, h.narrator.texts)
	assert.True(t, h.c.QuizVisible())
}

func TestNilNarratorFallsThroughToQuiz(t *testing.T) {
	c := New(catalog.Builtin(), nil, nil, nil, Options{}, zerolog.Nop())
	c.Update(c.StartLecture()())
	assert.True(t, c.QuizVisible())
}

func TestSwitchStopsPlayingNarration(t *testing.T) {
	h := newHarness(t)
	wait := h.run(h.c.StartLecture())
	handle := h.narrator.last()

	require.NoError(t, h.c.SelectModule(catalog.Magnetism))
	assert.Equal(t, 1, handle.stops(), "stopped synchronously on switch")

	// The stopped handle's end notification belongs to the old visit.
	assert.Nil(t, h.run(wait))
	assert.False(t, h.c.Narrating())
	assert.False(t, h.c.QuizVisible())
	assert.Equal(t, Idle, h.c.Phase())
}

func TestLateStartIsDiscarded(t *testing.T) {
	h := newHarness(t)
	cmd := h.c.StartLecture()

	require.NoError(t, h.c.SelectModule(catalog.NewtonLaws))
	msg := cmd()

	assert.Nil(t, h.c.Update(msg))
	assert.Equal(t, 1, h.narrator.last().stops(), "stale handle is stopped")
	assert.False(t, h.c.Narrating())
}

func TestLateRevealIsDiscarded(t *testing.T) {
	h := newHarness(t)
	wait := h.run(h.c.StartLecture())
	h.narrator.last().finish()
	reveal := h.run(wait)

	require.NoError(t, h.c.SelectModule(catalog.SolarSystem))
	h.run(reveal)

	assert.False(t, h.c.QuizVisible())
	assert.Equal(t, catalog.SolarSystem, h.c.ActiveModule())
}

func TestLateFailureIsDiscarded(t *testing.T) {
	h := newHarness(t)
	h.narrator.err = errors.New("boom")
	cmd := h.c.StartLecture()

	require.NoError(t, h.c.SelectModule(catalog.DNAStructure))
	h.c.Update(cmd())
	assert.False(t, h.c.QuizVisible())
}

func TestAtomPerfectRun(t *testing.T) {
	h := newHarness(t)
	h.lectureToQuiz(t)

	for i, opt := range []int{1, 2, 2} {
		assert.Equal(t, i, h.c.QuestionIndex())
		h.answer(t, opt)
	}

	assert.Equal(t, 3*AnswerAward+CompletionBonus, h.c.Points())
	assert.True(t, h.c.Completed(catalog.Atom))
	assert.False(t, h.c.QuizVisible())
	assert.Zero(t, h.c.QuestionIndex())
	assert.InDelta(t, 0.1, h.c.GlobalProgress(), 1e-9)
}

func TestAtomFailedRun(t *testing.T) {
	h := newHarness(t)
	h.lectureToQuiz(t)

	for _, opt := range []int{0, 0, 2} {
		h.answer(t, opt)
	}

	assert.Equal(t, AnswerAward, h.c.Points())
	assert.False(t, h.c.Completed(catalog.Atom))
	assert.False(t, h.c.QuizVisible())
	assert.Zero(t, h.c.GlobalProgress())
}

func TestFeedbackShownUntilElapsed(t *testing.T) {
	h := newHarness(t)
	h.lectureToQuiz(t)

	cmd, err := h.c.AnswerQuiz(1)
	require.NoError(t, err)

	fb := h.c.Feedback()
	require.NotNil(t, fb)
	assert.True(t, fb.Correct)
	assert.Equal(t, CorrectMessage, fb.Message)
	assert.Equal(t, ShowingFeedback, h.c.Phase())

	_, err = h.c.AnswerQuiz(0)
	assert.ErrorIs(t, err, ErrFeedbackPending)
	assert.Equal(t, AnswerAward, h.c.Points())

	h.run(cmd)
	assert.Nil(t, h.c.Feedback())
	assert.Equal(t, 1, h.c.QuestionIndex())
}

func TestWrongAnswerFeedback(t *testing.T) {
	h := newHarness(t)
	h.lectureToQuiz(t)

	_, err := h.c.AnswerQuiz(0)
	require.NoError(t, err)
	fb := h.c.Feedback()
	require.NotNil(t, fb)
	assert.False(t, fb.Correct)
	assert.Equal(t, IncorrectMessage, fb.Message)
	assert.Zero(t, h.c.Points())
}

func TestAnswerRejections(t *testing.T) {
	h := newHarness(t)

	_, err := h.c.AnswerQuiz(0)
	assert.ErrorIs(t, err, ErrQuizHidden)

	h.lectureToQuiz(t)
	for _, opt := range []int{-1, 4, 99} {
		_, err := h.c.AnswerQuiz(opt)
		assert.ErrorIs(t, err, ErrInvalidOption)
	}
	assert.Nil(t, h.c.Feedback())
	assert.Zero(t, h.c.Points())
	assert.Zero(t, h.c.CorrectCount())
}

func TestLateFeedbackIsDiscarded(t *testing.T) {
	h := newHarness(t)
	h.lectureToQuiz(t)

	cmd, err := h.c.AnswerQuiz(1)
	require.NoError(t, err)
	require.NoError(t, h.c.SelectModule(catalog.SoundWaves))

	h.run(cmd)
	assert.Zero(t, h.c.QuestionIndex())
	assert.False(t, h.c.QuizVisible())
	assert.Equal(t, AnswerAward, h.c.Points(), "points already earned are kept")
}

func TestRestartLectureDuringQuiz(t *testing.T) {
	h := newHarness(t)
	h.lectureToQuiz(t)
	h.answer(t, 1)
	require.Equal(t, 1, h.c.QuestionIndex())

	cmd := h.c.StartLecture()
	require.NotNil(t, cmd)
	assert.False(t, h.c.QuizVisible(), "quiz hidden while narrating")
	assert.Zero(t, h.c.QuestionIndex())
	assert.True(t, h.c.Narrating())
}

func TestRepeatPassAwardsBonusAgain(t *testing.T) {
	h := newHarness(t)
	for run := 0; run < 2; run++ {
		h.lectureToQuiz(t)
		for _, opt := range []int{1, 2, 2} {
			h.answer(t, opt)
		}
	}

	assert.Equal(t, 2*(3*AnswerAward+CompletionBonus), h.c.Points())
	assert.Equal(t, 1, h.c.CompletedCount())
}

func TestGlobalProgressReachesOne(t *testing.T) {
	h := newHarness(t)
	last := 0.0

	for _, mod := range h.c.Catalog().Modules() {
		require.NoError(t, h.c.SelectModule(mod.ID))
		h.lectureToQuiz(t)
		for _, q := range mod.Quiz {
			h.answer(t, q.Correct)
		}
		p := h.c.GlobalProgress()
		assert.Greater(t, p, last)
		last = p
	}

	assert.InDelta(t, 1.0, h.c.GlobalProgress(), 1e-9)
	assert.Equal(t, h.c.Catalog().Len(), h.c.CompletedCount())
}

func TestToggleSidebar(t *testing.T) {
	h := newHarness(t)
	h.c.ToggleSidebar()
	assert.False(t, h.c.SidebarOpen())
	h.c.ToggleSidebar()
	assert.True(t, h.c.SidebarOpen())
}

func TestCloseStopsNarration(t *testing.T) {
	h := newHarness(t)
	wait := h.run(h.c.StartLecture())
	handle := h.narrator.last()

	h.c.Close()
	assert.Equal(t, 1, handle.stops())
	assert.False(t, h.c.Narrating())
	assert.Nil(t, h.run(wait))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "awaiting-quiz", AwaitingQuiz.String())
	assert.Equal(t, "feedback", ShowingFeedback.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}
