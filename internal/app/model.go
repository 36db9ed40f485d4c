package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwulff/holodeck/internal/lesson"
	"github.com/jwulff/holodeck/internal/presence"
	"github.com/jwulff/holodeck/internal/scene"
	"github.com/jwulff/holodeck/internal/ui"
	"github.com/rs/zerolog"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	frameInterval = time.Second / 30
	errorTimeout  = 5 * time.Second

	// Frames further apart than this (a suspended terminal) advance by it.
	maxFrameStep = 250 * time.Millisecond
)

// Console bar texts.
const (
	TransmittingText = "Transmission in progress..."
	StandingByText   = "Standing by. Press space to begin holographic instruction."
)

// Model is the root bubbletea model for the holodeck TUI.
type Model struct {
	// Session
	lesson   *lesson.Controller
	presence *presence.Controller
	holodeck *scene.Holodeck
	logger   zerolog.Logger

	// Widgets
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	// UI state
	cursor    int
	width     int
	height    int
	lastFrame time.Time

	// Errors
	errorMessage string
}

// New creates a Model over a session controller and the holodeck it
// renders to. The controller should have been created with holodeck as its
// renderer.
func New(ctrl *lesson.Controller, holodeck *scene.Holodeck, logger zerolog.Logger) Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(ui.SpinnerStyle),
	)
	bar := progress.New(
		progress.WithSolidFill(string(ui.ColorCyan)),
		progress.WithoutPercentage(),
	)

	return Model{
		lesson:   ctrl,
		presence: presence.New(),
		holodeck: holodeck,
		logger:   logger.With().Str("component", "tui").Logger(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		progress: bar,
		cursor:   max(0, ctrl.Catalog().Index(ctrl.ActiveModule())),
	}
}

// Init starts the animation loop and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(), m.spinner.Tick)
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}

func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(errorTimeout, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FrameMsg:
		m.advance(msg.Time)
		return m, frameCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ClearTransientErrorMsg:
		m.errorMessage = ""
		return m, nil

	case lesson.NarrationFailedMsg:
		var cmd tea.Cmd
		if msg.Epoch == m.lesson.Epoch() && m.lesson.Narrating() {
			m.errorMessage = "Narration unavailable, skipping to assessment"
			cmd = clearTransientErrorCmd()
		}
		return m, tea.Batch(m.lesson.Update(msg), cmd)

	case lesson.NarrationStartedMsg, lesson.NarrationEndedMsg,
		lesson.QuizRevealMsg, lesson.FeedbackElapsedMsg:
		return m, m.lesson.Update(msg)
	}

	return m, nil
}

// advance moves the instructor and the scene to now.
func (m *Model) advance(now time.Time) {
	var dt time.Duration
	if !m.lastFrame.IsZero() {
		dt = min(now.Sub(m.lastFrame), maxFrameStep)
	}
	m.lastFrame = now

	m.presence.Tick(dt.Seconds(), m.lesson.Narrating())
	m.holodeck.SetAutoRotate(!m.lesson.Narrating() && !m.lesson.QuizVisible())
	m.holodeck.Advance(dt.Seconds())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.lesson.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Sidebar):
		m.lesson.ToggleSidebar()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.lesson.SidebarOpen() && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.lesson.SidebarOpen() && m.cursor < m.lesson.Catalog().Len()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if !m.lesson.SidebarOpen() {
			return m, nil
		}
		id := m.lesson.Catalog().IDs()[m.cursor]
		if err := m.lesson.SelectModule(id); err != nil {
			return m, m.showError(err.Error())
		}
		return m, nil

	case key.Matches(msg, m.keys.Lecture):
		return m, m.lesson.StartLecture()

	case key.Matches(msg, m.keys.Answer):
		option := int(msg.String()[0] - '1')
		cmd, err := m.lesson.AnswerQuiz(option)
		switch {
		case errors.Is(err, lesson.ErrInvalidOption):
			return m, m.showError(fmt.Sprintf("No option %d for this question", option+1))
		case err != nil:
			// Answer keys outside an open question are ignored.
			return m, nil
		}
		return m, cmd
	}

	return m, nil
}

func (m *Model) showError(text string) tea.Cmd {
	m.errorMessage = text
	m.logger.Debug().Str("error", text).Msg("Transient error")
	return clearTransientErrorCmd()
}

// Layout

func (m Model) sidebarWidth() int {
	if !m.lesson.SidebarOpen() {
		return 0
	}
	return max(20, min(32, m.width/3))
}

func (m Model) stageWidth() int {
	if sw := m.sidebarWidth(); sw > 0 {
		return max(10, m.width-sw-1)
	}
	return m.width
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	divider := ui.DividerStyle.Render(strings.Repeat("─", m.width))

	var bottom []string
	if m.lesson.QuizVisible() {
		bottom = m.renderQuiz()
	} else {
		bottom = m.renderConsole()
	}
	if m.errorMessage != "" {
		bottom = append(bottom, m.renderErrorBar())
	}
	footer := m.renderFooter()

	fixed := 3 + len(bottom) + lipgloss.Height(footer)
	contentH := max(3, m.height-fixed)

	sections := []string{
		m.renderHeader(),
		divider,
		m.renderMainContent(contentH),
		divider,
	}
	sections = append(sections, bottom...)
	sections = append(sections, footer)

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	mod := m.lesson.Module()
	title := ui.TitleStyle.Render("HOLODECK") +
		ui.DimStyle.Render(" · ") +
		ui.Accent(mod.Color).Render(mod.Title)

	xp := ui.XPStyle.Render(fmt.Sprintf("XP %d", m.lesson.Points()))
	return padRight(title, m.width-lipgloss.Width(xp)) + xp
}

func (m Model) renderMainContent(height int) string {
	stage := m.renderStage(m.stageWidth(), height)

	sideW := m.sidebarWidth()
	if sideW == 0 {
		return stage
	}
	side := m.renderModulePanel(sideW, height)

	divider := ui.DividerStyle.Render("│")

	// Join panels side by side
	sideLines := strings.Split(side, "\n")
	stageLines := strings.Split(stage, "\n")

	var rows []string
	for i := 0; i < height; i++ {
		sl := strings.Repeat(" ", sideW)
		if i < len(sideLines) {
			sl = sideLines[i]
		}
		tl := ""
		if i < len(stageLines) {
			tl = stageLines[i]
		}
		rows = append(rows, sl+divider+tl)
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderModulePanel(width, height int) string {
	cat := m.lesson.Catalog()

	var lines []string
	lines = append(lines, ui.PanelTitleStyle.Render(fmt.Sprintf("MODULES (%d)", cat.Len())))

	for i, mod := range cat.Modules() {
		num := fmt.Sprintf("%2d ", i+1)
		mark := ""
		if m.lesson.Completed(mod.ID) {
			mark = " ✓"
		}
		title := truncateToWidth(mod.Title, width-len(num)-2-lipgloss.Width(mark))

		prefix := "  "
		if i == m.cursor {
			prefix = ui.SelectedStyle.Render("> ")
		}

		var styled string
		if mod.ID == m.lesson.ActiveModule() {
			styled = ui.Accent(mod.Color).Render(num + title)
		} else {
			styled = ui.DimStyle.Render(num) + title
		}
		lines = append(lines, prefix+styled+ui.CompletedStyle.Render(mark))
	}

	lines = append(lines, "")
	percent := int(m.lesson.GlobalProgress()*100 + 0.5)
	lines = append(lines, ui.PanelTitleStyle.Render("GLOBAL MASTERY ")+ui.SelectedStyle.Render(fmt.Sprintf("%d%%", percent)))
	bar := m.progress
	bar.Width = max(4, width-2)
	lines = append(lines, " "+bar.ViewAs(m.lesson.GlobalProgress()))

	// Pad to height
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	// Ensure each line is padded to width
	for i, l := range lines {
		lines[i] = padRight(l, width)
	}

	return strings.Join(lines, "\n")
}

// renderStage draws the scene with the instructor composited over it.
func (m Model) renderStage(width, height int) string {
	sceneRows := strings.Split(m.holodeck.Render(width, height), "\n")

	var avatar []string
	if m.presence.Visible(m.lesson.Narrating()) {
		avatar = presence.Render(m.presence.Pose(), width)
	}

	rows := make([]string, 0, height)
	for y := 0; y < height; y++ {
		base := ""
		if y < len(sceneRows) {
			base = sceneRows[y]
		}
		top := ""
		if y < len(avatar) {
			top = avatar[y]
		}
		rows = append(rows, compose(base, top, width))
	}
	return strings.Join(rows, "\n")
}

// compose overlays the non-blank runes of top onto base and styles each run.
func compose(base, top string, width int) string {
	b := []rune(base)
	t := []rune(top)

	var out strings.Builder
	var run []rune
	runTop := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runTop {
			out.WriteString(ui.AvatarStyle.Render(string(run)))
		} else {
			out.WriteString(ui.SceneStyle.Render(string(run)))
		}
		run = run[:0]
	}

	for x := 0; x < width; x++ {
		r, isTop := ' ', false
		if x < len(b) {
			r = b[x]
		}
		if x < len(t) && t[x] != ' ' {
			r, isTop = t[x], true
		}
		if isTop != runTop {
			flush()
			runTop = isTop
		}
		run = append(run, r)
	}
	flush()
	return out.String()
}

func (m Model) renderConsole() []string {
	mod := m.lesson.Module()
	about := mod.Title
	if mod.Description != "" {
		about += " · " + mod.Description
	}
	about = ui.Accent(mod.Color).Render(truncateToWidth(about, m.width))

	var status string
	if m.lesson.Narrating() {
		status = m.spinner.View() + " " + ui.ConsoleActiveStyle.Render(TransmittingText)
	} else {
		status = ui.ConsoleStyle.Render(StandingByText)
	}
	return []string{about, status}
}

func (m Model) renderQuiz() []string {
	q, ok := m.lesson.Question()
	if !ok {
		return nil
	}
	mod := m.lesson.Module()

	header := ui.Accent(mod.Color).Render("ASSESSMENT") +
		ui.DimStyle.Render(fmt.Sprintf("  question %d/%d", m.lesson.QuestionIndex()+1, len(mod.Quiz)))

	lines := []string{header}
	for _, wl := range wrapText(q.Prompt, max(10, m.width-2)) {
		lines = append(lines, ui.QuestionStyle.Render(wl))
	}
	for i, opt := range q.Options {
		lines = append(lines, ui.OptionKeyStyle.Render(fmt.Sprintf(" [%d] ", i+1))+ui.OptionStyle.Render(opt))
	}

	switch fb := m.lesson.Feedback(); {
	case fb == nil:
		lines = append(lines, ui.DimStyle.Render(fmt.Sprintf("Press 1-%d to answer", len(q.Options))))
	case fb.Correct:
		lines = append(lines, ui.CorrectStyle.Render(fb.Message))
	default:
		lines = append(lines, ui.IncorrectStyle.Render(fb.Message))
	}
	return lines
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("! ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	return m.help.View(m.keys)
}

// Helpers

func padRight(s string, width int) string {
	// Get visible length (ignoring ANSI codes)
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	// Simple truncation for non-styled strings
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
