package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorCyan    = lipgloss.Color("#06b6d4")
	ColorSky     = lipgloss.Color("#38bdf8")
	ColorGreen   = lipgloss.Color("#22c55e")
	ColorRed     = lipgloss.Color("#ef4444")
	ColorYellow  = lipgloss.Color("#facc15")
	ColorGray    = lipgloss.Color("#64748b")
	ColorDimGray = lipgloss.Color("#334155")
	ColorWhite   = lipgloss.Color("#f8fafc")
	ColorPanel   = lipgloss.Color("#0f172a")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSky)

	XPStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGray)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	ConsoleStyle = lipgloss.NewStyle().
			Foreground(ColorSky)

	ConsoleActiveStyle = lipgloss.NewStyle().
				Foreground(ColorCyan).
				Bold(true)

	SceneStyle = lipgloss.NewStyle().
			Foreground(ColorSky)

	AvatarStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	NameplateStyle = lipgloss.NewStyle().
			Foreground(ColorSky).
			Bold(true)

	QuestionStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	OptionStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	OptionKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	CorrectStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	IncorrectStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)
)

// Accent returns a bold style in a module's display color, falling back to
// cyan when the module has none.
func Accent(color string) lipgloss.Style {
	if color == "" {
		return SelectedStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}
