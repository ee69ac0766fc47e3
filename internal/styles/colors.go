package styles

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
const (
	// Base colors
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	// Accent colors
	Red     = "#FF6188" // Errors, deletions
	Orange  = "#FC9867" // Warnings, inline code
	Yellow  = "#FFD866" // Highlights, marks
	Green   = "#A9DC76" // Success, checked tasks
	Cyan    = "#78DCE8" // Info, blockquotes
	Blue    = "#AB9DF2" // Links
	Magenta = "#FF6188" // Titles, headings

	// UI colors
	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders, separators
)

// ChromaStyle is the chroma style matching the palette
const ChromaStyle = "monokai"

// Common styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	LabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan)).Bold(true)

	// Table/list styles
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Magenta))

	TableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(Border))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Background)).
			Background(lipgloss.Color(Yellow))

	NormalTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Foreground))
)

// Document element styles for the terminal renderer
var (
	HeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	BulletStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow))
	LinkStyle    = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color(Blue))
	MarkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Background)).Background(lipgloss.Color(Yellow))
	CodeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))

	QuoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Cyan)).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(Cyan)).
			PaddingLeft(1)

	CodeBlockStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border)).
			Padding(0, 1)
)
