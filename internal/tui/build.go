package tui

import (
	"fmt"
	"html"
	"regexp"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/J3rry320/mdtree/internal/build"
	"github.com/J3rry320/mdtree/internal/styles"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Magenta))
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
)

// buildModel is the Bubble Tea model for the build progress display
type buildModel struct {
	spinner  spinner.Model
	status   string
	complete bool
	result   *build.Result
	err      error
}

// BuildMsg is sent when the build completes
type BuildMsg struct {
	Result *build.Result
	Err    error
}

// InitBuildModel creates a new build progress model
func InitBuildModel(sourceDir string) buildModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return buildModel{
		spinner: s,
		status:  "Rendering " + sourceDir + "...",
	}
}

func (m buildModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case BuildMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m buildModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Build failed: "+m.err.Error()) + "\n"
	}

	r := m.result
	took := styles.DimStyle.Render(fmt.Sprintf("Completed in %v", r.EndTime.Sub(r.StartTime).Round(time.Millisecond)))

	if r.FilesRendered == 0 && r.FilesRemoved == 0 && len(r.Errors) == 0 {
		return styles.SuccessStyle.Render("✓ Nothing to build") + "\n" + took + "\n"
	}

	msg := styles.SuccessStyle.Render(fmt.Sprintf("✓ Rendered %d file(s)", r.FilesRendered))
	if r.FilesSkipped > 0 {
		msg += ", " + styles.DimStyle.Render(fmt.Sprintf("%d unchanged", r.FilesSkipped))
	}
	if r.FilesRemoved > 0 {
		msg += ", " + styles.WarningStyle.Render(fmt.Sprintf("%d removed", r.FilesRemoved))
	}
	if len(r.Errors) > 0 {
		msg += ", " + styles.ErrorStyle.Render(fmt.Sprintf("%d error(s)", len(r.Errors)))
	}
	msg += "\n"
	for _, src := range r.Fallbacks {
		msg += styles.WarningStyle.Render("⚠ "+src+" rendered as plain text") + "\n"
	}
	for _, err := range r.Errors {
		msg += styles.ErrorStyle.Render("✗ "+err.Error()) + "\n"
	}
	return msg + took + "\n"
}

func stripTags(markup string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(markup, ""))
}
