package commands

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/J3rry320/mdtree/internal/markdown"
	"github.com/J3rry320/mdtree/internal/tui"
)

// Browse opens the interactive node browser for one document
func Browse(args []string) {
	var opts optionFlags

	fs := pflag.NewFlagSet("browse", pflag.ContinueOnError)
	opts.register(fs)
	if !parseFlags(fs, args, "Usage: mdtree browse [flags] <file>") {
		return
	}

	// stdin is reserved for the keyboard
	if fs.NArg() != 1 {
		fail("Invalid arguments", errors.New("browse takes exactly one file"))
	}

	cfg := loadConfig(&opts)
	path := fs.Arg(0)

	m := tui.InitBrowseModel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(os.Stdin))

	go func() {
		text, err := readSource(path)
		if err != nil {
			p.Send(tui.BrowseMsg{Err: err})
			return
		}
		_, body, _ := markdown.SplitFrontMatter(text)
		nodes, err := markdown.Parse(body, cfg.ParseOptions())
		p.Send(tui.BrowseMsg{Data: &tui.BrowseData{Path: path, Nodes: nodes}, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		fail("Error", err)
	}
}
