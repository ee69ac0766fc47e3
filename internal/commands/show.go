package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/J3rry320/mdtree/internal/markdown"
	"github.com/J3rry320/mdtree/internal/render"
	"github.com/J3rry320/mdtree/internal/styles"
)

// Show renders one document for the terminal
func Show(args []string) {
	var opts optionFlags
	var width int

	fs := pflag.NewFlagSet("show", pflag.ContinueOnError)
	fs.IntVarP(&width, "width", "w", 80, "wrap width")
	opts.register(fs)
	if !parseFlags(fs, args, "Usage: mdtree show [flags] [file]") {
		return
	}

	cfg := loadConfig(&opts)

	text, err := readSource(fs.Arg(0))
	if err != nil {
		fail("Failed to read input", err)
	}

	fm, body, _ := markdown.SplitFrontMatter(text)
	nodes, err := markdown.Parse(body, cfg.ParseOptions())
	if err != nil {
		fail("Failed to parse", err)
	}

	if fm.Title != "" {
		fmt.Println(styles.TitleStyle.Render(fm.Title))
		if fm.Description != "" {
			fmt.Println(styles.DimStyle.Render(fm.Description))
		}
		fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Border)).Render("════════"))
		fmt.Println()
	}
	fmt.Print(render.Terminal(nodes, width))
}
