package commands

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/J3rry320/mdtree/internal/build"
	"github.com/J3rry320/mdtree/internal/config"
	"github.com/J3rry320/mdtree/internal/logger"
	"github.com/J3rry320/mdtree/internal/state"
	"github.com/J3rry320/mdtree/internal/styles"
	"github.com/J3rry320/mdtree/internal/tui"
)

// Build renders the source directory into the output directory
func Build(args []string) {
	var opts optionFlags
	var source, output string
	var force, verbose bool

	fs := pflag.NewFlagSet("build", pflag.ContinueOnError)
	fs.StringVarP(&source, "source", "s", "", "source directory (overrides config)")
	fs.StringVarP(&output, "output", "o", "", "output directory (overrides config)")
	fs.BoolVarP(&force, "force", "f", false, "render unchanged files too")
	fs.BoolVarP(&verbose, "verbose", "v", false, "stream the build log to stderr instead of showing progress")
	opts.register(fs)
	if !parseFlags(fs, args, "Usage: mdtree build [flags]") {
		return
	}

	cfg := loadConfig(&opts)
	if source != "" {
		cfg.SourceDir = source
	}
	if output != "" {
		cfg.OutputDir = output
	}
	if err := cfg.ExpandPaths(); err != nil {
		fail("Failed to expand paths", err)
	}

	log := logger.Discard()
	switch {
	case verbose:
		writers := []io.Writer{os.Stderr}
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err == nil {
				defer f.Close()
				writers = append(writers, f)
			}
		}
		log = logger.NewMultiLogger(writers...)
	case cfg.LogFile != "":
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile)
		if err == nil {
			defer cleanup()
			log = l
		}
	}
	log.ConfigLoaded(cfg.SourceDir, cfg.OutputDir, cfg.MaxNestingLevel)

	statePath := config.StateFilePath()
	st, err := state.Load(statePath)
	if err != nil {
		log.StateError("load", err)
		fmt.Println(styles.WarningStyle.Render("⚠ Starting from empty state: " + err.Error()))
		st = state.NewState()
	}

	builder := build.NewBuilder(cfg, st, log)

	if verbose {
		result, err := builder.Build(force)
		if err != nil {
			fail("Build failed", err)
		}
		if err := st.Save(statePath); err != nil {
			log.StateError("save", err)
			fail("Error saving state", err)
		}
		if len(result.Errors) > 0 {
			fmt.Println(styles.ErrorStyle.Render("✗ " + result.String()))
			os.Exit(1)
		}
		fmt.Println(styles.SuccessStyle.Render("✓ " + result.String()))
		return
	}

	m := tui.InitBuildModel(cfg.SourceDir)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	done := make(chan *build.Result, 1)
	go func() {
		r, err := builder.Build(force)
		done <- r
		p.Send(tui.BuildMsg{Result: r, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		fail("Error", err)
	}

	// Quitting early still lets the build finish so the state stays in step
	// with the written pages
	result := <-done

	if err := st.Save(statePath); err != nil {
		log.StateError("save", err)
		fail("Error saving state", err)
	}

	if result == nil || len(result.Errors) > 0 {
		os.Exit(1)
	}
}
