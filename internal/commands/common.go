package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/J3rry320/mdtree/internal/config"
	"github.com/J3rry320/mdtree/internal/markdown"
	"github.com/J3rry320/mdtree/internal/styles"
)

// optionFlags overrides the configured parser options for one run
type optionFlags struct {
	langPrefix string
	linkTarget string
	noSanitize bool
	maxNesting int
}

func (o *optionFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.langPrefix, "lang-prefix", "", "class prefix for code fence languages")
	fs.StringVar(&o.linkTarget, "link-target", "", "target for links: _blank, _self, _parent or _top")
	fs.BoolVar(&o.noSanitize, "no-sanitize", false, "pass raw HTML in the source through unescaped")
	fs.IntVar(&o.maxNesting, "max-nesting", 0, "maximum list nesting level")
}

// apply copies set flags over cfg
func (o *optionFlags) apply(cfg *config.Config) {
	if o.langPrefix != "" {
		cfg.LangPrefix = o.langPrefix
	}
	if o.linkTarget != "" {
		cfg.LinkTarget = o.linkTarget
	}
	if o.noSanitize {
		cfg.SanitizeHTML = markdown.Bool(false)
	}
	if o.maxNesting != 0 {
		cfg.MaxNestingLevel = o.maxNesting
	}
}

// parseFlags parses args into fs. It returns false when help was shown.
func parseFlags(fs *pflag.FlagSet, args []string, usage string) bool {
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\nFlags:\n%s", usage, fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return false
		}
		fail("Invalid arguments", err)
	}
	return true
}

// loadConfig loads the config file and applies flag overrides
func loadConfig(flags *optionFlags) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fail("Failed to load config", err)
	}
	if flags != nil {
		flags.apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		fail("Invalid options", err)
	}
	return cfg
}

// readSource reads a file, or stdin when path is empty or "-"
func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput writes to a file, or stdout when path is empty or "-"
func writeOutput(path, content string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(os.Stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func fail(msg string, err error) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+msg+": "+err.Error()))
	os.Exit(1)
}
