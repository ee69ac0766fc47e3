package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/J3rry320/mdtree/internal/diff"
	"github.com/J3rry320/mdtree/internal/logger"
	"github.com/J3rry320/mdtree/internal/styles"
)

// Diff shows how the rendering of one document differs from another
func Diff(args []string) {
	var opts optionFlags
	var format string
	var plain bool

	fs := pflag.NewFlagSet("diff", pflag.ContinueOnError)
	fs.StringVarP(&format, "format", "f", "html", "what to compare: html or tree")
	fs.BoolVar(&plain, "plain", false, "print the unified diff without styling")
	opts.register(fs)
	if !parseFlags(fs, args, "Usage: mdtree diff [flags] <old.md> <new.md>") {
		return
	}
	if fs.NArg() != 2 {
		fail("Invalid arguments", errors.New("diff takes exactly two files"))
	}

	cfg := loadConfig(&opts)

	f, err := diff.ParseFormat(format)
	if err != nil {
		fail("Invalid arguments", err)
	}

	differ := diff.NewDiffer(cfg.ParseOptions(), f, logger.New(os.Stderr))

	var out string
	if plain {
		out, err = differ.Unified(fs.Arg(0), fs.Arg(1))
	} else {
		out, err = differ.Generate(fs.Arg(0), fs.Arg(1))
	}
	if err != nil {
		fail("Failed to diff", err)
	}
	if out == "" {
		fmt.Println(styles.SuccessStyle.Render("✓ No differences"))
		return
	}
	fmt.Print(out)
}
