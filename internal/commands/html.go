package commands

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/J3rry320/mdtree/internal/markdown"
	"github.com/J3rry320/mdtree/internal/render"
	"github.com/J3rry320/mdtree/internal/styles"
)

// HTML renders one document to HTML
func HTML(args []string) {
	var opts optionFlags
	var output, id string
	var page, article bool

	fs := pflag.NewFlagSet("html", pflag.ContinueOnError)
	fs.StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	fs.StringVar(&id, "id", "", "container id (random when empty)")
	fs.BoolVar(&article, "article", false, "wrap the document in <article>")
	fs.BoolVar(&page, "page", false, "emit a standalone HTML page")
	opts.register(fs)
	if !parseFlags(fs, args, "Usage: mdtree html [flags] [file]") {
		return
	}

	cfg := loadConfig(&opts)

	text, err := readSource(fs.Arg(0))
	if err != nil {
		fail("Failed to read input", err)
	}

	fm, body, fmErr := markdown.SplitFrontMatter(text)
	if fmErr != nil {
		fmt.Fprintln(os.Stderr, styles.WarningStyle.Render("⚠ Ignoring front matter: "+fmErr.Error()))
	}

	container := cfg.ContainerOptions()
	container.ID = id
	if article {
		container.Article = true
	}

	out, renderErr := render.Document(body, cfg.ParseOptions(), container)
	if page {
		out = render.Page(fm.Title, fm.Lang, out)
	}
	if err := writeOutput(output, out); err != nil {
		fail("Failed to write output", err)
	}

	// The fallback was still written so the caller has something to show
	if renderErr != nil {
		fail("Rendered as plain text", renderErr)
	}
}
