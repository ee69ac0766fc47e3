package diff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"gopkg.in/yaml.v3"

	"github.com/J3rry320/mdtree/internal/logger"
	"github.com/J3rry320/mdtree/internal/markdown"
	"github.com/J3rry320/mdtree/internal/render"
)

// Format represents what is compared between the two documents
type Format int

const (
	// FormatHTML diffs the rendered HTML (default)
	FormatHTML Format = iota
	// FormatTree diffs the YAML dump of the node trees
	FormatTree
)

// ParseFormat maps a flag value to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "html":
		return FormatHTML, nil
	case "tree", "yaml":
		return FormatTree, nil
	default:
		return FormatHTML, fmt.Errorf("unsupported diff format '%s': must be one of: html, tree", s)
	}
}

// diffContainer pins the container id so only content differs
var diffContainer = render.ContainerOptions{ID: "mdtree-diff"}

// Differ compares the renderings of two documents
type Differ struct {
	opts   markdown.Options
	format Format
	log    *logger.Logger
}

// NewDiffer creates a differ. A nil logger discards front matter warnings.
func NewDiffer(opts markdown.Options, format Format, log *logger.Logger) *Differ {
	if log == nil {
		log = logger.Discard()
	}
	return &Differ{
		opts:   opts,
		format: format,
		log:    log,
	}
}

// Generate returns the unified diff of both renderings formatted for the
// terminal, empty when they match
func (d *Differ) Generate(oldPath, newPath string) (string, error) {
	unified, err := d.Unified(oldPath, newPath)
	if err != nil {
		return "", err
	}
	if unified == "" {
		return "", nil
	}
	return Pretty(unified), nil
}

// Unified returns the plain unified diff, empty when the renderings match
func (d *Differ) Unified(oldPath, newPath string) (string, error) {
	oldText, err := d.renderFile(oldPath)
	if err != nil {
		return "", err
	}
	newText, err := d.renderFile(newPath)
	if err != nil {
		return "", err
	}

	oldName := filepath.Base(oldPath)
	newName := filepath.Base(newPath)
	edits := myers.ComputeEdits(span.URIFromPath(oldName), oldText, newText)
	if len(edits) == 0 {
		return "", nil
	}
	return fmt.Sprint(gotextdiff.ToUnified(oldName, newName, oldText, edits)), nil
}

// Pretty wraps a unified diff in a diff fence and renders it with glamour
func Pretty(unified string) string {
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		// Fallback to plain diff if glamour fails
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}

	return rendered
}

func (d *Differ) renderFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Front matter is metadata, not content. A broken block is diffed as
	// part of the body.
	_, body, err := markdown.SplitFrontMatter(string(content))
	if err != nil {
		d.log.FrontMatterError(path, err)
	}

	nodes, err := markdown.Parse(body, d.opts)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	switch d.format {
	case FormatHTML:
		return render.HTML(nodes, diffContainer), nil
	case FormatTree:
		data, err := yaml.Marshal(nodes)
		if err != nil {
			return "", fmt.Errorf("failed to dump %s: %w", path, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported diff format: %d", d.format)
	}
}
