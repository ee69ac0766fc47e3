package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/J3rry320/mdtree/internal/config"
	"github.com/J3rry320/mdtree/internal/logger"
	"github.com/J3rry320/mdtree/internal/markdown"
	"github.com/J3rry320/mdtree/internal/render"
	"github.com/J3rry320/mdtree/internal/state"
)

// Builder renders a directory of markdown files into HTML pages
type Builder struct {
	config *config.Config
	state  *state.State
	log    *logger.Logger
	parse  render.ParseFunc
}

// NewBuilder creates a new builder instance
func NewBuilder(cfg *config.Config, st *state.State, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.Discard()
	}
	return &Builder{
		config: cfg,
		state:  st,
		log:    log,
		parse:  markdown.Parse,
	}
}

// Result represents the result of a build
type Result struct {
	FilesRendered int
	FilesSkipped  int
	FilesRemoved  int
	// Fallbacks lists sources that failed to parse and were written as
	// escaped raw text
	Fallbacks []string
	Errors    []error
	StartTime time.Time
	EndTime   time.Time
}

// fingerprint covers every setting that changes page output
type fingerprint struct {
	Options   markdown.Options
	Container render.ContainerOptions
}

// Build renders every changed source file. With force set, unchanged files
// are rendered too. Outputs of sources that no longer exist are removed.
func (b *Builder) Build(force bool) (*Result, error) {
	result := &Result{
		StartTime: time.Now(),
	}
	b.log.BuildStarted(b.config.SourceDir, b.config.OutputDir)

	opts := b.config.ParseOptions()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	fp, err := state.Fingerprint(fingerprint{Options: opts, Container: b.config.ContainerOptions()})
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint options: %w", err)
	}
	if fp != b.state.Options {
		force = true
		b.state.Options = fp
	}

	files, err := ScanDirectory(b.config.SourceDir, ".md", b.config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", b.config.SourceDir, err)
	}

	for _, src := range files {
		out, err := b.OutputPath(src)
		if err != nil {
			result.Errors = append(result.Errors, err)
			b.log.FileError(src, err)
			continue
		}

		if !force {
			changed, err := b.state.HasChanged(src)
			if err != nil {
				result.Errors = append(result.Errors, err)
				b.log.FileError(src, err)
				continue
			}
			if !changed {
				result.FilesSkipped++
				b.log.Skipped(src, "unchanged")
				continue
			}
		}

		nodes, err := b.renderFile(src, out, opts, result)
		if err != nil {
			result.Errors = append(result.Errors, err)
			b.log.FileError(src, err)
			continue
		}
		if err := b.state.Update(src, out, nodes); err != nil {
			result.Errors = append(result.Errors, err)
			b.log.StateError("update", err)
			continue
		}
		result.FilesRendered++
		b.log.FileRendered(src, out, nodes)
	}

	for _, stale := range b.state.Prune(files) {
		if err := os.Remove(stale); err != nil && !os.IsNotExist(err) {
			result.Errors = append(result.Errors, err)
			b.log.FileError(stale, err)
			continue
		}
		result.FilesRemoved++
	}

	result.EndTime = time.Now()
	b.log.BuildCompleted(result.FilesRendered, result.FilesSkipped, len(result.Errors), result.EndTime.Sub(result.StartTime))
	return result, nil
}

// renderFile writes one page and returns its top-level node count
func (b *Builder) renderFile(src, out string, opts markdown.Options, result *Result) (int, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", src, err)
	}

	fm, body, err := markdown.SplitFrontMatter(string(data))
	if err != nil {
		b.log.FrontMatterError(src, err)
	}
	title := fm.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}

	doc, nodes, err := render.DocumentWith(b.parse, body, opts, b.config.ContainerOptions())
	if err != nil {
		b.log.ParseFailed(src, err)
		result.Fallbacks = append(result.Fallbacks, src)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(render.Page(title, fm.Lang, doc)), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", out, err)
	}
	return len(nodes), nil
}

// OutputPath maps a source file to its page under the output directory
func (b *Builder) OutputPath(src string) (string, error) {
	rel, err := filepath.Rel(b.config.SourceDir, src)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", src, err)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
	return filepath.Join(b.config.OutputDir, rel), nil
}

// ScanDirectory scans a directory for files with given extension, skipping
// anything whose name or relative path matches an exclude pattern
func ScanDirectory(dir string, ext string, exclude []string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path != dir && shouldExclude(dir, path, exclude) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() && filepath.Ext(path) == ext {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

func shouldExclude(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// String returns a human-readable summary of the build result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Build complete: %d files rendered, %d unchanged, %d removed, %d errors (took %v)",
		r.FilesRendered,
		r.FilesSkipped,
		r.FilesRemoved,
		len(r.Errors),
		duration.Round(time.Millisecond),
	)
}
