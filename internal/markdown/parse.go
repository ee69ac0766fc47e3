// Package markdown turns markdown text into an ordered sequence of Nodes.
//
// It supports a fixed subset of markdown: headings with {#id} anchors,
// paragraphs, one-node-per-line lists, task items and blockquotes, fenced
// code, pipe tables, standalone images, definition lists and horizontal
// rules, plus inline math, strikethrough, super/subscript, highlight,
// emphasis, code spans, links and images.
package markdown

import (
	"regexp"
	"strings"
)

var lineBreak = regexp.MustCompile(`\r\n|\n`)

// Parse converts markdown text into top-level nodes in source order.
//
// Malformed markdown never fails: unknown constructs become paragraphs and
// broken tables keep what they can. Lines nested deeper than
// MaxNestingLevel become error nodes. Only unusable options return an
// error, wrapping ErrInvalidOptions.
func Parse(text string, opts Options) ([]*Node, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	text = strings.TrimSpace(text)
	if text == "" {
		return []*Node{}, nil
	}

	s := newScanner(lineBreak.Split(text, -1), opts)
	return s.run(), nil
}

// MustParse is like Parse but panics on invalid options
func MustParse(text string, opts Options) []*Node {
	nodes, err := Parse(text, opts)
	if err != nil {
		panic(err)
	}
	return nodes
}
