package markdown

import (
	"fmt"
	"regexp"
)

// MaxNestingMessage is the text of the error node emitted for lines
// nested deeper than Options.MaxNestingLevel
const MaxNestingMessage = "Maximum nesting level reached"

var listShapePattern = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s+`)

// indentation counts leading spaces and tabs
func indentation(line string) int {
	n := 0
	for _, c := range line {
		if c != ' ' && c != '\t' {
			break
		}
		n++
	}
	return n
}

// nestingLevel is the display depth of a list or task line
func nestingLevel(line string) int {
	return indentation(line) / 2
}

// nestingGuard tracks the depth of the current list or task line.
// Any other line resets it.
type nestingGuard struct {
	max   int
	level int
}

func (g *nestingGuard) observe(line string) {
	if listShapePattern.MatchString(line) {
		g.level = nestingLevel(line)
		return
	}
	g.level = 0
}

func (g *nestingGuard) exceeded() bool {
	return g.level > g.max
}

// marginStyle indents a list or task line by 20px per level
func marginStyle(level int) Style {
	if level <= 0 {
		return nil
	}
	return Style{"margin-left": fmt.Sprintf("%dpx", level*20)}
}
