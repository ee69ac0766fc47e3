package markdown

import (
	"regexp"
	"strings"
)

var (
	tableRowPattern  = regexp.MustCompile(`^\|(.+)\|$`)
	alignCellPattern = regexp.MustCompile(`^:?-+:?$`)
)

// isTableRow checks for the | cell | cell | shape
func isTableRow(line string) bool {
	return tableRowPattern.MatchString(strings.TrimSpace(line))
}

// splitRow returns the trimmed cells of a pipe row, or nil
func splitRow(line string) []string {
	m := tableRowPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil
	}
	cells := strings.Split(m[1], "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// isAlignmentRow checks for a row whose cells are only dashes with
// optional colons, such as |:---|:-:|--:|
func isAlignmentRow(line string) bool {
	cells := splitRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !alignCellPattern.MatchString(c) {
			return false
		}
	}
	return true
}

func cellAlignment(cell string) Alignment {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	case left:
		return AlignLeft
	}
	return AlignNone
}

// table consumes a header row, an optional alignment row and the body rows
// that follow it. Without an alignment row only the header is taken.
func (s *scanner) table(i int) (int, bool) {
	line := s.lines[i]
	if !isTableRow(line) {
		return 0, false
	}
	// A row directly under another row belongs to a table already seen
	if i > 0 && isTableRow(s.lines[i-1]) {
		return 0, false
	}

	header := splitRow(line)
	t := &Table{
		Header: s.formatCells(header),
		Align:  make([]Alignment, len(header)),
		Rows:   [][]string{},
	}

	j := i + 1
	if j < len(s.lines) && isAlignmentRow(s.lines[j]) {
		for k, cell := range splitRow(s.lines[j]) {
			if k < len(t.Align) {
				t.Align[k] = cellAlignment(cell)
			}
		}
		j++

		for j < len(s.lines) && isTableRow(s.lines[j]) && !isAlignmentRow(s.lines[j]) {
			t.Rows = append(t.Rows, s.formatCells(splitRow(s.lines[j])))
			j++
		}
	}

	s.emit(i, &Node{
		Kind:  KindTable,
		Attrs: s.opts.Resolve(Tables, Attributes{}),
		Table: t,
	})
	return j - i, true
}

func (s *scanner) formatCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = s.format.Format(c)
	}
	return out
}
