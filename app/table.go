package app

import (
	"fmt"
	"strings"
)

// Table renders rows in org-mode table format, the same layout the
// previous tooling produced, so anything parsing the output keeps
// working.
type Table struct {
	headers []string
	rows    [][]string
}

func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

func (t *Table) String() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(fmt.Sprintf("| %-*s ", w, cell))
		}
		sb.WriteString("|\n")
	}

	writeRow(t.headers)
	for i, w := range widths {
		if i == 0 {
			sb.WriteString("|")
		} else {
			sb.WriteString("+")
		}
		sb.WriteString(strings.Repeat("-", w+2))
	}
	sb.WriteString("|\n")

	for _, row := range t.rows {
		writeRow(row)
	}
	return sb.String()
}
