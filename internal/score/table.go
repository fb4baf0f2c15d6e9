package score

import "strings"

// Table renders rows between `|`/`-`/`+` borders, each column padded to its
// widest cell.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t Table) Render() string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if l := len([]rune(cell)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	var b strings.Builder
	sep := t.separator(widths)
	b.WriteString(sep)
	b.WriteString(t.line(t.Headers, widths))
	b.WriteString(sep)
	for _, row := range t.Rows {
		b.WriteString(t.line(row, widths))
	}
	b.WriteString(sep)
	return b.String()
}

func (t Table) separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "+" + strings.Join(parts, "+") + "+\n"
}

func (t Table) line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = " " + cell + strings.Repeat(" ", w-len([]rune(cell))) + " "
	}
	return "|" + strings.Join(parts, "|") + "|\n"
}
