// Package table renders small aligned text tables for the reporting
// menus: environment viewer, port scanner, disk usage, database
// explorer. Output is plain text suitable for a pager or a log.
package table

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// T accumulates rows under a header and renders them with columns
// padded to the widest cell.
type T struct {
	header []string
	rows   [][]string
	aligns []Alignment
}

func New(columns ...string) *T {
	return &T{header: columns}
}

// Align sets per-column alignment. Columns beyond the given list stay
// left-aligned.
func (t *T) Align(aligns ...Alignment) *T {
	t.aligns = aligns
	return t
}

func (t *T) Row(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *T) Len() int {
	return len(t.rows)
}

// Render returns the header, a dashed rule, and the padded rows as one
// string. A table with no rows renders nothing.
func (t *T) Render() string {
	if len(t.rows) == 0 {
		return ""
	}
	all := make([][]string, 0, len(t.rows)+2)
	if len(t.header) > 0 {
		all = append(all, t.header, rule(columnWidths(append([][]string{t.header}, t.rows...))))
	}
	all = append(all, t.rows...)
	return strings.Join(Format(all, t.aligns), "\n")
}

// Format pads every row so columns line up, two spaces apart. Rows may
// be ragged; short rows leave trailing columns empty.
func Format(rows [][]string, aligns []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - runewidth.StringWidth(cell)
			if pad < 0 {
				pad = 0
			}
			if c < len(aligns) && aligns[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else if c < len(row)-1 {
				b.WriteString(cell)
				b.WriteString(strings.Repeat(" ", pad))
			} else {
				b.WriteString(cell)
			}
		}
		out[i] = b.String()
	}
	return out
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			for len(widths) <= c {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func rule(widths []int) []string {
	cells := make([]string, len(widths))
	for i, w := range widths {
		cells[i] = strings.Repeat("-", w)
	}
	return cells
}
