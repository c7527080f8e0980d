package board

import (
	"fmt"
	"strings"
)

// Rows returns the board top row first, one string per row, using color
// letters and '.' for empty cells. FromRows accepts the same format.
func (b *Board) Rows() []string {
	rows := make([]string, 0, b.h)
	for y := b.h - 1; y >= 0; y-- {
		var sb strings.Builder
		for x := 0; x < b.w; x++ {
			cell := b.cells[b.index(C(x, y))]
			if cell.Filled {
				sb.WriteRune(cell.Color.Char())
			} else {
				sb.WriteRune('.')
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// RenderASCII creates a text picture of the board for debugging, tests and the
// headless simulator.
//
// Format:
//   - header with dimensions and empty cell count
//   - rows top to bottom, prefixed with their y index
//   - x indices below the grid
func RenderASCII(b *Board) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Board %dx%d | Empty: %d\n", b.w, b.h, b.EmptyCount()))

	rows := b.Rows()
	labelW := len(fmt.Sprint(b.h - 1))
	for i, row := range rows {
		y := b.h - 1 - i
		sb.WriteString(fmt.Sprintf("%*d |", labelW, y))
		for _, r := range row {
			sb.WriteRune(' ')
			sb.WriteRune(r)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat(" ", labelW) + " +")
	sb.WriteString(strings.Repeat("--", b.w))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", labelW) + "  ")
	for x := 0; x < b.w; x++ {
		sb.WriteString(fmt.Sprintf(" %d", x%10))
	}
	sb.WriteString("\n")

	return sb.String()
}

// String summarises a report on one line.
func (r Report) String() string {
	if r.NoOp() {
		return fmt.Sprintf("select %v: no-op", r.Origin)
	}
	return fmt.Sprintf("select %v: removed %d %s, %d moved, %d spawned",
		r.Origin, len(r.Removed), r.Color, len(r.Moves), len(r.Spawns))
}
