// Package board implements the dotpop board state: a fixed-size grid of coloured
// tokens with connected-region removal, per-column gravity and random refill.
//
// The package is UI-agnostic and deterministic for a given random source. A
// Board is owned by a single caller and is not safe for concurrent use.
package board

import (
	"fmt"
	"math/rand"
	"time"
)

// Rand is the source of randomness used for initial fill and refill.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Cell is a single grid position: empty, or holding one token.
type Cell struct {
	Filled bool  // Whether the cell holds a token
	Color  Color // Valid only when Filled is true
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Token returns a cell holding a token of the given color.
func Token(c Color) Cell {
	return Cell{Filled: true, Color: c}
}

// Board is the grid of tokens. Cells are stored in a flat slice indexed
// y*W + x with y=0 as the bottom row.
type Board struct {
	w       int
	h       int
	cells   []Cell
	palette Palette
	rng     Rand
}

// New creates a width x height board with every cell filled by an
// independently drawn palette color. A nil rng is replaced by a time-seeded one.
func New(width, height int, palette Palette, rng Rand) (*Board, error) {
	b, err := newEmpty(width, height, palette, rng)
	if err != nil {
		return nil, err
	}
	b.RefillEmptyCells()
	return b, nil
}

// FromRows builds a board from rows listed top to bottom, the way a board is
// drawn on screen. Each rune is a color letter (see Color.Char) or '.' for an
// empty cell. Every color must belong to the palette; rng is used for later
// refills.
func FromRows(rows []string, palette Palette, rng Rand) (*Board, error) {
	if len(rows) == 0 {
		return nil, &ConfigError{Field: "height", Message: "no rows"}
	}
	width := len([]rune(rows[0]))
	b, err := newEmpty(width, len(rows), palette, rng)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, &ConfigError{
				Field:   "rows",
				Message: fmt.Sprintf("row %d has %d cells, want %d", i, len(runes), width),
			}
		}
		y := b.h - 1 - i
		for x, r := range runes {
			if r == '.' {
				continue
			}
			c, ok := ParseColor(string(r))
			if !ok {
				return nil, &ConfigError{Field: "rows", Message: fmt.Sprintf("unknown color %q at row %d", r, i)}
			}
			if !palette.Contains(c) {
				return nil, &ConfigError{Field: "rows", Message: fmt.Sprintf("color %s at row %d is not in the palette", c, i)}
			}
			b.cells[b.index(C(x, y))] = Token(c)
		}
	}
	return b, nil
}

// newEmpty validates the configuration and allocates an all-empty grid.
func newEmpty(width, height int, palette Palette, rng Rand) (*Board, error) {
	if width <= 0 {
		return nil, &ConfigError{Field: "width", Message: fmt.Sprintf("must be positive, got %d", width)}
	}
	if height <= 0 {
		return nil, &ConfigError{Field: "height", Message: fmt.Sprintf("must be positive, got %d", height)}
	}
	if len(palette) == 0 {
		return nil, &ConfigError{Field: "palette", Message: "must not be empty"}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Board{
		w:       width,
		h:       height,
		cells:   make([]Cell, width*height),
		palette: palette.Clone(),
		rng:     rng,
	}, nil
}

// index converts a coordinate to a flat array index.
func (b *Board) index(c Coord) int {
	return c.Y*b.w + c.X
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.w
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.h
}

// Palette returns a copy of the board's palette.
func (b *Board) Palette() Palette {
	return b.palette.Clone()
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.w && c.Y >= 0 && c.Y < b.h
}

// Get returns the cell at the given coordinate.
// Returns an empty cell if out of bounds.
func (b *Board) Get(c Coord) Cell {
	if !b.InBounds(c) {
		return Empty()
	}
	return b.cells[b.index(c)]
}

// ColorAt returns the token color at (x, y) and whether a token is there.
func (b *Board) ColorAt(x, y int) (Color, bool) {
	cell := b.Get(C(x, y))
	return cell.Color, cell.Filled
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	count := 0
	for _, cell := range b.cells {
		if !cell.Filled {
			count++
		}
	}
	return count
}

// IsStable reports whether every cell holds a token.
func (b *Board) IsStable() bool {
	return b.EmptyCount() == 0
}

// CountByColor returns how many tokens of each color are on the board.
func (b *Board) CountByColor() map[Color]int {
	counts := make(map[Color]int)
	for _, cell := range b.cells {
		if cell.Filled {
			counts[cell.Color]++
		}
	}
	return counts
}

// Clone returns a deep copy of the board sharing the random source.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		w:       b.w,
		h:       b.h,
		cells:   cells,
		palette: b.palette.Clone(),
		rng:     b.rng,
	}
}

// Equal returns true if two boards have the same dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil {
		return false
	}
	if b.w != other.w || b.h != other.h {
		return false
	}
	for i, cell := range b.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}
