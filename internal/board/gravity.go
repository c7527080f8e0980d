package board

// Move records a token that fell from one row to another within its column.
type Move struct {
	Color Color
	From  Coord
	To    Coord
}

// Distance returns how many rows the token fell.
func (m Move) Distance() int {
	return m.From.Y - m.To.Y
}

// Spawn records a new token placed into an empty cell.
type Spawn struct {
	At    Coord
	Color Color
}

// CompactColumns lets tokens fall: in every column the remaining tokens are
// packed down to row 0 keeping their relative order, and the cells above them
// become empty. A Move is returned for each token that changed row, ordered by
// column then destination row.
func (b *Board) CompactColumns() []Move {
	var moves []Move

	for x := 0; x < b.w; x++ {
		write := 0
		for y := 0; y < b.h; y++ {
			from := C(x, y)
			cell := b.cells[b.index(from)]
			if !cell.Filled {
				continue
			}
			if y != write {
				to := C(x, write)
				b.cells[b.index(to)] = cell
				b.cells[b.index(from)] = Empty()
				moves = append(moves, Move{Color: cell.Color, From: from, To: to})
			}
			write++
		}
	}

	return moves
}

// RefillEmptyCells places a random palette token into every empty cell and
// returns the placements, ordered by column then row. Afterwards the board has
// no empty cells.
func (b *Board) RefillEmptyCells() []Spawn {
	var spawns []Spawn

	for x := 0; x < b.w; x++ {
		for y := 0; y < b.h; y++ {
			at := C(x, y)
			i := b.index(at)
			if b.cells[i].Filled {
				continue
			}
			c := b.randomColor()
			b.cells[i] = Token(c)
			spawns = append(spawns, Spawn{At: at, Color: c})
		}
	}

	return spawns
}

// randomColor draws a palette color uniformly.
func (b *Board) randomColor() Color {
	return b.palette[b.rng.Intn(len(b.palette))]
}
