package board

// Report describes everything one selection changed, in the order it happened.
// A presentation layer can animate the whole transition from it without
// re-deriving anything from the board.
type Report struct {
	Origin  Coord   // The selected cell
	Color   Color   // Color of the removed region; zero for a no-op
	Removed Region  // Cells emptied by the selection
	Moves   []Move  // Tokens that fell after removal
	Spawns  []Spawn // Tokens placed into the cells left empty
}

// NoOp reports whether the selection changed nothing.
func (r Report) NoOp() bool {
	return r.Removed.Empty()
}

// ApplySelection removes the region containing (x, y), lets the remaining
// tokens fall and refills the board. Selecting an out-of-bounds or empty cell
// leaves the board untouched and returns a no-op Report.
//
// A lone token with no same-colored neighbours is still removed.
func (b *Board) ApplySelection(x, y int) Report {
	report := Report{Origin: C(x, y)}

	region := b.FindConnectedRegion(x, y)
	if region.Empty() {
		return report
	}

	report.Color = b.cells[b.index(report.Origin)].Color
	report.Removed = region

	b.RemoveCells(region...)
	report.Moves = b.CompactColumns()
	report.Spawns = b.RefillEmptyCells()

	return report
}
