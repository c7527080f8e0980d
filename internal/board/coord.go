package board

import "fmt"

// Coord is a cell position. X grows to the right, Y grows upward: row 0 is the
// bottom row that tokens fall toward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Less orders coordinates by column, then row.
func (c Coord) Less(other Coord) bool {
	if c.X != other.X {
		return c.X < other.X
	}
	return c.Y < other.Y
}

// neighbours are the four orthogonal offsets, in the order the region search
// visits them: up, down, right, left.
var neighbours = [4][2]int{
	{0, 1},
	{0, -1},
	{1, 0},
	{-1, 0},
}
