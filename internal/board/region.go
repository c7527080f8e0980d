package board

import "sort"

// Region is a set of cells, ordered by column then row.
// An empty Region means nothing was matched.
type Region []Coord

// Len returns the number of cells in the region.
func (r Region) Len() int {
	return len(r)
}

// Empty reports whether the region holds no cells.
func (r Region) Empty() bool {
	return len(r) == 0
}

// linearScanMax is the size up to which Contains scans instead of searching.
const linearScanMax = 16

// Contains reports whether c belongs to the region. Small regions are
// scanned in any order; larger ones must be sorted by column then row, as
// FindConnectedRegion returns them.
func (r Region) Contains(c Coord) bool {
	if len(r) <= linearScanMax {
		for _, rc := range r {
			if rc == c {
				return true
			}
		}
		return false
	}
	i := sort.Search(len(r), func(i int) bool {
		return !r[i].Less(c)
	})
	return i < len(r) && r[i] == c
}

func (r Region) sort() {
	sort.Slice(r, func(i, j int) bool {
		return r[i].Less(r[j])
	})
}

// FindConnectedRegion returns every cell reachable from (x, y) through
// orthogonally adjacent tokens of the same color, including (x, y) itself.
// Out-of-bounds or empty origins yield an empty Region.
//
// The search uses an explicit stack and a visited set, so each cell is
// examined at most once and stack depth does not grow with board size.
func (b *Board) FindConnectedRegion(x, y int) Region {
	origin := C(x, y)
	if !b.InBounds(origin) {
		return nil
	}
	start := b.cells[b.index(origin)]
	if !start.Filled {
		return nil
	}

	visited := make([]bool, len(b.cells))
	visited[b.index(origin)] = true
	stack := []Coord{origin}
	var region Region

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, c)

		for _, d := range neighbours {
			n := c.Add(d[0], d[1])
			if !b.InBounds(n) {
				continue
			}
			i := b.index(n)
			if visited[i] {
				continue
			}
			cell := b.cells[i]
			if !cell.Filled || cell.Color != start.Color {
				continue
			}
			visited[i] = true
			stack = append(stack, n)
		}
	}

	region.sort()
	return region
}

// RemoveCells empties every listed cell and returns how many tokens were
// actually removed. Empty or out-of-bounds cells are skipped, so removing the
// same cells twice is the same as removing them once.
func (b *Board) RemoveCells(coords ...Coord) int {
	removed := 0
	for _, c := range coords {
		if !b.InBounds(c) {
			continue
		}
		i := b.index(c)
		if b.cells[i].Filled {
			b.cells[i] = Empty()
			removed++
		}
	}
	return removed
}
