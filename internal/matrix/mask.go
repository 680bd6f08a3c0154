package matrix

import (
	"fmt"

	"github.com/wispkit/qrforge/internal/symbol"
)

// Penalty weights from ISO/IEC 18004.
const (
	penaltyRun     = 3
	penaltyBox     = 3
	penaltyFinder  = 40
	penaltyBalance = 10
)

// maskBit evaluates mask formula id at (row, col).
func maskBit(id, row, col int) bool {
	switch id {
	case 0:
		return (row+col)%2 == 0
	case 1:
		return row%2 == 0
	case 2:
		return col%3 == 0
	case 3:
		return (row+col)%3 == 0
	case 4:
		return (row/2+col/3)%2 == 0
	case 5:
		return row*col%2+row*col%3 == 0
	case 6:
		return (row*col%2+row*col%3)%2 == 0
	case 7:
		return ((row+col)%2+row*col%3)%2 == 0
	}
	panic(fmt.Sprintf("qrforge: mask id %d out of range", id))
}

// selectMask tries all 8 masks on the data modules, scores each full
// candidate grid with the four penalty rules, and keeps the grid with
// the lowest total. Ties resolve to the lowest mask id. The winning
// mask id and the level are written into both format information
// copies of the kept grid.
func (m *Matrix) selectMask() {
	best := -1
	bestPenalty := 0
	var bestGrid []bool
	for id := 0; id < 8; id++ {
		grid := make([]bool, len(m.dark))
		copy(grid, m.dark)
		for row := 0; row < m.size; row++ {
			for col := 0; col < m.size; col++ {
				if m.role[row*m.size+col] == RoleData && maskBit(id, row, col) {
					grid[row*m.size+col] = !grid[row*m.size+col]
				}
			}
		}
		m.writeFormat(grid, id)
		if p := m.penalty(grid); best < 0 || p < bestPenalty {
			best, bestPenalty, bestGrid = id, p, grid
		}
	}
	m.dark = bestGrid
	m.mask = best
}

// writeFormat places the 15 format bits into both copies on grid.
func (m *Matrix) writeFormat(grid []bool, mask int) {
	bits := symbol.FormatBits(m.level, mask)
	at := func(i int) bool { return bits>>uint(i)&1 == 1 }
	set := func(row, col int, dark bool) { grid[row*m.size+col] = dark }

	// First copy, around the top-left finder.
	for i := 0; i <= 5; i++ {
		set(i, 8, at(i))
	}
	set(7, 8, at(6))
	set(8, 8, at(7))
	set(8, 7, at(8))
	for i := 9; i < 15; i++ {
		set(8, 14-i, at(i))
	}
	// Second copy, split under the top-right and beside the bottom-left
	// finders.
	for i := 0; i <= 7; i++ {
		set(8, m.size-1-i, at(i))
	}
	for i := 8; i < 15; i++ {
		set(m.size-15+i, 8, at(i))
	}
}

// penalty scores a candidate grid with the four ISO rules: same-color
// runs of five or more, 2x2 same-color boxes, finder-like 1:1:3:1:1
// patterns flanked by four light modules, and dark/light imbalance.
func (m *Matrix) penalty(grid []bool) int {
	return m.penaltyRuns(grid) + m.penaltyBoxes(grid) +
		m.penaltyFinderLike(grid) + m.penaltyBalance(grid)
}

func (m *Matrix) penaltyRuns(grid []bool) int {
	p := 0
	score := func(run int) int {
		if run >= 5 {
			return penaltyRun + run - 5
		}
		return 0
	}
	for row := 0; row < m.size; row++ {
		run := 1
		for col := 1; col < m.size; col++ {
			if grid[row*m.size+col] == grid[row*m.size+col-1] {
				run++
				continue
			}
			p += score(run)
			run = 1
		}
		p += score(run)
	}
	for col := 0; col < m.size; col++ {
		run := 1
		for row := 1; row < m.size; row++ {
			if grid[row*m.size+col] == grid[(row-1)*m.size+col] {
				run++
				continue
			}
			p += score(run)
			run = 1
		}
		p += score(run)
	}
	return p
}

func (m *Matrix) penaltyBoxes(grid []bool) int {
	p := 0
	for row := 1; row < m.size; row++ {
		for col := 1; col < m.size; col++ {
			v := grid[row*m.size+col]
			if v == grid[row*m.size+col-1] &&
				v == grid[(row-1)*m.size+col] &&
				v == grid[(row-1)*m.size+col-1] {
				p += penaltyBox
			}
		}
	}
	return p
}

// finderCore is the 1:1:3:1:1 dark/light sequence of a finder row.
var finderCore = [7]bool{true, false, true, true, true, false, true}

func (m *Matrix) penaltyFinderLike(grid []bool) int {
	at := func(row, col int) bool {
		// Modules outside the symbol read as light (the quiet zone).
		if row < 0 || row >= m.size || col < 0 || col >= m.size {
			return false
		}
		return grid[row*m.size+col]
	}
	lightSpan := func(row, col, dr, dc int) bool {
		for k := 0; k < 4; k++ {
			if at(row+k*dr, col+k*dc) {
				return false
			}
		}
		return true
	}
	p := 0
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			horiz := col+6 < m.size
			vert := row+6 < m.size
			for k := 0; horiz && k < 7; k++ {
				horiz = at(row, col+k) == finderCore[k]
			}
			for k := 0; vert && k < 7; k++ {
				vert = at(row+k, col) == finderCore[k]
			}
			if horiz && (lightSpan(row, col-4, 0, 1) || lightSpan(row, col+7, 0, 1)) {
				p += penaltyFinder
			}
			if vert && (lightSpan(row-4, col, 1, 0) || lightSpan(row+7, col, 1, 0)) {
				p += penaltyFinder
			}
		}
	}
	return p
}

func (m *Matrix) penaltyBalance(grid []bool) int {
	dark := 0
	for _, v := range grid {
		if v {
			dark++
		}
	}
	total := len(grid)
	// Each full 5% step away from 50% costs penaltyBalance points.
	dev := 2*dark - total
	if dev < 0 {
		dev = -dev
	}
	return penaltyBalance * (dev * 10 / total)
}
