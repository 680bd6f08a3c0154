package matrix

import (
	"fmt"

	"github.com/wispkit/qrforge/internal/symbol"
)

// stampFinders draws the three 7x7 finder patterns with their one-module
// light separators.
func (m *Matrix) stampFinders() {
	corners := [3][2]int{{0, 0}, {0, m.size - 7}, {m.size - 7, 0}}
	for _, c := range corners {
		top, left := c[0], c[1]
		for dr := 0; dr < 7; dr++ {
			for dc := 0; dc < 7; dc++ {
				ring := dr == 0 || dr == 6 || dc == 0 || dc == 6
				core := dr >= 2 && dr <= 4 && dc >= 2 && dc <= 4
				m.set(top+dr, left+dc, ring || core, RoleFinder)
			}
		}
		// Separator: the light band on the finder's inward sides.
		for d := -1; d <= 7; d++ {
			sr, sc := top+d, left+7
			if left > 0 {
				sc = left - 1
			}
			if sr >= 0 && sr < m.size {
				m.set(sr, sc, false, RoleSeparator)
			}
			sr, sc = top+7, left+d
			if top > 0 {
				sr = top - 1
			}
			if sc >= 0 && sc < m.size {
				m.set(sr, sc, false, RoleSeparator)
			}
		}
	}
}

// stampTiming draws the alternating strips along row 6 and column 6.
func (m *Matrix) stampTiming() {
	for i := 8; i < m.size-8; i++ {
		dark := i%2 == 0
		m.set(6, i, dark, RoleTiming)
		m.set(i, 6, dark, RoleTiming)
	}
}

// stampAlignment draws the 5x5 alignment patterns for versions >= 2,
// skipping centers whose box would overlap a finder or separator.
func (m *Matrix) stampAlignment() {
	centers := symbol.AlignmentCenters(m.version)
	for _, cr := range centers {
		for _, cc := range centers {
			if m.alignmentOverlapsFinder(cr, cc) {
				continue
			}
			for dr := -2; dr <= 2; dr++ {
				for dc := -2; dc <= 2; dc++ {
					edge := dr == -2 || dr == 2 || dc == -2 || dc == 2
					center := dr == 0 && dc == 0
					m.set(cr+dr, cc+dc, edge || center, RoleAlignment)
				}
			}
		}
	}
}

func (m *Matrix) alignmentOverlapsFinder(cr, cc int) bool {
	// Finder plus separator occupy an 8x8 corner region.
	near := func(v int) bool { return v-2 <= 7 }
	far := func(v int) bool { return v+2 >= m.size-8 }
	return (near(cr) && near(cc)) || (near(cr) && far(cc)) || (far(cr) && near(cc))
}

// reserveFormat marks the two format information areas and the fixed
// dark module. Actual format bits are written during mask selection.
func (m *Matrix) reserveFormat() {
	for i := 0; i < 9; i++ {
		if !m.isFunction(8, i) {
			m.set(8, i, false, RoleFormat)
		}
		if !m.isFunction(i, 8) {
			m.set(i, 8, false, RoleFormat)
		}
	}
	for i := 0; i < 8; i++ {
		m.set(8, m.size-1-i, false, RoleFormat)
	}
	for i := 0; i < 7; i++ {
		m.set(m.size-1-i, 8, false, RoleFormat)
	}
	// The module above the bottom-left format copy is always dark.
	m.set(m.size-8, 8, true, RoleFormat)
}

// stampVersion writes the 18-bit version information blocks for
// versions >= 7: a 3x6 block above the bottom-left finder and its
// transpose left of the top-right finder.
func (m *Matrix) stampVersion() {
	bits := symbol.VersionBits(m.version)
	if bits == 0 {
		return
	}
	for i := 0; i < 18; i++ {
		dark := bits>>uint(i)&1 == 1
		row, col := i/3, m.size-11+i%3
		m.set(row, col, dark, RoleVersion)
		m.set(col, row, dark, RoleVersion)
	}
}

// placeData walks the codeword stream through the data region in the
// standard two-column zigzag. Any data modules left after the stream is
// exhausted are the version's remainder bits and stay light.
func (m *Matrix) placeData(stream []byte) {
	total := len(stream) * 8
	i := 0
	for right := m.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			// The vertical timing strip is never part of the zigzag.
			right = 5
		}
		upward := (right+1)&2 == 0
		for step := 0; step < m.size; step++ {
			row := step
			if upward {
				row = m.size - 1 - step
			}
			for _, col := range [2]int{right, right - 1} {
				if m.isFunction(row, col) {
					continue
				}
				dark := false
				if i < total {
					dark = stream[i>>3]>>(7-uint(i&7))&1 == 1
					i++
				}
				m.set(row, col, dark, RoleData)
			}
		}
	}
	if left := total - i; left < 0 || left > 7 {
		panic(fmt.Sprintf("qrforge: %d codeword bits left after filling version %d data region",
			left, m.version))
	}
}
