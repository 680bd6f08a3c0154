package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wispkit/qrforge/internal/bitset"
	"github.com/wispkit/qrforge/internal/codeword"
	"github.com/wispkit/qrforge/internal/segment"
	"github.com/wispkit/qrforge/internal/symbol"
)

func buildSymbol(t *testing.T, value string, version int, level symbol.Level) *Matrix {
	t.Helper()
	b := bitset.New()
	class := segment.ClassOf(version)
	require.NoError(t, segment.Encode(segment.Split(value, class), class, b))
	stream, err := codeword.Build(b, version, level)
	require.NoError(t, err)
	return Build(version, level, stream)
}

// finderAt returns the expected module color of the 7x7 finder with
// its top-left corner at the origin.
func finderAt(dr, dc int) bool {
	ring := dr == 0 || dr == 6 || dc == 0 || dc == 6
	core := dr >= 2 && dr <= 4 && dc >= 2 && dc <= 4
	return ring || core
}

func TestFinderPatterns(t *testing.T) {
	m := buildSymbol(t, "HELLO WORLD", 1, symbol.LevelM)
	size := m.Size()
	require.Equal(t, 21, size)

	for _, origin := range [3][2]int{{0, 0}, {0, size - 7}, {size - 7, 0}} {
		for dr := 0; dr < 7; dr++ {
			for dc := 0; dc < 7; dc++ {
				row, col := origin[0]+dr, origin[1]+dc
				require.Equal(t, finderAt(dr, dc), m.Dark(row, col), "finder %v at %d,%d", origin, dr, dc)
				require.Equal(t, RoleFinder, m.Role(row, col))
			}
		}
	}

	// Separators stay light.
	for i := 0; i < 8; i++ {
		require.False(t, m.Dark(7, i), "separator row at col %d", i)
		require.False(t, m.Dark(i, 7), "separator col at row %d", i)
		require.Equal(t, RoleSeparator, m.Role(7, i))
	}
}

func TestTimingPattern(t *testing.T) {
	m := buildSymbol(t, "HELLO WORLD", 1, symbol.LevelM)
	for i := 8; i < m.Size()-8; i++ {
		require.Equal(t, i%2 == 0, m.Dark(6, i), "timing row at %d", i)
		require.Equal(t, i%2 == 0, m.Dark(i, 6), "timing col at %d", i)
		require.Equal(t, RoleTiming, m.Role(6, i))
	}
}

func TestDarkModule(t *testing.T) {
	m := buildSymbol(t, "HELLO WORLD", 1, symbol.LevelM)
	require.True(t, m.Dark(m.Size()-8, 8))
	require.Equal(t, RoleFormat, m.Role(m.Size()-8, 8))
}

func TestAlignmentPattern(t *testing.T) {
	m := buildSymbol(t, "https://wisp.dev", 2, symbol.LevelM)
	require.Equal(t, 25, m.Size())

	// Single alignment pattern centered at (18, 18).
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			edge := dr == -2 || dr == 2 || dc == -2 || dc == 2
			center := dr == 0 && dc == 0
			require.Equal(t, edge || center, m.Dark(18+dr, 18+dc), "alignment at %d,%d", dr, dc)
			require.Equal(t, RoleAlignment, m.Role(18+dr, 18+dc))
		}
	}
}

// readFormat reconstructs the 15-bit format word from the copy next
// to the top-left finder.
func readFormat(m *Matrix) uint32 {
	var bits uint32
	at := func(i int, row, col int) {
		if m.Dark(row, col) {
			bits |= 1 << uint(i)
		}
	}
	for i := 0; i <= 5; i++ {
		at(i, i, 8)
	}
	at(6, 7, 8)
	at(7, 8, 8)
	at(8, 8, 7)
	for i := 9; i < 15; i++ {
		at(i, 8, 14-i)
	}
	return bits
}

func readFormatSecondCopy(m *Matrix) uint32 {
	var bits uint32
	size := m.Size()
	for i := 0; i <= 7; i++ {
		if m.Dark(8, size-1-i) {
			bits |= 1 << uint(i)
		}
	}
	for i := 8; i < 15; i++ {
		if m.Dark(size-15+i, 8) {
			bits |= 1 << uint(i)
		}
	}
	return bits
}

func TestFormatInformation(t *testing.T) {
	m := buildSymbol(t, "HELLO WORLD", 1, symbol.LevelM)
	want := symbol.FormatBits(symbol.LevelM, m.Mask())
	require.Equal(t, want, readFormat(m))
	require.Equal(t, want, readFormatSecondCopy(m))
}

func TestVersionInformation(t *testing.T) {
	m := buildSymbol(t, "version seven payload", 7, symbol.LevelL)
	size := m.Size()
	want := symbol.VersionBits(7)

	var topRight, bottomLeft uint32
	for i := 0; i < 18; i++ {
		if m.Dark(i/3, size-11+i%3) {
			topRight |= 1 << uint(i)
		}
		if m.Dark(size-11+i%3, i/3) {
			bottomLeft |= 1 << uint(i)
		}
	}
	require.Equal(t, want, topRight)
	require.Equal(t, want, bottomLeft)
}

func TestDataModuleCount(t *testing.T) {
	m := buildSymbol(t, "HELLO WORLD", 1, symbol.LevelM)
	count := 0
	for row := 0; row < m.Size(); row++ {
		for col := 0; col < m.Size(); col++ {
			if m.Role(row, col) == RoleData {
				count++
			}
		}
	}
	// Version 1 has no remainder bits: every codeword bit gets a cell.
	require.Equal(t, symbol.TotalCodewords(1)*8, count)
}

func TestBuildDeterministic(t *testing.T) {
	a := buildSymbol(t, "https://wisp.dev", 2, symbol.LevelM)
	b := buildSymbol(t, "https://wisp.dev", 2, symbol.LevelM)
	require.Equal(t, a.Mask(), b.Mask())
	require.Equal(t, a.Rows(), b.Rows())
}

func TestChosenMaskIsOptimal(t *testing.T) {
	m := buildSymbol(t, "https://wisp.dev", 2, symbol.LevelM)

	chosen := m.penalty(m.dark)
	for id := 0; id < 8; id++ {
		grid := make([]bool, len(m.dark))
		copy(grid, m.dark)
		// Undo the chosen mask, apply candidate id.
		for row := 0; row < m.size; row++ {
			for col := 0; col < m.size; col++ {
				if m.role[row*m.size+col] != RoleData {
					continue
				}
				if maskBit(m.mask, row, col) != maskBit(id, row, col) {
					grid[row*m.size+col] = !grid[row*m.size+col]
				}
			}
		}
		m.writeFormat(grid, id)
		require.GreaterOrEqual(t, m.penalty(grid), chosen, "mask %d beats chosen mask %d", id, m.mask)
	}
	// Restore the winning format bits clobbered by the probe above.
	m.writeFormat(m.dark, m.mask)
}

func newTestGrid(rows []string) *Matrix {
	size := len(rows)
	m := &Matrix{size: size, dark: make([]bool, size*size), role: make([]Role, size*size)}
	for r, line := range rows {
		for c := 0; c < size; c++ {
			m.dark[r*size+c] = line[c] == '#'
		}
	}
	return m
}

func TestPenaltyRuns(t *testing.T) {
	m := newTestGrid([]string{
		"#####.",
		"......",
		"#.#.#.",
		".#.#.#",
		"#.#.#.",
		".#.#.#",
	})
	// Row 0 has a run of exactly 5 (+3); row 1 a run of 6 (+4). No
	// column exceeds 4.
	require.Equal(t, 7, m.penaltyRuns(m.dark))
}

func TestPenaltyBoxes(t *testing.T) {
	m := newTestGrid([]string{
		"##..",
		"##..",
		"....",
		"....",
	})
	// One dark 2x2 plus the five light 2x2s clear of the dark block's
	// border.
	require.Equal(t, 6*penaltyBox, m.penaltyBoxes(m.dark))
}

func TestPenaltyFinderLike(t *testing.T) {
	m := newTestGrid([]string{
		"#.###.#....",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
	})
	// The 1:1:3:1:1 run at row 0 is flanked by light on both sides,
	// counting the off-grid quiet zone, and scores once.
	require.Equal(t, penaltyFinder, m.penaltyFinderLike(m.dark))
}

func TestPenaltyBalance(t *testing.T) {
	all := newTestGrid([]string{"####", "####", "####", "####"})
	require.Equal(t, 100, all.penaltyBalance(all.dark))

	half := newTestGrid([]string{"##..", "##..", "##..", "##.."})
	require.Equal(t, 0, half.penaltyBalance(half.dark))
}
