// Package matrix builds the QR module grid: it stamps the structural
// patterns, interleaves the codeword stream into the data region, and
// selects and applies the lowest-penalty mask.
package matrix

import (
	"fmt"

	"github.com/wispkit/qrforge/internal/symbol"
)

// Role tags what a module belongs to. Masking touches only RoleData;
// the style renderer draws finder modules with the eye styles.
type Role uint8

const (
	RoleData Role = iota
	RoleFinder
	RoleSeparator
	RoleTiming
	RoleAlignment
	RoleFormat
	RoleVersion
)

func (r Role) String() string {
	switch r {
	case RoleData:
		return "data"
	case RoleFinder:
		return "finder"
	case RoleSeparator:
		return "separator"
	case RoleTiming:
		return "timing"
	case RoleAlignment:
		return "alignment"
	case RoleFormat:
		return "formatInfo"
	case RoleVersion:
		return "versionInfo"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Matrix is a square module grid. It is mutated during construction and
// masking only; Build returns it finalized, after which it is treated
// as immutable and is safe to share across goroutines.
type Matrix struct {
	size    int
	version int
	level   symbol.Level
	mask    int
	dark    []bool
	role    []Role
}

// Build constructs the finalized matrix for a version/level pair and an
// interleaved codeword stream.
func Build(version int, level symbol.Level, stream []byte) *Matrix {
	size := symbol.Size(version)
	m := &Matrix{
		size:    size,
		version: version,
		level:   level,
		mask:    -1,
		dark:    make([]bool, size*size),
		role:    make([]Role, size*size),
	}
	m.stampFinders()
	m.stampTiming()
	m.stampAlignment()
	m.reserveFormat()
	m.stampVersion()
	m.placeData(stream)
	m.selectMask()
	return m
}

// Size returns the side length in modules.
func (m *Matrix) Size() int { return m.size }

// Version returns the symbol version (1-40).
func (m *Matrix) Version() int { return m.version }

// Level returns the error correction level encoded in the format field.
func (m *Matrix) Level() symbol.Level { return m.level }

// Mask returns the applied mask pattern id (0-7).
func (m *Matrix) Mask() int { return m.mask }

// Dark reports whether the module at (row, col) is dark.
func (m *Matrix) Dark(row, col int) bool {
	return m.dark[row*m.size+col]
}

// Role returns the role tag of the module at (row, col).
func (m *Matrix) Role(row, col int) Role {
	return m.role[row*m.size+col]
}

// Rows returns the grid as row-major boolean slices, dark == true.
func (m *Matrix) Rows() [][]bool {
	rows := make([][]bool, m.size)
	for r := 0; r < m.size; r++ {
		rows[r] = make([]bool, m.size)
		copy(rows[r], m.dark[r*m.size:(r+1)*m.size])
	}
	return rows
}

func (m *Matrix) set(row, col int, dark bool, role Role) {
	i := row*m.size + col
	m.dark[i] = dark
	m.role[i] = role
}

func (m *Matrix) isFunction(row, col int) bool {
	return m.role[row*m.size+col] != RoleData
}
