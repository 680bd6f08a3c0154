// Package symbol holds the fixed QR symbol structure data: version
// capacities, error correction block layouts, alignment pattern
// geometry, and the BCH-protected format/version information words.
//
// Everything here is constant table data from ISO/IEC 18004; nothing is
// computed lazily at runtime.
package symbol

import (
	"fmt"
	"strconv"
)

// Level is a QR error correction level. From least to most tolerant of
// damaged modules: L (~7%), M (~15%), Q (~25%), H (~30%).
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

// ParseLevel converts a single-letter level name ("L", "M", "Q", "H").
func ParseLevel(s string) (Level, error) {
	switch s {
	case "L", "l":
		return LevelL, nil
	case "M", "m":
		return LevelM, nil
	case "Q", "q":
		return LevelQ, nil
	case "H", "h":
		return LevelH, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", s)
}

func (l Level) String() string {
	if l >= LevelL && l <= LevelH {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// Valid reports whether l is one of the four defined levels.
func (l Level) Valid() bool {
	return l >= LevelL && l <= LevelH
}

// RecoveryFraction returns the approximate fraction of codewords the
// level can recover, used to budget logo occlusion.
func (l Level) RecoveryFraction() float64 {
	switch l {
	case LevelL:
		return 0.07
	case LevelM:
		return 0.15
	case LevelQ:
		return 0.25
	case LevelH:
		return 0.30
	}
	return 0
}

// formatLevelBits maps a Level to its 2-bit format information field.
var formatLevelBits = [4]uint32{LevelL: 1, LevelM: 0, LevelQ: 3, LevelH: 2}

const (
	// MinVersion and MaxVersion bound the QR symbol versions.
	MinVersion = 1
	MaxVersion = 40

	// QuietZoneModules is the light margin required around a symbol.
	QuietZoneModules = 4
)

// levelInfo describes the error correction blocks for one version/level:
// the number of blocks and the correction codewords per block.
type levelInfo struct {
	blocks  int
	ecWords int
}

// versionInfo describes one symbol version.
type versionInfo struct {
	codewords   int    // total codeword capacity (data + correction)
	alignFirst  int    // first alignment center after 6, 0 if none
	alignStep   int    // spacing between subsequent centers
	versionBits uint32 // 18-bit version information word, versions >= 7
	levels      [4]levelInfo
}

// versionTable indexes versionInfo by version number (1-40).
var versionTable = [MaxVersion + 1]versionInfo{
	1: {codewords: 26, alignFirst: 0, alignStep: 0, versionBits: 0x00000, levels: [4]levelInfo{{1, 7}, {1, 10}, {1, 13}, {1, 17}}},
	2: {codewords: 44, alignFirst: 18, alignStep: 0, versionBits: 0x00000, levels: [4]levelInfo{{1, 10}, {1, 16}, {1, 22}, {1, 28}}},
	3: {codewords: 70, alignFirst: 22, alignStep: 0, versionBits: 0x00000, levels: [4]levelInfo{{1, 15}, {1, 26}, {2, 18}, {2, 22}}},
	4: {codewords: 100, alignFirst: 26, alignStep: 0, versionBits: 0x00000, levels: [4]levelInfo{{1, 20}, {2, 18}, {2, 26}, {4, 16}}},
	5: {codewords: 134, alignFirst: 30, alignStep: 0, versionBits: 0x00000, levels: [4]levelInfo{{1, 26}, {2, 24}, {4, 18}, {4, 22}}},
	6: {codewords: 172, alignFirst: 34, alignStep: 0, versionBits: 0x00000, levels: [4]levelInfo{{2, 18}, {4, 16}, {4, 24}, {4, 28}}},
	7: {codewords: 196, alignFirst: 22, alignStep: 16, versionBits: 0x07c94, levels: [4]levelInfo{{2, 20}, {4, 18}, {6, 18}, {5, 26}}},
	8: {codewords: 242, alignFirst: 24, alignStep: 18, versionBits: 0x085bc, levels: [4]levelInfo{{2, 24}, {4, 22}, {6, 22}, {6, 26}}},
	9: {codewords: 292, alignFirst: 26, alignStep: 20, versionBits: 0x09a99, levels: [4]levelInfo{{2, 30}, {5, 22}, {8, 20}, {8, 24}}},
	10: {codewords: 346, alignFirst: 28, alignStep: 22, versionBits: 0x0a4d3, levels: [4]levelInfo{{4, 18}, {5, 26}, {8, 24}, {8, 28}}},
	11: {codewords: 404, alignFirst: 30, alignStep: 24, versionBits: 0x0bbf6, levels: [4]levelInfo{{4, 20}, {5, 30}, {8, 28}, {11, 24}}},
	12: {codewords: 466, alignFirst: 32, alignStep: 26, versionBits: 0x0c762, levels: [4]levelInfo{{4, 24}, {8, 22}, {10, 26}, {11, 28}}},
	13: {codewords: 532, alignFirst: 34, alignStep: 28, versionBits: 0x0d847, levels: [4]levelInfo{{4, 26}, {9, 22}, {12, 24}, {16, 22}}},
	14: {codewords: 581, alignFirst: 26, alignStep: 20, versionBits: 0x0e60d, levels: [4]levelInfo{{4, 30}, {9, 24}, {16, 20}, {16, 24}}},
	15: {codewords: 655, alignFirst: 26, alignStep: 22, versionBits: 0x0f928, levels: [4]levelInfo{{6, 22}, {10, 24}, {12, 30}, {18, 24}}},
	16: {codewords: 733, alignFirst: 26, alignStep: 24, versionBits: 0x10b78, levels: [4]levelInfo{{6, 24}, {10, 28}, {17, 24}, {16, 30}}},
	17: {codewords: 815, alignFirst: 30, alignStep: 24, versionBits: 0x1145d, levels: [4]levelInfo{{6, 28}, {11, 28}, {16, 28}, {19, 28}}},
	18: {codewords: 901, alignFirst: 30, alignStep: 26, versionBits: 0x12a17, levels: [4]levelInfo{{6, 30}, {13, 26}, {18, 28}, {21, 28}}},
	19: {codewords: 991, alignFirst: 30, alignStep: 28, versionBits: 0x13532, levels: [4]levelInfo{{7, 28}, {14, 26}, {21, 26}, {25, 26}}},
	20: {codewords: 1085, alignFirst: 34, alignStep: 28, versionBits: 0x149a6, levels: [4]levelInfo{{8, 28}, {16, 26}, {20, 30}, {25, 28}}},
	21: {codewords: 1156, alignFirst: 28, alignStep: 22, versionBits: 0x15683, levels: [4]levelInfo{{8, 28}, {17, 26}, {23, 28}, {25, 30}}},
	22: {codewords: 1258, alignFirst: 26, alignStep: 24, versionBits: 0x168c9, levels: [4]levelInfo{{9, 28}, {17, 28}, {23, 30}, {34, 24}}},
	23: {codewords: 1364, alignFirst: 30, alignStep: 24, versionBits: 0x177ec, levels: [4]levelInfo{{9, 30}, {18, 28}, {25, 30}, {30, 30}}},
	24: {codewords: 1474, alignFirst: 28, alignStep: 26, versionBits: 0x18ec4, levels: [4]levelInfo{{10, 30}, {20, 28}, {27, 30}, {32, 30}}},
	25: {codewords: 1588, alignFirst: 32, alignStep: 26, versionBits: 0x191e1, levels: [4]levelInfo{{12, 26}, {21, 28}, {29, 30}, {35, 30}}},
	26: {codewords: 1706, alignFirst: 30, alignStep: 28, versionBits: 0x1afab, levels: [4]levelInfo{{12, 28}, {23, 28}, {34, 28}, {37, 30}}},
	27: {codewords: 1828, alignFirst: 34, alignStep: 28, versionBits: 0x1b08e, levels: [4]levelInfo{{12, 30}, {25, 28}, {34, 30}, {40, 30}}},
	28: {codewords: 1921, alignFirst: 26, alignStep: 24, versionBits: 0x1cc1a, levels: [4]levelInfo{{13, 30}, {26, 28}, {35, 30}, {42, 30}}},
	29: {codewords: 2051, alignFirst: 30, alignStep: 24, versionBits: 0x1d33f, levels: [4]levelInfo{{14, 30}, {28, 28}, {38, 30}, {45, 30}}},
	30: {codewords: 2185, alignFirst: 26, alignStep: 26, versionBits: 0x1ed75, levels: [4]levelInfo{{15, 30}, {29, 28}, {40, 30}, {48, 30}}},
	31: {codewords: 2323, alignFirst: 30, alignStep: 26, versionBits: 0x1f250, levels: [4]levelInfo{{16, 30}, {31, 28}, {43, 30}, {51, 30}}},
	32: {codewords: 2465, alignFirst: 34, alignStep: 26, versionBits: 0x209d5, levels: [4]levelInfo{{17, 30}, {33, 28}, {45, 30}, {54, 30}}},
	33: {codewords: 2611, alignFirst: 30, alignStep: 28, versionBits: 0x216f0, levels: [4]levelInfo{{18, 30}, {35, 28}, {48, 30}, {57, 30}}},
	34: {codewords: 2761, alignFirst: 34, alignStep: 28, versionBits: 0x228ba, levels: [4]levelInfo{{19, 30}, {37, 28}, {51, 30}, {60, 30}}},
	35: {codewords: 2876, alignFirst: 30, alignStep: 24, versionBits: 0x2379f, levels: [4]levelInfo{{19, 30}, {38, 28}, {53, 30}, {63, 30}}},
	36: {codewords: 3034, alignFirst: 24, alignStep: 26, versionBits: 0x24b0b, levels: [4]levelInfo{{20, 30}, {40, 28}, {56, 30}, {66, 30}}},
	37: {codewords: 3196, alignFirst: 28, alignStep: 26, versionBits: 0x2542e, levels: [4]levelInfo{{21, 30}, {43, 28}, {59, 30}, {70, 30}}},
	38: {codewords: 3362, alignFirst: 32, alignStep: 26, versionBits: 0x26a64, levels: [4]levelInfo{{22, 30}, {45, 28}, {62, 30}, {74, 30}}},
	39: {codewords: 3532, alignFirst: 26, alignStep: 28, versionBits: 0x27541, levels: [4]levelInfo{{24, 30}, {47, 28}, {65, 30}, {77, 30}}},
	40: {codewords: 3706, alignFirst: 30, alignStep: 28, versionBits: 0x28c69, levels: [4]levelInfo{{25, 30}, {49, 28}, {68, 30}, {81, 30}}},
}

// Size returns the side length in modules of the given version.
func Size(version int) int {
	return 17 + 4*version
}

// TotalCodewords returns the symbol's total codeword capacity.
func TotalCodewords(version int) int {
	return versionTable[version].codewords
}

// DataCodewords returns the number of data codewords available at the
// given version and level.
func DataCodewords(version int, level Level) int {
	vi := &versionTable[version]
	li := vi.levels[level]
	return vi.codewords - li.blocks*li.ecWords
}

// BlockGroup describes a run of identical error correction blocks.
type BlockGroup struct {
	Blocks    int // number of blocks in the group
	DataWords int // data codewords per block
	ECWords   int // correction codewords per block
}

// Blocks returns the block layout for a version/level pair. Blocks with
// fewer data codewords come first, matching the interleaving order.
func Blocks(version int, level Level) []BlockGroup {
	vi := &versionTable[version]
	li := vi.levels[level]
	data := DataCodewords(version, level)
	short := data / li.blocks
	long := data % li.blocks
	groups := []BlockGroup{{Blocks: li.blocks - long, DataWords: short, ECWords: li.ecWords}}
	if long > 0 {
		groups = append(groups, BlockGroup{Blocks: long, DataWords: short + 1, ECWords: li.ecWords})
	}
	return groups
}

// AlignmentCenters returns the alignment pattern center coordinates for
// the version, including the leading 6. Version 1 has none.
func AlignmentCenters(version int) []int {
	vi := &versionTable[version]
	if vi.alignFirst == 0 {
		return nil
	}
	centers := []int{6}
	last := Size(version) - 7
	for c := vi.alignFirst; c <= last; c += vi.alignStep {
		centers = append(centers, c)
		if vi.alignStep == 0 {
			break
		}
	}
	return centers
}

// SmallestVersion returns the smallest version whose data capacity at
// the given level holds the required codeword count, or 0 if none does.
func SmallestVersion(dataWords int, level Level) int {
	for v := MinVersion; v <= MaxVersion; v++ {
		if DataCodewords(v, level) >= dataWords {
			return v
		}
	}
	return 0
}

// formatPoly is the BCH(15,5) generator for format information;
// formatMask is XORed in so the field is never all zero.
const (
	formatPoly = 0x537
	formatMask = 0x5412
)

// FormatBits returns the 15-bit format information word for a level and
// mask pattern id, including the BCH remainder and the fixed mask.
func FormatBits(level Level, mask int) uint32 {
	data := formatLevelBits[level]<<3 | uint32(mask)
	rem := data << 10
	for i := 4; i >= 0; i-- {
		if rem&(1<<(10+i)) != 0 {
			rem ^= formatPoly << i
		}
	}
	return (data<<10 | rem&0x3ff) ^ formatMask
}

// VersionBits returns the 18-bit version information word, or 0 for
// versions below 7, which carry no version field.
func VersionBits(version int) uint32 {
	return versionTable[version].versionBits
}
