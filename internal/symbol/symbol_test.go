package symbol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "L", want: LevelL},
		{in: "m", want: LevelM},
		{in: "Q", want: LevelQ},
		{in: "h", want: LevelH},
		{in: "X", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSize(t *testing.T) {
	require.Equal(t, 21, Size(1))
	require.Equal(t, 25, Size(2))
	require.Equal(t, 45, Size(7))
	require.Equal(t, 177, Size(40))
}

func TestCodewordCounts(t *testing.T) {
	tests := []struct {
		version int
		level   Level
		total   int
		data    int
	}{
		{version: 1, level: LevelL, total: 26, data: 19},
		{version: 1, level: LevelM, total: 26, data: 16},
		{version: 1, level: LevelH, total: 26, data: 9},
		{version: 2, level: LevelM, total: 44, data: 28},
		{version: 5, level: LevelQ, total: 134, data: 62},
		{version: 40, level: LevelL, total: 3706, data: 2956},
	}

	for _, tt := range tests {
		require.Equal(t, tt.total, TotalCodewords(tt.version), "total v%d", tt.version)
		require.Equal(t, tt.data, DataCodewords(tt.version, tt.level), "data v%d-%s", tt.version, tt.level)
	}
}

func TestBlocks(t *testing.T) {
	// Version 5-Q splits into 2 blocks of 15 and 2 blocks of 16 data
	// codewords, 18 checkwords each.
	groups := Blocks(5, LevelQ)
	require.Len(t, groups, 2)
	require.Equal(t, BlockGroup{Blocks: 2, DataWords: 15, ECWords: 18}, groups[0])
	require.Equal(t, BlockGroup{Blocks: 2, DataWords: 16, ECWords: 18}, groups[1])

	// Single-block layouts collapse to one group.
	groups = Blocks(1, LevelM)
	require.Len(t, groups, 1)
	require.Equal(t, BlockGroup{Blocks: 1, DataWords: 16, ECWords: 10}, groups[0])
}

func TestBlocksCoverTotals(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		for _, level := range []Level{LevelL, LevelM, LevelQ, LevelH} {
			data, total := 0, 0
			for _, g := range Blocks(v, level) {
				data += g.Blocks * g.DataWords
				total += g.Blocks * (g.DataWords + g.ECWords)
			}
			require.Equal(t, DataCodewords(v, level), data, "data v%d-%s", v, level)
			require.Equal(t, TotalCodewords(v), total, "total v%d-%s", v, level)
		}
	}
}

func TestAlignmentCenters(t *testing.T) {
	tests := []struct {
		version int
		want    []int
	}{
		{version: 1, want: nil},
		{version: 2, want: []int{6, 18}},
		{version: 7, want: []int{6, 22, 38}},
		{version: 14, want: []int{6, 26, 46, 66}},
		{version: 32, want: []int{6, 34, 60, 86, 112, 138}},
		{version: 40, want: []int{6, 30, 58, 86, 114, 142, 170}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, AlignmentCenters(tt.version), "version %d", tt.version)
	}
}

func TestSmallestVersion(t *testing.T) {
	require.Equal(t, 1, SmallestVersion(19, LevelL))
	require.Equal(t, 2, SmallestVersion(20, LevelL))
	require.Equal(t, 1, SmallestVersion(0, LevelH))
	require.Equal(t, 40, SmallestVersion(2956, LevelL))
	require.Equal(t, 0, SmallestVersion(2957, LevelL))
}

func TestFormatBits(t *testing.T) {
	tests := []struct {
		level Level
		mask  int
		want  uint32
	}{
		{level: LevelL, mask: 0, want: 0x77C4},
		{level: LevelM, mask: 2, want: 0x5E7C},
		{level: LevelH, mask: 7, want: 0x083B},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatBits(tt.level, tt.mask), "%s mask %d", tt.level, tt.mask)
	}
}

func TestVersionBits(t *testing.T) {
	require.Equal(t, uint32(0x07C94), VersionBits(7))
	require.Equal(t, uint32(0x0C762), VersionBits(12))
	require.Equal(t, uint32(0x28C69), VersionBits(40))
}

func TestRecoveryFraction(t *testing.T) {
	require.InDelta(t, 0.07, LevelL.RecoveryFraction(), 0.001)
	require.InDelta(t, 0.30, LevelH.RecoveryFraction(), 0.001)
}
