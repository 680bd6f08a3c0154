package qrforge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeSymbolVersionSelection(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		cfg     Config
		version int
		size    int
		level   string
	}{
		{
			name:    "url at M needs version 2",
			value:   "https://wisp.dev",
			cfg:     Config{Level: "M"},
			version: 2,
			size:    25,
			level:   "M",
		},
		{
			name:    "single letter fits version 1",
			value:   "A",
			cfg:     Config{Level: "L"},
			version: 1,
			size:    21,
			level:   "L",
		},
		{
			name:    "seventeen bytes fill version 1 at L",
			value:   strings.Repeat("q", 17),
			cfg:     Config{Level: "L"},
			version: 1,
			size:    21,
			level:   "L",
		},
		{
			name:    "eighteen bytes spill into version 2",
			value:   strings.Repeat("q", 18),
			cfg:     Config{Level: "L"},
			version: 2,
			size:    25,
			level:   "L",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, err := EncodeSymbol(tt.value, tt.cfg)
			require.NoError(t, err)
			require.Equal(t, tt.version, sym.Version())
			require.Equal(t, tt.size, sym.Size())
			require.Equal(t, tt.level, sym.Level())
		})
	}
}

func TestEncodeSymbolDefaultsToLevelM(t *testing.T) {
	sym, err := EncodeSymbol("HELLO WORLD", Config{})
	require.NoError(t, err)
	require.Equal(t, "M", sym.Level())
}

func TestEncodeSymbolCapacityExceeded(t *testing.T) {
	_, err := EncodeSymbol(strings.Repeat("0", 8000), Config{Level: "H"})
	var capErr *CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	require.Equal(t, 8000, capErr.Length)
	require.Equal(t, "H", capErr.Level)
}

func TestEncodeSymbolRejectsUnknownLevel(t *testing.T) {
	_, err := EncodeSymbol("A", Config{Level: "X"})
	require.Error(t, err)
}

func TestLogoRaisesLevelFloor(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		fraction float64
		want     string
	}{
		{"small logo floors to Q", "L", 0.15, "Q"},
		{"large logo floors to H", "L", 0.25, "H"},
		{"boundary fraction stays at Q", "L", 0.20, "Q"},
		{"H is never lowered", "H", 0.10, "H"},
		{"no logo keeps requested level", "L", 0, "L"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, err := EncodeSymbol("https://wisp.dev", Config{Level: tt.level, LogoSizeFraction: tt.fraction})
			require.NoError(t, err)
			require.Equal(t, tt.want, sym.Level())
		})
	}
}

func TestLogoFractionOutOfRange(t *testing.T) {
	for _, f := range []float64{0.5, -0.1, 0.31} {
		_, err := EncodeSymbol("https://wisp.dev", Config{LogoSizeFraction: f})
		var logoErr *LogoOverlayTooLargeError
		require.ErrorAs(t, err, &logoErr, "fraction %v", f)
		require.Equal(t, f, logoErr.Fraction)
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, Config{}.Validate())
	require.NoError(t, Config{DotStyle: DotClassyRounded, EyeFrameStyle: EyeCircle, EyePupilStyle: EyeRounded}.Validate())
	require.Error(t, Config{DotStyle: "hexagon"}.Validate())
	require.Error(t, Config{EyeFrameStyle: "diamond"}.Validate())
	require.Error(t, Config{EyePupilStyle: "diamond"}.Validate())
	require.Error(t, Config{Gradient: &Gradient{Kind: "conic"}}.Validate())
}

func TestEncodeDeterministic(t *testing.T) {
	cfg := Config{Level: "Q", DotStyle: DotRounded}
	a, err := Encode("https://wisp.dev", cfg)
	require.NoError(t, err)
	b, err := Encode("https://wisp.dev", cfg)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSymbolRowsMatchDark(t *testing.T) {
	sym, err := EncodeSymbol("HELLO WORLD", Config{Level: "M"})
	require.NoError(t, err)
	rows := sym.Rows()
	require.Len(t, rows, sym.Size())
	for r := range rows {
		require.Len(t, rows[r], sym.Size())
		for c := range rows[r] {
			require.Equal(t, sym.Dark(r, c), rows[r][c])
		}
	}
}
