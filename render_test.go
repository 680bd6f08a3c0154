package qrforge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wispkit/qrforge/internal/matrix"
)

func renderSymbol(t *testing.T, value string, cfg Config) (*Symbol, *Scene) {
	t.Helper()
	sym, err := EncodeSymbol(value, cfg)
	require.NoError(t, err)
	sc, err := Render(sym, cfg)
	require.NoError(t, err)
	return sym, sc
}

func TestRenderQuietZone(t *testing.T) {
	sym, sc := renderSymbol(t, "HELLO WORLD", Config{})
	require.Equal(t, sym.Size(), sc.ModuleCount)
	require.Equal(t, 4, sc.Margin)
	require.Equal(t, sym.Size()+8, sc.Extent())

	_, bare := renderSymbol(t, "HELLO WORLD", Config{NoQuietZone: true})
	require.Equal(t, 0, bare.Margin)
	require.Equal(t, sym.Size(), bare.Extent())
}

func TestRenderColorDefaults(t *testing.T) {
	_, sc := renderSymbol(t, "A", Config{})
	require.Equal(t, "#000000", sc.DarkColor)
	require.Equal(t, "#ffffff", sc.LightColor)
	require.Equal(t, "#000000", sc.EyeColor)

	_, styled := renderSymbol(t, "A", Config{DarkColor: "#112233", EyeColor: "#ff0000"})
	require.Equal(t, "#112233", styled.DarkColor)
	require.Equal(t, "#ff0000", styled.EyeColor)
}

func TestRenderGradientPassthrough(t *testing.T) {
	g := &Gradient{Kind: GradientLinear, From: "#000000", To: "#3355ff", Angle: 45}
	_, sc := renderSymbol(t, "A", Config{Gradient: g})
	require.Equal(t, g, sc.Gradient)
}

func TestRenderEyeShapes(t *testing.T) {
	sym, sc := renderSymbol(t, "HELLO WORLD", Config{})
	size := float64(sym.Size())

	var eyes []Shape
	for _, s := range sc.Shapes {
		if s.Fill == FillEye {
			eyes = append(eyes, s)
		}
	}
	require.Len(t, eyes, 6)

	var frames, pupils int
	for _, s := range eyes {
		switch s.Kind {
		case ShapeRing:
			frames++
			require.Equal(t, 7.0, s.W)
			require.Equal(t, 1.0, s.Thickness)
		case ShapeRect:
			pupils++
			require.Equal(t, 3.0, s.W)
		}
	}
	require.Equal(t, 3, frames)
	require.Equal(t, 3, pupils)

	// Frames sit at the three finder corners, offset by the margin.
	off := float64(sc.Margin)
	wantOrigins := map[[2]float64]bool{
		{off, off}:            true,
		{size - 7 + off, off}: true,
		{off, size - 7 + off}: true,
	}
	for _, s := range eyes {
		if s.Kind == ShapeRing {
			require.True(t, wantOrigins[[2]float64{s.X, s.Y}], "unexpected frame origin (%v, %v)", s.X, s.Y)
		}
	}
}

func TestRenderCircleEyes(t *testing.T) {
	_, sc := renderSymbol(t, "A", Config{EyeFrameStyle: EyeCircle, EyePupilStyle: EyeCircle})
	var rings, circles int
	for _, s := range sc.Shapes {
		if s.Fill != FillEye {
			continue
		}
		switch s.Kind {
		case ShapeRing:
			rings++
			require.Equal(t, [4]float64{3.5, 3.5, 3.5, 3.5}, s.Radii)
		case ShapeCircle:
			circles++
			require.Equal(t, 3.0, s.W)
		}
	}
	require.Equal(t, 3, rings)
	require.Equal(t, 3, circles)
}

func TestRenderDotCount(t *testing.T) {
	sym, sc := renderSymbol(t, "HELLO WORLD", Config{})

	dark := 0
	for r := 0; r < sym.Size(); r++ {
		for c := 0; c < sym.Size(); c++ {
			if sym.Dark(r, c) && sym.m.Role(r, c) != matrix.RoleFinder {
				dark++
			}
		}
	}
	dots := 0
	for _, s := range sc.Shapes {
		if s.Fill == FillDark && s.Kind == ShapeRect {
			dots++
		}
	}
	require.Equal(t, dark, dots)
}

func TestRenderDotStyles(t *testing.T) {
	_, rounded := renderSymbol(t, "A", Config{DotStyle: DotRounded})
	for _, s := range rounded.Shapes {
		if s.Fill == FillDark && s.Kind == ShapeRect {
			require.Equal(t, [4]float64{0.3, 0.3, 0.3, 0.3}, s.Radii)
		}
	}

	_, circle := renderSymbol(t, "A", Config{DotStyle: DotCircle})
	seen := false
	for _, s := range circle.Shapes {
		if s.Fill == FillDark && s.Kind == ShapeCircle {
			seen = true
			require.Equal(t, 1.0, s.W)
		}
	}
	require.True(t, seen)
}

func TestRenderClassyCorners(t *testing.T) {
	_, sc := renderSymbol(t, "HELLO WORLD", Config{DotStyle: DotClassyRounded})

	// Index dots by module position to inspect neighborhoods.
	off := float64(sc.Margin)
	byPos := make(map[[2]int]Shape)
	for _, s := range sc.Shapes {
		if s.Fill == FillDark && s.Kind == ShapeRect {
			byPos[[2]int{int(s.Y - off), int(s.X - off)}] = s
		}
	}
	require.NotEmpty(t, byPos)

	for pos, s := range byPos {
		row, col := pos[0], pos[1]
		up := byPos[[2]int{row - 1, col}].W != 0
		right := byPos[[2]int{row, col + 1}].W != 0
		down := byPos[[2]int{row + 1, col}].W != 0
		left := byPos[[2]int{row, col - 1}].W != 0

		// A corner rounds exactly when both flanking sides are open.
		wantTL := !up && !left
		require.Equal(t, wantTL, s.Radii[CornerTopLeft] > 0, "top-left corner at %v", pos)
		wantBR := !down && !right
		require.Equal(t, wantBR, s.Radii[CornerBottomRight] > 0, "bottom-right corner at %v", pos)
	}
}

func TestRenderLogoHole(t *testing.T) {
	cfg := Config{Level: "H", LogoSizeFraction: 0.25}
	sym, sc := renderSymbol(t, "https://wisp.dev", cfg)

	last := sc.Shapes[len(sc.Shapes)-1]
	require.Equal(t, ShapeLogoHole, last.Kind)
	require.Equal(t, 0.25*float64(sym.Size()), last.W)

	// No dot center may fall inside the carved region.
	for _, s := range sc.Shapes {
		if s.Fill != FillDark || s.Kind == ShapeLogoHole {
			continue
		}
		var cx, cy float64
		if s.Kind == ShapeCircle {
			cx, cy = s.X, s.Y
		} else {
			cx, cy = s.X+s.W/2, s.Y+s.H/2
		}
		inside := cx >= last.X && cx < last.X+last.W && cy >= last.Y && cy < last.Y+last.H
		require.False(t, inside, "dot at (%v, %v) inside logo hole", cx, cy)
	}
}

func TestRenderRejectsInvalidStyle(t *testing.T) {
	sym, err := EncodeSymbol("A", Config{})
	require.NoError(t, err)
	_, err = Render(sym, Config{DotStyle: "hexagon"})
	require.Error(t, err)
}

func TestRenderShapesStayInsideExtent(t *testing.T) {
	_, sc := renderSymbol(t, "https://wisp.dev", Config{DotStyle: DotRounded, EyeFrameStyle: EyeRounded})
	extent := float64(sc.Extent())
	for _, s := range sc.Shapes {
		if s.Kind == ShapeCircle {
			require.GreaterOrEqual(t, s.X-s.W/2, 0.0)
			require.GreaterOrEqual(t, s.Y-s.W/2, 0.0)
			require.LessOrEqual(t, s.X+s.W/2, extent)
			require.LessOrEqual(t, s.Y+s.W/2, extent)
			continue
		}
		require.GreaterOrEqual(t, s.X, 0.0)
		require.GreaterOrEqual(t, s.Y, 0.0)
		require.LessOrEqual(t, s.X+s.W, extent)
		require.LessOrEqual(t, s.Y+s.H, extent)
	}
}
