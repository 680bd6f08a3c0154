package qrforge

import (
	"fmt"

	"github.com/wispkit/qrforge/internal/matrix"
	"github.com/wispkit/qrforge/internal/symbol"
)

const (
	roundedDotRadius  = 0.3
	classyDotRadius   = 0.5
	roundedEyeRadius  = 2.0
	roundedCoreRadius = 1.0
)

// logoHole is the carved region in symbol module coordinates.
type logoHole struct {
	x, y, side float64
}

func (h logoHole) contains(cx, cy float64) bool {
	return cx >= h.x && cx < h.x+h.side && cy >= h.y && cy < h.y+h.side
}

// Render turns an encoded symbol and a style configuration into a
// scene of drawable shapes. It never mutates the symbol; carving a
// logo hole only omits shapes, relying on the error-correction floor
// Encode enforced when the logo was requested.
func Render(sym *Symbol, cfg Config) (*Scene, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := sym.m
	size := m.Size()
	margin := 0
	if !cfg.NoQuietZone {
		margin = symbol.QuietZoneModules
	}
	sc := &Scene{
		ModuleCount: size,
		Margin:      margin,
		DarkColor:   cfg.DarkColor,
		LightColor:  cfg.LightColor,
		EyeColor:    cfg.EyeColor,
		Gradient:    cfg.Gradient,
	}
	if sc.EyeColor == "" {
		sc.EyeColor = sc.DarkColor
	}

	var hole logoHole
	hasHole := cfg.LogoSizeFraction > 0
	if hasHole {
		hole.side = cfg.LogoSizeFraction * float64(size)
		hole.x = (float64(size) - hole.side) / 2
		hole.y = hole.x
	}

	rules := DefaultClassyRules
	if cfg.ClassyRules != nil {
		rules = *cfg.ClassyRules
	}

	// drawn reports whether a module contributes a dark dot shape.
	drawn := func(row, col int) bool {
		if row < 0 || row >= size || col < 0 || col >= size {
			return false
		}
		if !m.Dark(row, col) || m.Role(row, col) == matrix.RoleFinder {
			return false
		}
		return !hasHole || !hole.contains(float64(col)+0.5, float64(row)+0.5)
	}

	off := float64(margin)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if !drawn(row, col) {
				continue
			}
			sc.Shapes = append(sc.Shapes, dotShape(cfg, rules, drawn, row, col, off))
		}
	}

	for _, eye := range [3][2]int{{0, 0}, {0, size - 7}, {size - 7, 0}} {
		sc.Shapes = append(sc.Shapes, eyeShapes(cfg, float64(eye[1])+off, float64(eye[0])+off)...)
	}

	if hasHole {
		sc.Shapes = append(sc.Shapes, Shape{
			Kind: ShapeLogoHole,
			X:    hole.x + off,
			Y:    hole.y + off,
			W:    hole.side,
			H:    hole.side,
		})
	}
	return sc, nil
}

func dotShape(cfg Config, rules ClassyRules, drawn func(int, int) bool, row, col int, off float64) Shape {
	x := float64(col) + off
	y := float64(row) + off
	switch cfg.DotStyle {
	case DotSquare:
		return Shape{Kind: ShapeRect, X: x, Y: y, W: 1, H: 1}
	case DotRounded:
		r := roundedDotRadius
		return Shape{Kind: ShapeRect, X: x, Y: y, W: 1, H: 1, Radii: [4]float64{r, r, r, r}}
	case DotCircle:
		return Shape{Kind: ShapeCircle, X: x + 0.5, Y: y + 0.5, W: 1, H: 1}
	case DotClassyRounded:
		mask := 0
		if drawn(row-1, col) {
			mask |= NeighborUp
		}
		if drawn(row, col+1) {
			mask |= NeighborRight
		}
		if drawn(row+1, col) {
			mask |= NeighborDown
		}
		if drawn(row, col-1) {
			mask |= NeighborLeft
		}
		var radii [4]float64
		for c := 0; c < 4; c++ {
			if rules[mask][c] {
				radii[c] = classyDotRadius
			}
		}
		return Shape{Kind: ShapeRect, X: x, Y: y, W: 1, H: 1, Radii: radii}
	}
	panic(fmt.Sprintf("qrforge: unhandled dot style %q", cfg.DotStyle))
}

// eyeShapes emits the finder pattern at (x, y) as two shapes: the
// 7x7 outer ring styled by EyeFrameStyle and the 3x3 core styled by
// EyePupilStyle. Circle styles use corner radii of half the width,
// which degenerate the rounded forms into true circles.
func eyeShapes(cfg Config, x, y float64) []Shape {
	frame := Shape{Kind: ShapeRing, X: x, Y: y, W: 7, H: 7, Thickness: 1, Fill: FillEye}
	switch cfg.EyeFrameStyle {
	case EyeRounded:
		r := roundedEyeRadius
		frame.Radii = [4]float64{r, r, r, r}
	case EyeCircle:
		frame.Radii = [4]float64{3.5, 3.5, 3.5, 3.5}
	}

	pupil := Shape{Kind: ShapeRect, X: x + 2, Y: y + 2, W: 3, H: 3, Fill: FillEye}
	switch cfg.EyePupilStyle {
	case EyeRounded:
		r := roundedCoreRadius
		pupil.Radii = [4]float64{r, r, r, r}
	case EyeCircle:
		pupil = Shape{Kind: ShapeCircle, X: x + 3.5, Y: y + 3.5, W: 3, H: 3, Fill: FillEye}
	}
	return []Shape{frame, pupil}
}
