package qrforge

// DotStyle selects the shape emitted for each dark data module.
type DotStyle string

const (
	DotSquare        DotStyle = "square"
	DotRounded       DotStyle = "rounded"
	DotCircle        DotStyle = "circle"
	DotClassyRounded DotStyle = "classy-rounded"
)

// EyeStyle selects the shape of a finder-pattern ring or core.
type EyeStyle string

const (
	EyeSquare  EyeStyle = "square"
	EyeRounded EyeStyle = "rounded"
	EyeCircle  EyeStyle = "circle"
)

type GradientKind string

const (
	GradientLinear GradientKind = "linear"
	GradientRadial GradientKind = "radial"
)

// Gradient describes a single fill field spanning the symbol's
// bounding box. When present, dark-module shapes reference it
// instead of the flat dark color.
type Gradient struct {
	Kind  GradientKind
	From  string  // hex color at the start/center
	To    string  // hex color at the end/edge
	Angle float64 // degrees, linear gradients only
}

// FillClass tells the drawing layer which configured paint a shape
// takes: the dark fill (flat color or gradient) or the eye color.
type FillClass int

const (
	FillDark FillClass = iota
	FillEye
)

type ShapeKind int

const (
	// ShapeRect is an axis-aligned rectangle; Radii holds per-corner
	// rounding, clockwise from the top-left corner.
	ShapeRect ShapeKind = iota
	// ShapeCircle is a disc; X, Y is the center and W the diameter.
	ShapeCircle
	// ShapeRing is a rounded-rect outline of wall width Thickness.
	// Corner radii of half the width turn it into an annulus.
	ShapeRing
	// ShapeLogoHole marks the carved logo region. Nothing is drawn;
	// the caller places its logo inside this rectangle.
	ShapeLogoHole
)

// Shape is one drawable element, with geometry in module-grid units.
// The caller multiplies by its module pixel size.
type Shape struct {
	Kind      ShapeKind
	X, Y      float64
	W, H      float64
	Radii     [4]float64
	Thickness float64
	Fill      FillClass
}

// Scene is the renderer's output: the ordered shapes of one styled
// symbol. Shapes are already offset by Margin; the drawing layer
// fills Extent x Extent modules with LightColor and then draws the
// shapes in order.
type Scene struct {
	ModuleCount int // symbol side length in modules, margin excluded
	Margin      int // quiet-zone width in modules, 0 when disabled
	DarkColor   string
	LightColor  string
	EyeColor    string
	Gradient    *Gradient
	Shapes      []Shape
}

// Extent returns the drawn side length in modules, margin included.
func (s *Scene) Extent() int { return s.ModuleCount + 2*s.Margin }

// Corner indices for Shape.Radii and ClassyRules.
const (
	CornerTopLeft = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
)

// Orthogonal neighbor bits for the ClassyRules index.
const (
	NeighborUp = 1 << iota
	NeighborRight
	NeighborDown
	NeighborLeft
)

// ClassyRules decides, for every combination of dark orthogonal
// neighbors, which corners of a classy-rounded module stay rounded.
// Index by the neighbor bitmask, then by corner.
type ClassyRules [16][4]bool

// DefaultClassyRules rounds a corner when both modules flanking it
// are light, so horizontal and vertical runs fuse into pill shapes.
var DefaultClassyRules = func() ClassyRules {
	flank := [4]int{
		CornerTopLeft:     NeighborUp | NeighborLeft,
		CornerTopRight:    NeighborUp | NeighborRight,
		CornerBottomRight: NeighborDown | NeighborRight,
		CornerBottomLeft:  NeighborDown | NeighborLeft,
	}
	var r ClassyRules
	for mask := 0; mask < 16; mask++ {
		for c := 0; c < 4; c++ {
			r[mask][c] = mask&flank[c] == 0
		}
	}
	return r
}()
