package export

import (
	"image"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/wispkit/qrforge"
)

// Raster paints a scene into an image at the given module pixel size.
func Raster(sc *qrforge.Scene, module int) (image.Image, error) {
	if module <= 0 {
		module = DefaultModuleSize
	}
	px := sc.Extent() * module
	m := float64(module)

	dc := gg.NewContext(px, px)
	dc.SetHexColor(sc.LightColor)
	dc.Clear()

	var darkPattern gg.Pattern
	if sc.Gradient != nil {
		grad, err := gradientPattern(sc.Gradient, float64(px))
		if err != nil {
			return nil, &Error{Operation: "gradient", Err: err}
		}
		darkPattern = grad
	}
	setDark := func() {
		if darkPattern != nil {
			dc.SetFillStyle(darkPattern)
		} else {
			dc.SetHexColor(sc.DarkColor)
		}
	}

	for _, sh := range sc.Shapes {
		switch sh.Kind {
		case qrforge.ShapeRect:
			tracePath(dc, sh.X*m, sh.Y*m, sh.W*m, sh.H*m, scaleRadii(sh.Radii, m))
		case qrforge.ShapeCircle:
			dc.DrawCircle(sh.X*m, sh.Y*m, sh.W/2*m)
		case qrforge.ShapeRing:
			tracePath(dc, sh.X*m, sh.Y*m, sh.W*m, sh.H*m, scaleRadii(sh.Radii, m))
		case qrforge.ShapeLogoHole:
			continue
		}
		if sh.Fill == qrforge.FillEye {
			dc.SetHexColor(sc.EyeColor)
		} else {
			setDark()
		}
		dc.Fill()
		if sh.Kind == qrforge.ShapeRing {
			// Carve the ring interior back to the background color.
			t := sh.Thickness * m
			tracePath(dc, sh.X*m+t, sh.Y*m+t, sh.W*m-2*t, sh.H*m-2*t,
				innerRadii(scaleRadii(sh.Radii, m), t))
			dc.SetHexColor(sc.LightColor)
			dc.Fill()
		}
	}
	return dc.Image(), nil
}

// PNG rasters the scene, overlays an optional logo, and writes the
// encoded image to w.
func PNG(w io.Writer, sc *qrforge.Scene, module int, logo image.Image) error {
	img, err := Raster(sc, module)
	if err != nil {
		return err
	}
	if logo != nil {
		img = CompositeLogo(img, logo, sc, module)
	}
	if err := png.Encode(w, img); err != nil {
		return &Error{Operation: "png encode", Err: err}
	}
	return nil
}

func scaleRadii(r [4]float64, m float64) [4]float64 {
	for i := range r {
		r[i] *= m
	}
	return r
}

// tracePath adds a rectangle with independent corner radii to the
// current path.
func tracePath(dc *gg.Context, x, y, w, h float64, r [4]float64) {
	limit := math.Min(w, h) / 2
	for i := range r {
		r[i] = math.Max(0, math.Min(r[i], limit))
	}
	if r == ([4]float64{}) {
		dc.DrawRectangle(x, y, w, h)
		return
	}
	dc.NewSubPath()
	dc.MoveTo(x+r[0], y)
	dc.LineTo(x+w-r[1], y)
	if r[1] > 0 {
		dc.DrawArc(x+w-r[1], y+r[1], r[1], -math.Pi/2, 0)
	}
	dc.LineTo(x+w, y+h-r[2])
	if r[2] > 0 {
		dc.DrawArc(x+w-r[2], y+h-r[2], r[2], 0, math.Pi/2)
	}
	dc.LineTo(x+r[3], y+h)
	if r[3] > 0 {
		dc.DrawArc(x+r[3], y+h-r[3], r[3], math.Pi/2, math.Pi)
	}
	dc.LineTo(x, y+r[0])
	if r[0] > 0 {
		dc.DrawArc(x+r[0], y+r[0], r[0], math.Pi, 3*math.Pi/2)
	}
	dc.ClosePath()
}

func gradientPattern(g *qrforge.Gradient, px float64) (gg.Gradient, error) {
	from, err := parseHexColor(g.From)
	if err != nil {
		return nil, err
	}
	to, err := parseHexColor(g.To)
	if err != nil {
		return nil, err
	}
	var grad gg.Gradient
	if g.Kind == qrforge.GradientRadial {
		c := px / 2
		grad = gg.NewRadialGradient(c, c, 0, c, c, c)
	} else {
		x0, y0, x1, y1 := gradientLine(g.Angle, px)
		grad = gg.NewLinearGradient(x0, y0, x1, y1)
	}
	grad.AddColorStop(0, from)
	grad.AddColorStop(1, to)
	return grad, nil
}

// gradientLine maps an angle in degrees to a line through the center
// of a side-length box. Zero degrees runs left to right.
func gradientLine(angle, side float64) (x0, y0, x1, y1 float64) {
	rad := angle * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	half := side / 2
	return half - dx*half, half - dy*half, half + dx*half, half + dy*half
}
