package export

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/wispkit/qrforge"
)

// CompositeLogo scales the logo into the scene's carved hole and
// draws it over the rastered symbol. Without a hole in the scene the
// image is returned unchanged; modules under the logo were already
// omitted by the renderer, so the overlay never hides live data.
func CompositeLogo(base image.Image, logo image.Image, sc *qrforge.Scene, module int) image.Image {
	if module <= 0 {
		module = DefaultModuleSize
	}
	hole, ok := findHole(sc)
	if !ok {
		return base
	}
	m := float64(module)
	rect := image.Rect(
		int(math.Round(hole.X*m)),
		int(math.Round(hole.Y*m)),
		int(math.Round((hole.X+hole.W)*m)),
		int(math.Round((hole.Y+hole.H)*m)),
	)

	dst := imaging.Clone(base)
	scaled := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), logo, logo.Bounds(), xdraw.Over, nil)
	xdraw.Draw(dst, rect, scaled, image.Point{}, xdraw.Over)
	return dst
}

func findHole(sc *qrforge.Scene) (qrforge.Shape, bool) {
	for _, sh := range sc.Shapes {
		if sh.Kind == qrforge.ShapeLogoHole {
			return sh, true
		}
	}
	return qrforge.Shape{}, false
}
