package export

import (
	"fmt"
	"strings"

	"github.com/wispkit/qrforge"
)

const darkFillID = "qrforge-dark"

// SVG serializes a scene as a standalone SVG document. Geometry is
// emitted in module units with the pixel size carried by the width
// and height attributes, so the output scales losslessly.
func SVG(sc *qrforge.Scene, module int) []byte {
	if module <= 0 {
		module = DefaultModuleSize
	}
	extent := sc.Extent()
	px := extent * module

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		px, px, extent, extent)

	darkFill := sc.DarkColor
	if g := sc.Gradient; g != nil {
		writeGradientDef(&b, g, extent)
		darkFill = fmt.Sprintf("url(#%s)", darkFillID)
	}
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`+"\n", extent, extent, sc.LightColor)

	for _, sh := range sc.Shapes {
		fill := darkFill
		if sh.Fill == qrforge.FillEye {
			fill = sc.EyeColor
		}
		switch sh.Kind {
		case qrforge.ShapeRect:
			if sh.Radii == ([4]float64{}) {
				fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
					num(sh.X), num(sh.Y), num(sh.W), num(sh.H), fill)
			} else {
				fmt.Fprintf(&b, `<path d="%s" fill="%s"/>`+"\n",
					roundRectPath(sh.X, sh.Y, sh.W, sh.H, sh.Radii), fill)
			}
		case qrforge.ShapeCircle:
			fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
				num(sh.X), num(sh.Y), num(sh.W/2), fill)
		case qrforge.ShapeRing:
			outer := roundRectPath(sh.X, sh.Y, sh.W, sh.H, sh.Radii)
			inner := roundRectPath(sh.X+sh.Thickness, sh.Y+sh.Thickness,
				sh.W-2*sh.Thickness, sh.H-2*sh.Thickness, innerRadii(sh.Radii, sh.Thickness))
			fmt.Fprintf(&b, `<path d="%s %s" fill-rule="evenodd" fill="%s"/>`+"\n", outer, inner, fill)
		case qrforge.ShapeLogoHole:
			// The hole is the absence of modules; the caller overlays
			// its logo there after embedding the document.
		}
	}
	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func writeGradientDef(b *strings.Builder, g *qrforge.Gradient, extent int) {
	b.WriteString("<defs>\n")
	switch g.Kind {
	case qrforge.GradientRadial:
		fmt.Fprintf(b, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`,
			darkFillID, num(float64(extent)/2), num(float64(extent)/2), num(float64(extent)/2))
	default:
		x0, y0, x1, y1 := gradientLine(g.Angle, float64(extent))
		fmt.Fprintf(b, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`,
			darkFillID, num(x0), num(y0), num(x1), num(y1))
	}
	fmt.Fprintf(b, `<stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/>`, g.From, g.To)
	if g.Kind == qrforge.GradientRadial {
		b.WriteString("</radialGradient>\n")
	} else {
		b.WriteString("</linearGradient>\n")
	}
	b.WriteString("</defs>\n")
}

// roundRectPath builds a clockwise path with independent corner arcs.
func roundRectPath(x, y, w, h float64, r [4]float64) string {
	limit := w / 2
	if h/2 < limit {
		limit = h / 2
	}
	for i := range r {
		if r[i] > limit {
			r[i] = limit
		}
		if r[i] < 0 {
			r[i] = 0
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "M%s %s", num(x+r[0]), num(y))
	fmt.Fprintf(&b, "H%s", num(x+w-r[1]))
	if r[1] > 0 {
		fmt.Fprintf(&b, "A%s %s 0 0 1 %s %s", num(r[1]), num(r[1]), num(x+w), num(y+r[1]))
	}
	fmt.Fprintf(&b, "V%s", num(y+h-r[2]))
	if r[2] > 0 {
		fmt.Fprintf(&b, "A%s %s 0 0 1 %s %s", num(r[2]), num(r[2]), num(x+w-r[2]), num(y+h))
	}
	fmt.Fprintf(&b, "H%s", num(x+r[3]))
	if r[3] > 0 {
		fmt.Fprintf(&b, "A%s %s 0 0 1 %s %s", num(r[3]), num(r[3]), num(x), num(y+h-r[3]))
	}
	fmt.Fprintf(&b, "V%s", num(y+r[0]))
	if r[0] > 0 {
		fmt.Fprintf(&b, "A%s %s 0 0 1 %s %s", num(r[0]), num(r[0]), num(x+r[0]), num(y))
	}
	b.WriteString("Z")
	return b.String()
}

func innerRadii(outer [4]float64, thickness float64) [4]float64 {
	var r [4]float64
	for i, v := range outer {
		if v > thickness {
			r[i] = v - thickness
		}
	}
	return r
}

// num trims trailing zeros so square-dot output stays compact.
func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
