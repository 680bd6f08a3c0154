// Package export turns rendered scenes into concrete artifacts:
// SVG documents, raster images, and single-page PDFs.
package export

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultModuleSize is the pixel width of one module when the caller
// does not specify one.
const DefaultModuleSize = 16

// Error wraps a failure in one export operation.
type Error struct {
	Operation string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export error in %s: %v", e.Operation, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// parseHexColor accepts #rgb, #rrggbb and #rrggbbaa.
func parseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	var hex string
	switch len(h) {
	case 3:
		hex = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2], 'f', 'f'})
	case 6:
		hex = h + "ff"
	case 8:
		hex = h
	default:
		return color.NRGBA{}, fmt.Errorf("malformed hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("malformed hex color %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
