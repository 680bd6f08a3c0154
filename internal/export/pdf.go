package export

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/wispkit/qrforge"
)

// PDF writes the scene as a single-page PDF at outPath. The symbol
// is rastered at the given module size and embedded as a page image;
// a non-nil logo is composited into the scene's hole first.
func PDF(sc *qrforge.Scene, module int, logo image.Image, outPath string) error {
	img, err := Raster(sc, module)
	if err != nil {
		return err
	}
	if logo != nil {
		img = CompositeLogo(img, logo, sc, module)
	}

	tmp, err := os.MkdirTemp("", "qrforge-pdf-")
	if err != nil {
		return &Error{Operation: "pdf", Err: err}
	}
	defer os.RemoveAll(tmp)

	page := filepath.Join(tmp, "symbol.png")
	f, err := os.Create(page)
	if err != nil {
		return &Error{Operation: "pdf", Err: err}
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return &Error{Operation: "pdf", Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Operation: "pdf", Err: err}
	}

	if err := api.ImportImagesFile([]string{page}, outPath, nil, nil); err != nil {
		return &Error{Operation: "pdf", Err: err}
	}
	return nil
}
