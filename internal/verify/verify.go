// Package verify round-trips rendered symbols through an independent
// QR reader so callers and tests can prove a styled symbol still
// scans.
package verify

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Decode extracts the text payload of the QR symbol in img. The
// hybrid binarizer handles clean rasters; the global-histogram
// binarizer is the fallback for gradient fills with low contrast
// patches.
func Decode(img image.Image) (string, error) {
	src := gozxing.NewLuminanceSourceFromImage(img)
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	var lastErr error
	for _, binarizer := range []gozxing.Binarizer{
		gozxing.NewHybridBinarizer(src),
		gozxing.NewGlobalHistgramBinarizer(src),
	} {
		bmp, err := gozxing.NewBinaryBitmap(binarizer)
		if err != nil {
			lastErr = err
			continue
		}
		reader := qrcode.NewQRCodeReader()
		result, err := reader.Decode(bmp, hints)
		if err != nil {
			lastErr = err
			continue
		}
		return result.GetText(), nil
	}
	return "", fmt.Errorf("decode symbol: %w", lastErr)
}
