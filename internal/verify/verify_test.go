package verify

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wispkit/qrforge"
	"github.com/wispkit/qrforge/internal/export"
)

func renderRaster(t *testing.T, value string, cfg qrforge.Config) image.Image {
	t.Helper()
	sc, err := qrforge.Encode(value, cfg)
	require.NoError(t, err)
	img, err := export.Raster(sc, 8)
	require.NoError(t, err)
	return img
}

func TestDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value string
		cfg   qrforge.Config
	}{
		{"plain url", "https://wisp.dev", qrforge.Config{Level: "M"}},
		{"numeric payload", "8675309", qrforge.Config{Level: "L"}},
		{"rounded dots", "https://wisp.dev", qrforge.Config{DotStyle: qrforge.DotRounded}},
		{"classy dots at Q", "https://wisp.dev", qrforge.Config{Level: "Q", DotStyle: qrforge.DotClassyRounded}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Decode(renderRaster(t, tt.value, tt.cfg))
			require.NoError(t, err)
			require.Equal(t, tt.value, text)
		})
	}
}

func TestDecodeSurvivesLogoHole(t *testing.T) {
	// A quarter-width hole occludes under 7% of the modules, inside
	// level H's 30% recovery budget even with styling on top.
	cfg := qrforge.Config{Level: "H", LogoSizeFraction: 0.25}
	sc, err := qrforge.Encode("https://wisp.dev", cfg)
	require.NoError(t, err)
	img, err := export.Raster(sc, 8)
	require.NoError(t, err)

	logo := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			logo.SetNRGBA(x, y, color.NRGBA{R: 0x33, G: 0x55, B: 0xff, A: 255})
		}
	}
	composed := export.CompositeLogo(img, logo, sc, 8)

	text, err := Decode(composed)
	require.NoError(t, err)
	require.Equal(t, "https://wisp.dev", text)
}

func TestDecodeRejectsBlankImage(t *testing.T) {
	blank := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	_, err := Decode(blank)
	require.Error(t, err)
}
