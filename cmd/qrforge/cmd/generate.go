package cmd

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/wispkit/qrforge"
	"github.com/wispkit/qrforge/internal/config"
	"github.com/wispkit/qrforge/internal/export"
	"github.com/wispkit/qrforge/internal/verify"
)

var generateCmd = &cobra.Command{
	Use:   "generate [text]",
	Short: "Encode text into a styled QR symbol",
	Long: `Encode the given text into a QR symbol and write it as SVG, PNG,
or PDF. Styling flags override the configuration file; --preset
applies a named style from the presets file first.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	value := args[0]
	cfg := GetConfig()

	render := cfg.Render
	presets, err := loadPresets(cfg)
	if err != nil {
		return err
	}
	if preset, _ := cmd.Flags().GetString("preset"); preset != "" {
		if render, err = presets.Resolve(preset, render); err != nil {
			return err
		}
	}
	applyRenderFlags(cmd, &render)
	if err := render.Validate(); err != nil {
		return err
	}

	format := strings.ToLower(cfg.Output.Format)
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
		format = strings.ToLower(format)
	}
	moduleSize := cfg.Output.ModuleSize
	if cmd.Flags().Changed("module-size") {
		moduleSize, _ = cmd.Flags().GetInt("module-size")
	}
	outPath := cfg.Output.File
	if cmd.Flags().Changed("output") {
		outPath, _ = cmd.Flags().GetString("output")
	}
	if outPath == "" {
		outPath = "qrcode." + format
	}

	style := render.ToStyle()
	sym, err := qrforge.EncodeSymbol(value, style)
	if err != nil {
		return err
	}
	slog.Info("Encoded symbol",
		"version", sym.Version(),
		"size", sym.Size(),
		"level", sym.Level(),
		"mask", sym.Mask())

	scene, err := qrforge.Render(sym, style)
	if err != nil {
		return err
	}

	var logo image.Image
	if render.LogoPath != "" {
		if logo, err = imaging.Open(render.LogoPath); err != nil {
			return fmt.Errorf("opening logo: %w", err)
		}
	}

	switch format {
	case "svg":
		if err := os.WriteFile(outPath, export.SVG(scene, moduleSize), 0o600); err != nil {
			return fmt.Errorf("writing SVG: %w", err)
		}
	case "png":
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		if err := export.PNG(f, scene, moduleSize, logo); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case "pdf":
		if err := export.PDF(scene, moduleSize, logo, outPath); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q (use png, svg or pdf)", format)
	}

	if check, _ := cmd.Flags().GetBool("verify"); check {
		if err := verifyScene(scene, moduleSize, logo, value); err != nil {
			return err
		}
		slog.Info("Verified symbol round-trip")
	}

	slog.Info("Wrote symbol", "path", outPath, "format", format)
	return nil
}

// verifyScene rasters the scene exactly as the artifact does, logo
// included, and decodes it with an independent reader.
func verifyScene(scene *qrforge.Scene, moduleSize int, logo image.Image, want string) error {
	img, err := export.Raster(scene, moduleSize)
	if err != nil {
		return err
	}
	if logo != nil {
		img = export.CompositeLogo(img, logo, scene, moduleSize)
	}
	got, err := verify.Decode(img)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	if got != want {
		return fmt.Errorf("verification mismatch: decoded %q", got)
	}
	return nil
}

// applyRenderFlags overlays changed style flags onto the resolved
// render configuration.
func applyRenderFlags(cmd *cobra.Command, render *config.RenderConfig) {
	flagString := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	flagString("level", &render.Level)
	flagString("dot-style", &render.DotStyle)
	flagString("eye-frame-style", &render.EyeFrameStyle)
	flagString("eye-pupil-style", &render.EyePupilStyle)
	flagString("dark-color", &render.DarkColor)
	flagString("light-color", &render.LightColor)
	flagString("eye-color", &render.EyeColor)
	flagString("logo", &render.LogoPath)
	flagString("gradient", &render.Gradient.Kind)
	flagString("gradient-from", &render.Gradient.From)
	flagString("gradient-to", &render.Gradient.To)
	if cmd.Flags().Changed("gradient-angle") {
		render.Gradient.Angle, _ = cmd.Flags().GetFloat64("gradient-angle")
	}
	if cmd.Flags().Changed("logo-fraction") {
		render.LogoSizeFraction, _ = cmd.Flags().GetFloat64("logo-fraction")
	}
	if cmd.Flags().Changed("no-quiet-zone") {
		render.NoQuietZone, _ = cmd.Flags().GetBool("no-quiet-zone")
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "", "output file path (default qrcode.<format>)")
	generateCmd.Flags().StringP("format", "f", "png", "output format (png, svg, pdf)")
	generateCmd.Flags().Int("module-size", 16, "pixel width of one module in raster output")
	generateCmd.Flags().String("preset", "", "named render preset from the presets file")
	generateCmd.Flags().StringP("level", "l", "M", "error-correction level (L, M, Q, H)")
	generateCmd.Flags().String("dot-style", "square", "dot style (square, rounded, circle, classy-rounded)")
	generateCmd.Flags().String("eye-frame-style", "square", "finder ring style (square, rounded, circle)")
	generateCmd.Flags().String("eye-pupil-style", "square", "finder core style (square, rounded, circle)")
	generateCmd.Flags().String("dark-color", "#000000", "dark module color")
	generateCmd.Flags().String("light-color", "#ffffff", "background color")
	generateCmd.Flags().String("eye-color", "", "finder pattern color (default dark color)")
	generateCmd.Flags().String("gradient", "", "dark fill gradient kind (linear, radial)")
	generateCmd.Flags().String("gradient-from", "#000000", "gradient start color")
	generateCmd.Flags().String("gradient-to", "#000000", "gradient end color")
	generateCmd.Flags().Float64("gradient-angle", 0, "linear gradient angle in degrees")
	generateCmd.Flags().String("logo", "", "logo image to composite into the symbol center")
	generateCmd.Flags().Float64("logo-fraction", 0, "logo side length as a fraction of the symbol, (0, 0.3]")
	generateCmd.Flags().Bool("no-quiet-zone", false, "omit the 4-module quiet zone")
	generateCmd.Flags().Bool("verify", false, "decode the rendered symbol and compare with the input")
}
