package config

import (
	"fmt"
	"strings"

	"github.com/wispkit/qrforge"
)

// DefaultConfig returns the configuration used when no file, flag or
// environment variable overrides a value.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Render: RenderConfig{
			Level:         "M",
			DotStyle:      string(qrforge.DotSquare),
			EyeFrameStyle: string(qrforge.EyeSquare),
			EyePupilStyle: string(qrforge.EyeSquare),
			DarkColor:     "#000000",
			LightColor:    "#ffffff",
		},
		Output: OutputConfig{
			Format:     "png",
			ModuleSize: 16,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxBodyKB:       64,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
	}
}

var validLevels = map[string]bool{"": true, "L": true, "M": true, "Q": true, "H": true}

var validFormats = map[string]bool{"png": true, "svg": true, "pdf": true}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := c.Render.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// Validate checks render settings against the values the library
// accepts, so failures surface before any symbol is encoded.
func (r *RenderConfig) Validate() error {
	if !validLevels[strings.ToUpper(r.Level)] {
		return fmt.Errorf("invalid error-correction level %q (use L, M, Q or H)", r.Level)
	}
	if r.LogoSizeFraction < 0 || r.LogoSizeFraction > 0.3 {
		return fmt.Errorf("logo_size_fraction %v out of range (0, 0.3]", r.LogoSizeFraction)
	}
	if r.LogoSizeFraction > 0 && r.LogoPath == "" {
		return fmt.Errorf("logo_size_fraction set without logo_path")
	}
	if k := r.Gradient.Kind; k != "" && k != string(qrforge.GradientLinear) && k != string(qrforge.GradientRadial) {
		return fmt.Errorf("invalid gradient kind %q (use linear or radial)", k)
	}
	// Style names are validated by the renderer itself; run the same
	// check here for early feedback.
	return r.ToStyle().Validate()
}

func (o *OutputConfig) Validate() error {
	if !validFormats[strings.ToLower(o.Format)] {
		return fmt.Errorf("invalid output format %q (use png, svg or pdf)", o.Format)
	}
	if o.ModuleSize < 0 || o.ModuleSize > 256 {
		return fmt.Errorf("module_size %d out of range [1, 256]", o.ModuleSize)
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid server port %d", s.Port)
	}
	if s.MaxBodyKB < 1 {
		return fmt.Errorf("max_body_kb must be positive, got %d", s.MaxBodyKB)
	}
	if s.TimeoutSec < 1 {
		return fmt.Errorf("timeout_sec must be positive, got %d", s.TimeoutSec)
	}
	return nil
}

// ToStyle converts render settings into the library configuration.
func (r *RenderConfig) ToStyle() qrforge.Config {
	cfg := qrforge.Config{
		Level:            strings.ToUpper(r.Level),
		DotStyle:         qrforge.DotStyle(r.DotStyle),
		EyeFrameStyle:    qrforge.EyeStyle(r.EyeFrameStyle),
		EyePupilStyle:    qrforge.EyeStyle(r.EyePupilStyle),
		DarkColor:        r.DarkColor,
		LightColor:       r.LightColor,
		EyeColor:         r.EyeColor,
		LogoSizeFraction: r.LogoSizeFraction,
		NoQuietZone:      r.NoQuietZone,
	}
	if r.Gradient.Kind != "" {
		cfg.Gradient = &qrforge.Gradient{
			Kind:  qrforge.GradientKind(r.Gradient.Kind),
			From:  r.Gradient.From,
			To:    r.Gradient.To,
			Angle: r.Gradient.Angle,
		}
	}
	return cfg
}
