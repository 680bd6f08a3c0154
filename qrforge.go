// Package qrforge encodes text into QR symbols and renders them as
// styled, size-agnostic scenes of drawable shapes.
package qrforge

import (
	"fmt"

	"github.com/wispkit/qrforge/internal/bitset"
	"github.com/wispkit/qrforge/internal/codeword"
	"github.com/wispkit/qrforge/internal/matrix"
	"github.com/wispkit/qrforge/internal/segment"
	"github.com/wispkit/qrforge/internal/symbol"
)

// DefaultLevel is the error-correction level used when Config.Level
// is left empty.
const DefaultLevel = "M"

// Logo reservations occlude modules, so they are capped by the
// recovery budget of the effective error-correction level.
const (
	maxLogoFraction  = 0.30 // requires level H
	maxLogoFractionQ = 0.20
)

// Config carries every recognized encoding and styling option. The
// zero value encodes at level M with square dots, black on white,
// and a quiet zone.
type Config struct {
	Level            string // "L", "M", "Q" or "H"; empty means M
	DotStyle         DotStyle
	EyeFrameStyle    EyeStyle
	EyePupilStyle    EyeStyle
	DarkColor        string
	LightColor       string
	EyeColor         string // empty falls back to DarkColor
	Gradient         *Gradient
	LogoSizeFraction float64 // centered hole side length as a fraction of the symbol side, (0, 0.3]
	NoQuietZone      bool
	ClassyRules      *ClassyRules
}

func (c Config) withDefaults() Config {
	if c.DotStyle == "" {
		c.DotStyle = DotSquare
	}
	if c.EyeFrameStyle == "" {
		c.EyeFrameStyle = EyeSquare
	}
	if c.EyePupilStyle == "" {
		c.EyePupilStyle = EyeSquare
	}
	if c.DarkColor == "" {
		c.DarkColor = "#000000"
	}
	if c.LightColor == "" {
		c.LightColor = "#ffffff"
	}
	return c
}

// Validate checks the style fields without encoding anything.
func (c Config) Validate() error {
	switch c.DotStyle {
	case "", DotSquare, DotRounded, DotCircle, DotClassyRounded:
	default:
		return fmt.Errorf("unknown dot style %q", c.DotStyle)
	}
	for _, s := range [2]EyeStyle{c.EyeFrameStyle, c.EyePupilStyle} {
		switch s {
		case "", EyeSquare, EyeRounded, EyeCircle:
		default:
			return fmt.Errorf("unknown eye style %q", s)
		}
	}
	if g := c.Gradient; g != nil && g.Kind != GradientLinear && g.Kind != GradientRadial {
		return fmt.Errorf("unknown gradient kind %q", g.Kind)
	}
	return nil
}

// effectiveLevel resolves the requested level and raises it to the
// floor a logo reservation demands. Fractions above 0.20 need level
// H; any logo at all needs at least Q.
func (c Config) effectiveLevel() (symbol.Level, error) {
	name := c.Level
	if name == "" {
		name = DefaultLevel
	}
	lvl, err := symbol.ParseLevel(name)
	if err != nil {
		return 0, err
	}
	f := c.LogoSizeFraction
	if f == 0 {
		return lvl, nil
	}
	if f < 0 || f > maxLogoFraction {
		return 0, &LogoOverlayTooLargeError{Fraction: f, Max: maxLogoFraction, Level: symbol.LevelH.String()}
	}
	floor := symbol.LevelQ
	if f > maxLogoFractionQ {
		floor = symbol.LevelH
	}
	if lvl < floor {
		lvl = floor
	}
	return lvl, nil
}

// Symbol is a finished module matrix together with the version,
// level and mask that produced it.
type Symbol struct {
	m *matrix.Matrix
}

// Size returns the side length in modules.
func (s *Symbol) Size() int { return s.m.Size() }

// Version returns the symbol version, 1 through 40.
func (s *Symbol) Version() int { return s.m.Version() }

// Level returns the error-correction level name.
func (s *Symbol) Level() string { return s.m.Level().String() }

// Mask returns the selected mask pattern id, 0 through 7.
func (s *Symbol) Mask() int { return s.m.Mask() }

// Dark reports whether the module at (row, col) is dark.
func (s *Symbol) Dark(row, col int) bool { return s.m.Dark(row, col) }

// Rows returns the matrix as row-major boolean slices.
func (s *Symbol) Rows() [][]bool { return s.m.Rows() }

// EncodeSymbol runs the full pipeline short of rendering: split the
// value into segments, pick the smallest version that holds them at
// the effective level, build the interleaved codeword stream and
// place it into a masked matrix.
//
// Segment count fields widen with the version class, so selection
// re-splits per class and accepts the first class whose smallest
// fitting version falls inside it. Bit cost only grows with the
// class, which keeps the chosen version minimal.
func EncodeSymbol(value string, cfg Config) (*Symbol, error) {
	lvl, err := cfg.effectiveLevel()
	if err != nil {
		return nil, err
	}
	for class := 0; class < segment.NumClasses; class++ {
		segs := segment.Split(value, class)
		bits := segment.TotalBits(segs, class)
		v := symbol.SmallestVersion((bits+7)/8, lvl)
		if v == 0 {
			break
		}
		if segment.ClassOf(v) != class {
			continue
		}
		b := bitset.New()
		if err := segment.Encode(segs, class, b); err != nil {
			return nil, err
		}
		stream, err := codeword.Build(b, v, lvl)
		if err != nil {
			return nil, err
		}
		return &Symbol{m: matrix.Build(v, lvl, stream)}, nil
	}
	return nil, &CapacityExceededError{Length: len(value), Level: lvl.String()}
}

// Encode is the single-call entry point: encode value, then render
// it with cfg. The result is deterministic in (value, cfg).
func Encode(value string, cfg Config) (*Scene, error) {
	sym, err := EncodeSymbol(value, cfg)
	if err != nil {
		return nil, err
	}
	return Render(sym, cfg)
}
