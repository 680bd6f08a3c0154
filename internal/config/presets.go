package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Presets is a set of named render configurations loaded from a
// standalone YAML file, so teams can share house styles without
// repeating flag soup.
type Presets map[string]RenderConfig

// LoadPresets reads and validates a preset file.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets file: %w", err)
	}
	var presets Presets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parsing presets file %s: %w", path, err)
	}
	for name, render := range presets {
		if err := render.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return presets, nil
}

// Resolve returns the named preset merged over base: preset fields
// that are set win, everything else keeps the base value.
func (p Presets) Resolve(name string, base RenderConfig) (RenderConfig, error) {
	preset, ok := p[name]
	if !ok {
		return base, fmt.Errorf("unknown preset %q (have %v)", name, p.Names())
	}
	merged := base
	if preset.Level != "" {
		merged.Level = preset.Level
	}
	if preset.DotStyle != "" {
		merged.DotStyle = preset.DotStyle
	}
	if preset.EyeFrameStyle != "" {
		merged.EyeFrameStyle = preset.EyeFrameStyle
	}
	if preset.EyePupilStyle != "" {
		merged.EyePupilStyle = preset.EyePupilStyle
	}
	if preset.DarkColor != "" {
		merged.DarkColor = preset.DarkColor
	}
	if preset.LightColor != "" {
		merged.LightColor = preset.LightColor
	}
	if preset.EyeColor != "" {
		merged.EyeColor = preset.EyeColor
	}
	if preset.Gradient.Kind != "" {
		merged.Gradient = preset.Gradient
	}
	if preset.LogoPath != "" {
		merged.LogoPath = preset.LogoPath
	}
	if preset.LogoSizeFraction != 0 {
		merged.LogoSizeFraction = preset.LogoSizeFraction
	}
	if preset.NoQuietZone {
		merged.NoQuietZone = true
	}
	return merged, nil
}

// Names lists the preset names in stable order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
