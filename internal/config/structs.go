package config

// Config represents the complete configuration for the qrforge
// application. It covers the generate and serve commands and loads
// from configuration files, environment variables, and flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Symbol encoding and styling
	Render RenderConfig `mapstructure:"render" yaml:"render" json:"render"`

	// Output artifact settings
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// PresetsFile points at a YAML file of named render presets.
	PresetsFile string `mapstructure:"presets_file" yaml:"presets_file" json:"presets_file"`
}

// RenderConfig contains the encoding and styling options of one
// symbol. Field semantics follow the library configuration it maps
// onto.
type RenderConfig struct {
	Level            string         `mapstructure:"level" yaml:"level" json:"level"`
	DotStyle         string         `mapstructure:"dot_style" yaml:"dot_style" json:"dot_style"`
	EyeFrameStyle    string         `mapstructure:"eye_frame_style" yaml:"eye_frame_style" json:"eye_frame_style"`
	EyePupilStyle    string         `mapstructure:"eye_pupil_style" yaml:"eye_pupil_style" json:"eye_pupil_style"`
	DarkColor        string         `mapstructure:"dark_color" yaml:"dark_color" json:"dark_color"`
	LightColor       string         `mapstructure:"light_color" yaml:"light_color" json:"light_color"`
	EyeColor         string         `mapstructure:"eye_color" yaml:"eye_color" json:"eye_color"`
	Gradient         GradientConfig `mapstructure:"gradient" yaml:"gradient" json:"gradient"`
	LogoPath         string         `mapstructure:"logo_path" yaml:"logo_path" json:"logo_path"`
	LogoSizeFraction float64        `mapstructure:"logo_size_fraction" yaml:"logo_size_fraction" json:"logo_size_fraction"`
	NoQuietZone      bool           `mapstructure:"no_quiet_zone" yaml:"no_quiet_zone" json:"no_quiet_zone"`
}

// GradientConfig describes an optional dark-fill gradient. An empty
// Kind disables it.
type GradientConfig struct {
	Kind  string  `mapstructure:"kind" yaml:"kind" json:"kind"`
	From  string  `mapstructure:"from" yaml:"from" json:"from"`
	To    string  `mapstructure:"to" yaml:"to" json:"to"`
	Angle float64 `mapstructure:"angle" yaml:"angle" json:"angle"`
}

// OutputConfig contains artifact settings.
type OutputConfig struct {
	Format     string `mapstructure:"format" yaml:"format" json:"format"`
	File       string `mapstructure:"file" yaml:"file" json:"file"`
	ModuleSize int    `mapstructure:"module_size" yaml:"module_size" json:"module_size"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxBodyKB       int    `mapstructure:"max_body_kb" yaml:"max_body_kb" json:"max_body_kb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}
