package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wispkit/qrforge/internal/config"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	defaults    config.RenderConfig
	presets     config.Presets
	corsOrigin  string
	maxBodyKB   int64
	moduleSize  int
	rateLimiter *RateLimiter
}

// Config holds server configuration.
type Config struct {
	Host       string
	Port       int
	CORSOrigin string
	MaxBodyKB  int64
	ModuleSize int

	// Defaults applies whenever a request leaves a style field empty.
	Defaults config.RenderConfig

	// Presets are the named styles requests can reference.
	Presets config.Presets

	// RequestsPerMinute enables per-client rate limiting when > 0.
	RequestsPerMinute int
}

// GenerateRequest is the JSON body of POST /generate.
type GenerateRequest struct {
	Value            string        `json:"value"`
	Preset           string        `json:"preset,omitempty"`
	Level            string        `json:"level,omitempty"`
	DotStyle         string        `json:"dot_style,omitempty"`
	EyeFrameStyle    string        `json:"eye_frame_style,omitempty"`
	EyePupilStyle    string        `json:"eye_pupil_style,omitempty"`
	DarkColor        string        `json:"dark_color,omitempty"`
	LightColor       string        `json:"light_color,omitempty"`
	EyeColor         string        `json:"eye_color,omitempty"`
	Gradient         *GradientSpec `json:"gradient,omitempty"`
	LogoSizeFraction float64       `json:"logo_size_fraction,omitempty"`
	NoQuietZone      bool          `json:"no_quiet_zone,omitempty"`
	Format           string        `json:"format,omitempty"` // png, svg or json
	ModuleSize       int           `json:"module_size,omitempty"`
}

type GradientSpec struct {
	Kind  string  `json:"kind"`
	From  string  `json:"from"`
	To    string  `json:"to"`
	Angle float64 `json:"angle,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// SymbolResponse is the JSON form of a generated symbol, returned
// when the request asks for format "json".
type SymbolResponse struct {
	Version int      `json:"version"`
	Size    int      `json:"size"`
	Level   string   `json:"level"`
	Mask    int      `json:"mask"`
	Modules [][]bool `json:"modules"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewServer creates a new symbol generation server instance.
func NewServer(cfg Config) *Server {
	s := &Server{
		defaults:   cfg.Defaults,
		presets:    cfg.Presets,
		corsOrigin: cfg.CORSOrigin,
		maxBodyKB:  cfg.MaxBodyKB,
		moduleSize: cfg.ModuleSize,
	}
	if s.corsOrigin == "" {
		s.corsOrigin = "*"
	}
	if s.maxBodyKB <= 0 {
		s.maxBodyKB = 64
	}
	if cfg.RequestsPerMinute > 0 {
		s.rateLimiter = NewRateLimiter(cfg.RequestsPerMinute)
	}
	return s
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/generate", s.corsMiddleware(s.rateLimitMiddleware(s.generateHandler)))
	mux.HandleFunc("/presets", s.corsMiddleware(s.presetsHandler))
	mux.Handle("/metrics", promhttp.Handler())
}
