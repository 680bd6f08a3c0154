package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/wispkit/qrforge"
	"github.com/wispkit/qrforge/internal/config"
	"github.com/wispkit/qrforge/internal/export"
	"github.com/wispkit/qrforge/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode health response", "error", err)
	}
}

// presetsHandler lists the render presets the server was started with.
func (s *Server) presetsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"presets": s.presets.Names(),
		"count":   len(s.presets),
	}); err != nil {
		slog.Error("Failed to encode presets response", "error", err)
	}
}

// generateHandler encodes and renders one symbol per request.
func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyKB*1024)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "invalid_request", "malformed JSON body", http.StatusBadRequest)
		return
	}
	if req.Value == "" {
		s.writeErrorResponse(w, "invalid_request", "value is required", http.StatusBadRequest)
		return
	}

	render := s.defaults
	if req.Preset != "" {
		var err error
		if render, err = s.presets.Resolve(req.Preset, render); err != nil {
			s.writeErrorResponse(w, "unknown_preset", err.Error(), http.StatusBadRequest)
			return
		}
	}
	applyRequest(&render, &req)

	format := strings.ToLower(req.Format)
	if format == "" {
		format = "png"
	}
	moduleSize := req.ModuleSize
	if moduleSize <= 0 {
		moduleSize = s.moduleSize
	}

	style := render.ToStyle()
	start := time.Now()
	sym, err := qrforge.EncodeSymbol(req.Value, style)
	if err != nil {
		s.writeEncodeError(w, err)
		symbolsGenerated.WithLabelValues(style.Level, format, "error").Inc()
		return
	}
	scene, err := qrforge.Render(sym, style)
	if err != nil {
		s.writeErrorResponse(w, "invalid_style", err.Error(), http.StatusBadRequest)
		symbolsGenerated.WithLabelValues(sym.Level(), format, "error").Inc()
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		resp := SymbolResponse{
			Version: sym.Version(),
			Size:    sym.Size(),
			Level:   sym.Level(),
			Mask:    sym.Mask(),
			Modules: sym.Rows(),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("Failed to encode symbol response", "error", err)
		}
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		if _, err := w.Write(export.SVG(scene, moduleSize)); err != nil {
			slog.Error("Failed to write SVG response", "error", err)
		}
	case "png":
		var buf bytes.Buffer
		if err := export.PNG(&buf, scene, moduleSize, nil); err != nil {
			s.writeErrorResponse(w, "render_failed", err.Error(), http.StatusInternalServerError)
			symbolsGenerated.WithLabelValues(sym.Level(), format, "error").Inc()
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if _, err := w.Write(buf.Bytes()); err != nil {
			slog.Error("Failed to write PNG response", "error", err)
		}
	default:
		s.writeErrorResponse(w, "invalid_request", "format must be png, svg or json", http.StatusBadRequest)
		return
	}

	symbolsGenerated.WithLabelValues(sym.Level(), format, "success").Inc()
	symbolVersions.Observe(float64(sym.Version()))
	generateDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
}

// applyRequest overlays non-empty request fields onto the resolved
// render configuration.
func applyRequest(render *config.RenderConfig, req *GenerateRequest) {
	if req.Level != "" {
		render.Level = req.Level
	}
	if req.DotStyle != "" {
		render.DotStyle = req.DotStyle
	}
	if req.EyeFrameStyle != "" {
		render.EyeFrameStyle = req.EyeFrameStyle
	}
	if req.EyePupilStyle != "" {
		render.EyePupilStyle = req.EyePupilStyle
	}
	if req.DarkColor != "" {
		render.DarkColor = req.DarkColor
	}
	if req.LightColor != "" {
		render.LightColor = req.LightColor
	}
	if req.EyeColor != "" {
		render.EyeColor = req.EyeColor
	}
	if req.Gradient != nil {
		render.Gradient = config.GradientConfig{
			Kind:  req.Gradient.Kind,
			From:  req.Gradient.From,
			To:    req.Gradient.To,
			Angle: req.Gradient.Angle,
		}
	}
	if req.LogoSizeFraction != 0 {
		render.LogoSizeFraction = req.LogoSizeFraction
		render.LogoPath = ""
	}
	if req.NoQuietZone {
		render.NoQuietZone = true
	}
}

// writeEncodeError maps library failures onto HTTP statuses: caller
// mistakes get 422, everything else 500.
func (s *Server) writeEncodeError(w http.ResponseWriter, err error) {
	var capErr *qrforge.CapacityExceededError
	var logoErr *qrforge.LogoOverlayTooLargeError
	switch {
	case errors.As(err, &capErr):
		s.writeErrorResponse(w, "capacity_exceeded", err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &logoErr):
		s.writeErrorResponse(w, "logo_too_large", err.Error(), http.StatusUnprocessableEntity)
	default:
		s.writeErrorResponse(w, "encode_failed", err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: code, Message: message}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}
