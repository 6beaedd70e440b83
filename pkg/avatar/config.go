// Package avatar wires face sources, the animation pipeline, appliers and
// the dashboard into one application.
package avatar

import (
	"github.com/teslashibe/go-avatar/internal/config"
)

// Observation sources.
const (
	SourceCamera = "camera" // Local webcam + YuNet
	SourceWeb    = "web"    // Browser-side detector posting to /ws/observe
)

// Config holds all configuration for the avatar application.
// Flag parsing is done in cmd/avatar/main.go; this struct is data only.
type Config struct {
	// Debug output
	Debug         bool
	DebugTracking bool
	DebugFrames   bool
	LogLevel      string

	// Dashboard port
	Port string

	// Source selects where observations come from (camera or web).
	Source string

	// Camera source
	CameraDevice string
	ModelPath    string

	// RendererURL, if set, receives every frame over websocket.
	RendererURL string

	// TuningPath is an optional YAML file over the default tuning.
	TuningPath string

	// Aspect is the avatar viewport width/height.
	Aspect float64
}

// DefaultConfig returns sensible defaults for the avatar.
func DefaultConfig() Config {
	return Config{
		LogLevel:     "info",
		Port:         config.DefaultPort,
		Source:       SourceWeb,
		CameraDevice: config.DefaultCamera,
		ModelPath:    config.DefaultYuNetModel,
		Aspect:       16.0 / 9.0,
	}
}

// LoadEnvConfig applies environment variables to fields still at their
// defaults. Call this after flag parsing so flags win.
func (c *Config) LoadEnvConfig() {
	def := DefaultConfig()
	if c.Port == def.Port {
		c.Port = config.Port()
	}
	if c.CameraDevice == def.CameraDevice {
		c.CameraDevice = config.CameraDevice()
	}
	if c.ModelPath == def.ModelPath {
		c.ModelPath = config.YuNetModel()
	}
	if c.RendererURL == "" {
		c.RendererURL = config.RendererURL()
	}
	if c.TuningPath == "" {
		c.TuningPath = config.TuningPath()
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Source != SourceCamera && c.Source != SourceWeb {
		return &ConfigError{Field: "Source", Message: "source must be camera or web, got " + c.Source}
	}
	if c.Port == "" {
		return &ConfigError{Field: "Port", Message: "dashboard port is required"}
	}
	if c.Aspect <= 0 {
		return &ConfigError{Field: "Aspect", Message: "aspect must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
