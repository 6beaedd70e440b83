// Package config provides configuration helpers for go-avatar commands.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teslashibe/go-avatar/pkg/animation"
)

// Default avatar configuration.
const (
	DefaultPort       = "8080"
	DefaultCamera     = "0"
	DefaultYuNetModel = "models/face_detection_yunet.onnx"
)

// Port returns the dashboard port from AVATAR_PORT env var or default.
func Port() string {
	return envOr("AVATAR_PORT", DefaultPort)
}

// CameraDevice returns the capture device from CAMERA_DEVICE env var or default.
func CameraDevice() string {
	return envOr("CAMERA_DEVICE", DefaultCamera)
}

// YuNetModel returns the detector model path from YUNET_MODEL env var or default.
func YuNetModel() string {
	return envOr("YUNET_MODEL", DefaultYuNetModel)
}

// RendererURL returns the external renderer websocket URL from RENDERER_URL.
// Empty means no remote renderer.
func RendererURL() string {
	return os.Getenv("RENDERER_URL")
}

// TuningPath returns the tuning file path from AVATAR_TUNING. Empty means
// the built-in defaults.
func TuningPath() string {
	return os.Getenv("AVATAR_TUNING")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadTuning reads a YAML tuning file over animation.DefaultConfig. Keys
// missing from the file keep their defaults. An empty path returns the
// defaults.
func LoadTuning(path string) (animation.Config, error) {
	cfg := animation.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read tuning %s: %w", path, err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes YAML tuning over the defaults and validates it.
func ParseTuning(data []byte) (animation.Config, error) {
	cfg := animation.DefaultConfig()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", animation.ErrInvalidConfig, err)
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return cfg, fmt.Errorf("%w: %s", animation.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return cfg, nil
}
