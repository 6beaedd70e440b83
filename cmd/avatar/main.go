// Avatar - drives a 3D avatar's head, torso, mouth, blinks and expressions
// from a tracked human face
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-avatar/pkg/avatar"
)

func main() {
	cfg := parseFlags()

	app, err := avatar.New(cfg)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Init(ctx); err != nil {
		app.Shutdown()
		log.Fatalf("❌ Initialization failed: %v", err)
	}
	defer app.Shutdown()

	if err := app.Run(ctx); err != nil {
		log.Printf("❌ Runtime error: %v", err)
	}
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() avatar.Config {
	cfg := avatar.DefaultConfig()

	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")
	flag.BoolVar(&cfg.DebugTracking, "debug-tracking", false, "Log every detector pass")
	flag.BoolVar(&cfg.DebugFrames, "debug-frames", false, "Trace every animation frame (very verbose)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "Dashboard port (overrides AVATAR_PORT)")
	flag.StringVar(&cfg.Source, "source", cfg.Source, "Observation source: camera, web")
	flag.StringVar(&cfg.CameraDevice, "camera", cfg.CameraDevice, "Capture device index or URL (overrides CAMERA_DEVICE)")
	flag.StringVar(&cfg.ModelPath, "model", cfg.ModelPath, "YuNet ONNX model path (overrides YUNET_MODEL)")
	flag.StringVar(&cfg.RendererURL, "renderer", "", "Renderer websocket URL (overrides RENDERER_URL)")
	flag.StringVar(&cfg.TuningPath, "tuning", "", "YAML tuning file (overrides AVATAR_TUNING)")
	flag.Float64Var(&cfg.Aspect, "aspect", cfg.Aspect, "Avatar viewport aspect ratio")
	flag.Parse()

	return cfg
}
