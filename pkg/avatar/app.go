package avatar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teslashibe/go-avatar/internal/config"
	"github.com/teslashibe/go-avatar/internal/log"
	"github.com/teslashibe/go-avatar/pkg/animation"
	"github.com/teslashibe/go-avatar/pkg/applier"
	"github.com/teslashibe/go-avatar/pkg/debug"
	"github.com/teslashibe/go-avatar/pkg/face"
	"github.com/teslashibe/go-avatar/pkg/web"
)

// previewInterval throttles camera frames sent to the dashboard.
const previewInterval = 100 * time.Millisecond // 10 FPS

// App is the main avatar application.
// It manages all components and their lifecycle.
type App struct {
	config Config
	tuning animation.Config
	logger *slog.Logger

	// Sources
	webcam       *face.Webcam
	detector     face.Detector
	observations *face.LatestSource
	source       animation.Source

	// Output
	remote    *applier.Remote
	webServer *web.Server

	orchestrator *animation.Orchestrator
	lastPreview  time.Time
}

// New creates a new avatar application with the given configuration.
func New(cfg Config) (*App, error) {
	// Apply environment overrides
	cfg.LoadEnvConfig()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug.Enabled = cfg.Debug
	debug.Tracking = cfg.DebugTracking
	debug.Frames = cfg.DebugFrames
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}
	log.Init(cfg.LogLevel)

	return &App{
		config: cfg,
		logger: log.Component("avatar"),
	}, nil
}

// Init builds all components. Call this after New() and before Run().
func (a *App) Init(ctx context.Context) error {
	fmt.Println("🧑 Avatar - Face-Driven Animation")
	fmt.Println("=================================")
	if debug.Enabled {
		fmt.Println("🐛 Debug mode enabled")
	}

	tuning, err := config.LoadTuning(a.config.TuningPath)
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	a.tuning = tuning
	if a.config.TuningPath != "" {
		a.logger.Info("tuning loaded", "path", a.config.TuningPath)
	}

	if err := a.initSource(); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	a.webServer = web.NewServer(a.config.Port, a.tuning, a.observations)

	appliers := applier.Multi{applier.NewHub(a.webServer.PoseHub())}
	if a.config.RendererURL != "" {
		fmt.Printf("🔌 Connecting to renderer %s... ", a.config.RendererURL)
		remote, err := applier.DialRemote(ctx, applier.DefaultRemoteConfig(a.config.RendererURL))
		if err != nil {
			return fmt.Errorf("renderer: %w", err)
		}
		fmt.Println("✅")
		a.remote = remote
		appliers = append(appliers, applier.NewBestEffort("renderer", remote))
	}

	camera := animation.NewPortraitCamera(a.config.Aspect)
	a.orchestrator = animation.New(a.tuning, camera, a.source, appliers)
	a.webServer.OnStatus = a.orchestrator.Status

	a.logger.Info("pipeline ready",
		"session", a.orchestrator.Session(),
		"source", a.config.Source,
		"frame_interval", a.tuning.FrameInterval)
	return nil
}

// initSource opens the webcam and detector, or prepares the web ingest.
func (a *App) initSource() error {
	if a.config.Source == SourceWeb {
		a.observations = face.NewLatestSource()
		a.source = a.observations
		fmt.Printf("🌐 Waiting for observations on ws://localhost:%s/ws/observe\n", a.config.Port)
		return nil
	}

	fmt.Print("📷 Opening camera... ")
	camCfg := face.DefaultWebcamConfig()
	camCfg.Device = a.config.CameraDevice
	webcam, err := face.OpenWebcam(camCfg)
	if err != nil {
		return err
	}
	fmt.Println("✅")
	a.webcam = webcam

	detCfg := face.DefaultConfig()
	detCfg.ModelPath = a.config.ModelPath
	detector, err := face.NewYuNet(detCfg)
	if err != nil {
		return err
	}
	a.detector = detector

	src := face.NewCameraSource(webcam, detector)
	src.OnFrame = a.sendPreview
	a.source = src
	return nil
}

// sendPreview forwards camera frames to the dashboard at previewInterval.
// Runs on the pipeline goroutine.
func (a *App) sendPreview(jpeg []byte) {
	if a.webServer == nil || time.Since(a.lastPreview) < previewInterval {
		return
	}
	a.lastPreview = time.Now()
	a.webServer.SendCameraFrame(jpeg)
}

// Run starts the dashboard and the pipeline.
// Blocks until ctx is cancelled or a frame cannot be applied.
func (a *App) Run(ctx context.Context) error {
	fmt.Println("\n🎭 Avatar is live!")
	fmt.Println("   (Ctrl+C to exit)")

	a.webServer.StartAsync(ctx)
	return a.orchestrator.Run(ctx)
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown() {
	fmt.Println("\n👋 Goodbye!")

	if a.remote != nil {
		a.remote.Close()
	}
	if a.webServer != nil {
		a.webServer.Shutdown()
	}
	if a.detector != nil {
		a.detector.Close()
	}
	if a.webcam != nil {
		a.webcam.Close()
	}
}
