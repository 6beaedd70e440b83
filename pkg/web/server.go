// Package web provides the avatar dashboard and observation ingest
package web

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-avatar/internal/log"
	"github.com/teslashibe/go-avatar/pkg/animation"
	"github.com/teslashibe/go-avatar/pkg/face"
	"github.com/teslashibe/go-avatar/pkg/hub"
)

// StatusResponse is the body of GET /api/status
type StatusResponse struct {
	Pipeline      *animation.Status `json:"pipeline,omitempty"`
	PoseClients   int               `json:"pose_clients"`
	CameraClients int               `json:"camera_clients"`
	Ingested      uint64            `json:"observations_ingested"`
	Rejected      uint64            `json:"observations_rejected"`
}

// Server is the web dashboard server
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	tuning animation.Config

	// Observations pushed by browser-side detectors. Nil disables ingest.
	observations *face.LatestSource
	ingested     atomic.Uint64
	rejected     atomic.Uint64

	// Hubs for websocket broadcast
	poseHub    *hub.Hub
	cameraHub  *hub.Hub
	observeHub *hub.Hub

	// OnStatus reports the pipeline status. Set before Start.
	OnStatus func() animation.Status
}

// NewServer creates the dashboard. observations may be nil when the
// pipeline reads from a local camera instead.
func NewServer(port string, tuning animation.Config, observations *face.LatestSource) *Server {
	s := &Server{
		port:         port,
		logger:       log.Component("web"),
		tuning:       tuning,
		observations: observations,
		poseHub:      hub.NewRetaining("pose"),
		cameraHub:    hub.New("camera"),
		observeHub:   hub.New("observe"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Avatar Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/config", s.handleConfig)
	api.Post("/observe", s.handleObserve)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/pose", websocket.New(s.handlePoseWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))
	app.Get("/ws/observe", websocket.New(s.handleObserveWS))

	s.app = app
	return s
}

// Start runs the hubs and serves until the listener fails or Shutdown is
// called. The hubs stop when ctx is done.
func (s *Server) Start(ctx context.Context) error {
	fmt.Printf("🌐 Avatar dashboard: http://localhost:%s\n", s.port)

	go s.poseHub.Run(ctx)
	go s.cameraHub.Run(ctx)
	go s.observeHub.Run(ctx)

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync(ctx context.Context) {
	go func() {
		if err := s.Start(ctx); err != nil {
			s.logger.Error("web server stopped", "error", err)
		}
	}()
}

// SendCameraFrame sends a camera preview frame to all connected clients
func (s *Server) SendCameraFrame(jpegData []byte) {
	s.cameraHub.BroadcastBinary(jpegData)
}

// PoseHub returns the hub that carries animation frames to /ws/pose
func (s *Server) PoseHub() *hub.Hub {
	return s.poseHub
}

// App exposes the fiber app for tests and embedding
func (s *Server) App() *fiber.App {
	return s.app
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// ingest parses a Human.js face and hands it to the pipeline
func (s *Server) ingest(data []byte) error {
	if s.observations == nil {
		return ErrIngestDisabled
	}
	obs, err := face.ParseHuman(data)
	if err != nil {
		s.rejected.Add(1)
		return err
	}
	s.observations.Push(obs)
	s.ingested.Add(1)
	return nil
}
