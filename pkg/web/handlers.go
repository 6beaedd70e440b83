package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-avatar/pkg/face"
	"github.com/teslashibe/go-avatar/pkg/hub"
)

// ErrIngestDisabled is returned when observations arrive but the pipeline
// reads from a local camera.
var ErrIngestDisabled = errors.New("observation ingest disabled")

// handleStatus returns the pipeline status and client counts
func (s *Server) handleStatus(c *fiber.Ctx) error {
	resp := StatusResponse{
		PoseClients:   s.poseHub.ClientCount(),
		CameraClients: s.cameraHub.ClientCount(),
		Ingested:      s.ingested.Load(),
		Rejected:      s.rejected.Load(),
	}
	if s.OnStatus != nil {
		st := s.OnStatus()
		resp.Pipeline = &st
	}
	return c.JSON(resp)
}

// handleConfig returns the active tuning
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(s.tuning)
}

// handleObserve accepts one Human.js face result; a JSON null means no face
func (s *Server) handleObserve(c *fiber.Ctx) error {
	err := s.ingest(c.Body())
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusAccepted)
	case errors.Is(err, ErrIngestDisabled):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, face.ErrInvalidObservation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

// handlePoseWS streams animation frames
func (s *Server) handlePoseWS(c *websocket.Conn) {
	if client := hub.NewClient(s.poseHub, c); client != nil {
		client.Run()
	}
}

// handleCameraWS streams camera preview JPEGs
func (s *Server) handleCameraWS(c *websocket.Conn) {
	if client := hub.NewClient(s.cameraHub, c); client != nil {
		client.Run()
	}
}

// handleObserveWS reads one Human.js face per text message
func (s *Server) handleObserveWS(c *websocket.Conn) {
	client := hub.NewClient(s.observeHub, c)
	if client == nil {
		return
	}
	client.OnMessage = func(mt int, data []byte) {
		if mt != websocket.TextMessage {
			return
		}
		if err := s.ingest(data); err != nil {
			s.logger.Debug("observation rejected", "client", client.ID, "error", err)
		}
	}
	client.Run()
}
