package face

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gocv.io/x/gocv"
)

// LatestSource hands the pipeline the most recent observation pushed by an
// asynchronous producer such as the websocket ingest. Each pushed value is
// delivered at most once; ticks with nothing new see no face.
type LatestSource struct {
	mu       sync.Mutex
	obs      *Observation
	pending  bool
	received uint64
}

// NewLatestSource creates an empty source.
func NewLatestSource() *LatestSource {
	return &LatestSource{}
}

// Push stores an observation. A nil observation reports "no face".
func (s *LatestSource) Push(obs *Observation) {
	s.mu.Lock()
	s.obs = obs
	s.pending = true
	s.received++
	s.mu.Unlock()
}

// Received returns how many observations have been pushed.
func (s *LatestSource) Received() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.received
}

// Next returns the unread observation, or nil when nothing new arrived.
func (s *LatestSource) Next(ctx context.Context) (*Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending {
		return nil, nil
	}
	obs := s.obs
	s.obs = nil
	s.pending = false
	return obs, nil
}

// FrameCapturer grabs encoded frames from a capture device.
type FrameCapturer interface {
	CaptureJPEG() ([]byte, error)
}

// WebcamConfig holds capture settings. Zero values keep the driver default.
type WebcamConfig struct {
	Device    string `json:"device"`    // Index ("0") or URL
	Width     int    `json:"width"`     // Frame width in pixels
	Height    int    `json:"height"`    // Frame height in pixels
	Framerate int    `json:"framerate"` // Target FPS
	Quality   int    `json:"quality"`   // JPEG quality 1-100
}

// DefaultWebcamConfig returns 720p, enough for a single face at desk range.
func DefaultWebcamConfig() WebcamConfig {
	return WebcamConfig{
		Device:    "0",
		Width:     1280,
		Height:    720,
		Framerate: 30,
		Quality:   85,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *WebcamConfig) Validate() []string {
	var errors []string

	if c.Device == "" {
		errors = append(errors, "device is required")
	}
	if c.Width < 0 || c.Height < 0 {
		errors = append(errors, "width and height must not be negative")
	}
	if c.Framerate < 0 || c.Framerate > 120 {
		errors = append(errors, "framerate must be between 0 and 120")
	}
	if c.Quality < 0 || c.Quality > 100 {
		errors = append(errors, "quality must be between 0 and 100")
	}

	return errors
}

// Webcam reads frames from a local capture device through OpenCV.
type Webcam struct {
	capture *gocv.VideoCapture
	frame   gocv.Mat
	quality int
	mu      sync.Mutex
}

// OpenWebcam opens a capture device and applies cfg.
func OpenWebcam(cfg WebcamConfig) (*Webcam, error) {
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrCameraUnavailable, strings.Join(problems, "; "))
	}

	capture, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrCameraUnavailable, cfg.Device, err)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
		capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}
	if cfg.Framerate > 0 {
		capture.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))
	}

	quality := cfg.Quality
	if quality == 0 {
		quality = 95 // OpenCV default
	}
	return &Webcam{
		capture: capture,
		frame:   gocv.NewMat(),
		quality: quality,
	}, nil
}

// CaptureJPEG reads one frame and returns it JPEG-encoded.
func (w *Webcam) CaptureJPEG() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ok := w.capture.Read(&w.frame); !ok || w.frame.Empty() {
		return nil, fmt.Errorf("%w: read failed", ErrCameraUnavailable)
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, w.frame, []int{int(gocv.IMWriteJpegQuality), w.quality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases C memory released by Close.
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the capture device.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frame.Close()
	return w.capture.Close()
}

// CameraSource runs detection on live frames, one capture per call.
type CameraSource struct {
	camera   FrameCapturer
	detector Detector

	// OnFrame, if set, receives every captured JPEG (dashboard preview).
	OnFrame func(jpeg []byte)
}

// NewCameraSource pairs a frame capturer with a detector.
func NewCameraSource(camera FrameCapturer, detector Detector) *CameraSource {
	return &CameraSource{
		camera:   camera,
		detector: detector,
	}
}

// Next captures a frame and returns the primary face, or nil if none.
func (s *CameraSource) Next(ctx context.Context) (*Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frame, err := s.camera.CaptureJPEG()
	if err != nil {
		return nil, err
	}
	if s.OnFrame != nil {
		s.OnFrame(frame)
	}

	detections, err := s.detector.Detect(frame)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	best := SelectPrimary(detections)
	if best == nil {
		return nil, nil
	}
	return best.Observation(), nil
}
