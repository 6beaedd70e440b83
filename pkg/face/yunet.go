package face

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/teslashibe/go-avatar/pkg/debug"
	"gocv.io/x/gocv"
)

// YuNetDetector uses OpenCV's FaceDetectorYN for face detection
type YuNetDetector struct {
	detector gocv.FaceDetectorYN
	config   Config
	mu       sync.Mutex // Protects inference
}

// NewYuNet creates a new YuNet face detector using GoCV's built-in FaceDetectorYN
func NewYuNet(cfg Config) (*YuNetDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, cfg.ModelPath)
	}

	// Input size is updated per image in Detect.
	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"",
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // Top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNetDetector{
		detector: detector,
		config:   cfg,
	}, nil
}

// Detect finds faces in the JPEG image
func (d *YuNetDetector) Detect(jpeg []byte) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	return d.detectMat(img), nil
}

// detectMat runs the model on a decoded frame. Caller holds d.mu.
func (d *YuNetDetector) detectMat(img gocv.Mat) []Detection {
	imgW := float64(img.Cols())
	imgH := float64(img.Rows())

	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	d.detector.Detect(img, &faces)

	// YuNet output format (15 columns):
	// 0-3: x, y, w, h (bounding box in pixels)
	// 4-13: 5 facial landmarks (x,y pairs)
	// 14: face score
	var detections []Detection
	for r := 0; r < faces.Rows(); r++ {
		det := Detection{
			X:          float64(faces.GetFloatAt(r, 0)) / imgW,
			Y:          float64(faces.GetFloatAt(r, 1)) / imgH,
			W:          float64(faces.GetFloatAt(r, 2)) / imgW,
			H:          float64(faces.GetFloatAt(r, 3)) / imgH,
			Confidence: float64(faces.GetFloatAt(r, 14)),
			Aspect:     imgW / imgH,
		}
		for i := range det.Landmarks {
			det.Landmarks[i][0] = float64(faces.GetFloatAt(r, 4+2*i)) / imgW
			det.Landmarks[i][1] = float64(faces.GetFloatAt(r, 5+2*i)) / imgH
		}
		detections = append(detections, det)
	}

	if len(detections) > 0 {
		debug.TrackLog("👁️  YuNet found %d face(s)\n", len(detections))
	}

	return detections
}

// Close releases the detector resources
func (d *YuNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return nil
}
