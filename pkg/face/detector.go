package face

import "math"

// Landmark indices in Detection.Landmarks (YuNet order).
const (
	RightEye = iota
	LeftEye
	NoseTip
	RightMouth
	LeftMouth
)

// Detection represents a detected face
type Detection struct {
	X, Y       float64       // Top-left corner (0-1 normalized)
	W, H       float64       // Width and height (0-1 normalized)
	Confidence float64       // Detection confidence (0-1)
	Landmarks  [5][2]float64 // Eyes, nose tip, mouth corners (0-1 normalized)

	// Aspect is image width / height, used to undo the normalization
	// when measuring angles between landmarks.
	Aspect float64
}

// Center returns the center point of the detection
func (d Detection) Center() (x, y float64) {
	return d.X + d.W/2, d.Y + d.H/2
}

// Area returns the area of the bounding box
func (d Detection) Area() float64 {
	return d.W * d.H
}

// Detector is the interface for face detection backends
type Detector interface {
	// Detect finds faces in the image and returns their positions
	Detect(jpeg []byte) ([]Detection, error)

	// Close releases resources
	Close() error
}

// Config holds detector configuration
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// SelectPrimary picks the single face the avatar follows.
// Priority: confidence * 0.7 + area * 0.3
func SelectPrimary(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}

	if len(dets) == 1 {
		return &dets[0]
	}

	maxArea := 0.0
	for _, d := range dets {
		if d.Area() > maxArea {
			maxArea = d.Area()
		}
	}

	bestScore := -1.0
	var best *Detection

	for i := range dets {
		score := dets[i].Confidence * 0.7
		if maxArea > 0 {
			score += (dets[i].Area() / maxArea) * 0.3
		}
		if score > bestScore {
			bestScore = score
			best = &dets[i]
		}
	}

	return best
}

// Observation converts a detection to an observation. The head rotation is a
// coarse estimate from the five landmarks; no mesh or emotions are available,
// so the pipeline holds the mouth and falls back to a neutral expression.
func (d Detection) Observation() *Observation {
	aspect := d.Aspect
	if aspect <= 0 {
		aspect = 1
	}

	// Work in a space where x and y share units.
	px := func(i int) (float64, float64) {
		return d.Landmarks[i][0] * aspect, d.Landmarks[i][1]
	}

	rx, ry := px(RightEye)
	lx, ly := px(LeftEye)
	nx, ny := px(NoseTip)
	_, mry := px(RightMouth)
	_, mly := px(LeftMouth)

	eyeDist := math.Hypot(lx-rx, ly-ry)

	var rot Angles
	if eyeDist > 1e-6 {
		rot.Roll = math.Atan2(ly-ry, lx-rx)

		eyeMidX, eyeMidY := (lx+rx)/2, (ly+ry)/2
		mouthMidY := (mly + mry) / 2

		// Nose drift from the eye midline, relative to eye distance.
		rot.Yaw = math.Asin(clamp(2*(nx-eyeMidX)/eyeDist, -1, 1))

		// Nose sits ~45% of the way from eyes to mouth when level.
		faceLen := mouthMidY - eyeMidY
		if faceLen > 1e-6 {
			rot.Pitch = math.Asin(clamp(2*((ny-eyeMidY)/faceLen-0.45), -1, 1))
		}
	}

	return &Observation{
		Rotation: rot,
		Box:      [4]float64{d.X, d.Y, d.W, d.H},
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
