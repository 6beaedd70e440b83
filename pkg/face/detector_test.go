package face

import (
	"math"
	"testing"
)

func TestDetection_Center(t *testing.T) {
	tests := []struct {
		name    string
		det     Detection
		expectX float64
		expectY float64
	}{
		{
			name:    "center of image",
			det:     Detection{X: 0.25, Y: 0.25, W: 0.5, H: 0.5},
			expectX: 0.5,
			expectY: 0.5,
		},
		{
			name:    "top left corner",
			det:     Detection{X: 0, Y: 0, W: 0.2, H: 0.2},
			expectX: 0.1,
			expectY: 0.1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := tc.det.Center()
			if x != tc.expectX || y != tc.expectY {
				t.Errorf("Center: got (%.2f, %.2f), want (%.2f, %.2f)", x, y, tc.expectX, tc.expectY)
			}
		})
	}
}

func TestSelectPrimary(t *testing.T) {
	tests := []struct {
		name   string
		dets   []Detection
		expect int // index, -1 for nil
	}{
		{"empty", nil, -1},
		{"single", []Detection{{Confidence: 0.2, W: 0.1, H: 0.1}}, 0},
		{
			name: "confident beats slightly larger",
			dets: []Detection{
				{Confidence: 0.6, W: 0.3, H: 0.3},
				{Confidence: 0.95, W: 0.28, H: 0.28},
			},
			expect: 1,
		},
		{
			name: "much larger wins on equal confidence",
			dets: []Detection{
				{Confidence: 0.9, W: 0.1, H: 0.1},
				{Confidence: 0.9, W: 0.4, H: 0.4},
			},
			expect: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectPrimary(tc.dets)
			if tc.expect < 0 {
				if got != nil {
					t.Errorf("Expected nil, got %+v", got)
				}
				return
			}
			if got != &tc.dets[tc.expect] {
				t.Errorf("Expected detection %d, got %+v", tc.expect, got)
			}
		})
	}
}

// frontal returns landmarks of a level face looking at the camera.
func frontal() [5][2]float64 {
	return [5][2]float64{
		RightEye:   {0.45, 0.40},
		LeftEye:    {0.55, 0.40},
		NoseTip:    {0.50, 0.445},
		RightMouth: {0.46, 0.50},
		LeftMouth:  {0.54, 0.50},
	}
}

func TestDetection_Observation(t *testing.T) {
	const tol = 1e-9

	t.Run("frontal face is level", func(t *testing.T) {
		d := Detection{X: 0.4, Y: 0.3, W: 0.2, H: 0.3, Aspect: 1, Landmarks: frontal()}
		obs := d.Observation()

		if obs.Box != [4]float64{0.4, 0.3, 0.2, 0.3} {
			t.Errorf("Box = %v", obs.Box)
		}
		if math.Abs(obs.Rotation.Roll) > tol || math.Abs(obs.Rotation.Yaw) > tol || math.Abs(obs.Rotation.Pitch) > tol {
			t.Errorf("Expected level rotation, got %+v", obs.Rotation)
		}
		if obs.Mesh != nil || obs.Emotions != nil {
			t.Error("Detector observations carry no mesh or emotions")
		}
	})

	t.Run("tilted eyes give roll", func(t *testing.T) {
		lm := frontal()
		lm[LeftEye][1] = 0.50 // 0.1 right, 0.1 down
		d := Detection{Aspect: 1, Landmarks: lm}
		if got := d.Observation().Rotation.Roll; math.Abs(got-math.Pi/4) > tol {
			t.Errorf("Roll = %v, want π/4", got)
		}
	})

	t.Run("nose offset gives yaw", func(t *testing.T) {
		lm := frontal()
		lm[NoseTip][0] = 0.525 // a quarter eye distance to the left eye
		d := Detection{Aspect: 1, Landmarks: lm}
		if got := d.Observation().Rotation.Yaw; math.Abs(got-math.Asin(0.5)) > tol {
			t.Errorf("Yaw = %v, want %v", got, math.Asin(0.5))
		}
	})

	t.Run("collapsed landmarks stay finite", func(t *testing.T) {
		d := Detection{W: 0.1, H: 0.1}
		rot := d.Observation().Rotation
		for _, v := range []float64{rot.Pitch, rot.Yaw, rot.Roll} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("Non-finite rotation %+v", rot)
			}
		}
	})
}
