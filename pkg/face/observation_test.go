package face

import (
	"errors"
	"testing"
)

func TestParseHuman(t *testing.T) {
	data := []byte(`{
		"boxRaw": [0.1, 0.2, 0.3, 0.4],
		"rotation": {"angle": {"pitch": 0.05, "yaw": -0.3, "roll": 0.1}, "matrix": [1,0,0,0,1,0,0,0,1]},
		"meshRaw": [[0,0,0],[0,0,0],[0,0,0],[0,0,0],[0,0,0],[0,0,0],[0,0,0],[0,0,0],[0,0,0],[0,0,0],
		            [0,0,0],[0,0,0],[0,0,0],[0.5,0.60,0],[0.5,0.62,0]],
		"emotion": [{"score": 0.8, "emotion": "sad"}, {"score": 0.1, "emotion": "neutral"}]
	}`)

	obs, err := ParseHuman(data)
	if err != nil {
		t.Fatalf("ParseHuman: %v", err)
	}

	if obs.Box != [4]float64{0.1, 0.2, 0.3, 0.4} {
		t.Errorf("Box = %v", obs.Box)
	}
	if obs.Rotation.Yaw != -0.3 || obs.Rotation.Pitch != 0.05 || obs.Rotation.Roll != 0.1 {
		t.Errorf("Rotation = %+v", obs.Rotation)
	}

	gap, ok := obs.LipGap()
	if !ok {
		t.Fatal("Expected lip gap")
	}
	if diff := gap - 0.02; diff < -1e-12 || diff > 1e-12 {
		t.Errorf("LipGap = %v, want 0.02", gap)
	}

	top, ok := obs.TopEmotion()
	if !ok || top.Label != "sad" || top.Score != 0.8 {
		t.Errorf("TopEmotion = %+v, %v", top, ok)
	}

	x, y := obs.Center()
	if diff := x - 0.25; diff < -1e-12 || diff > 1e-12 {
		t.Errorf("Center X = %v, want 0.25", x)
	}
	if diff := y - 0.4; diff < -1e-12 || diff > 1e-12 {
		t.Errorf("Center Y = %v, want 0.4", y)
	}
}

func TestParseHuman_Sparse(t *testing.T) {
	obs, err := ParseHuman([]byte(`{"boxRaw": [0, 0, 1, 1]}`))
	if err != nil {
		t.Fatalf("ParseHuman: %v", err)
	}
	if obs.Rotation != (Angles{}) {
		t.Errorf("Expected zero rotation, got %+v", obs.Rotation)
	}
	if _, ok := obs.LipGap(); ok {
		t.Error("Expected no lip gap without mesh")
	}
	if _, ok := obs.TopEmotion(); ok {
		t.Error("Expected no emotion")
	}
}

func TestParseHuman_Null(t *testing.T) {
	obs, err := ParseHuman([]byte("null"))
	if err != nil || obs != nil {
		t.Errorf("ParseHuman(null) = %v, %v; want nil, nil", obs, err)
	}
}

func TestParseHuman_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `face`},
		{"missing box", `{"rotation": {"angle": {"yaw": 1}}}`},
		{"short box", `{"boxRaw": [0.1, 0.2, 0.3]}`},
		{"wrong type", `{"boxRaw": "0,0,1,1"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseHuman([]byte(tc.data))
			if !errors.Is(err, ErrInvalidObservation) {
				t.Errorf("Expected ErrInvalidObservation, got %v", err)
			}
		})
	}
}
