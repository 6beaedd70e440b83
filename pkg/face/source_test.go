package face

import (
	"context"
	"errors"
	"testing"
)

func TestLatestSource(t *testing.T) {
	ctx := context.Background()
	src := NewLatestSource()

	if obs, err := src.Next(ctx); obs != nil || err != nil {
		t.Fatalf("Empty source: got %v, %v", obs, err)
	}

	first := &Observation{Box: [4]float64{0.1, 0.1, 0.2, 0.2}}
	second := &Observation{Box: [4]float64{0.3, 0.3, 0.2, 0.2}}
	src.Push(first)
	src.Push(second)

	obs, err := src.Next(ctx)
	if err != nil || obs != second {
		t.Fatalf("Expected latest observation, got %v, %v", obs, err)
	}
	if obs, _ := src.Next(ctx); obs != nil {
		t.Error("Observation must be delivered once")
	}
	if src.Received() != 2 {
		t.Errorf("Received = %d, want 2", src.Received())
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := src.Next(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

type fakeCamera struct {
	frames int
	err    error
}

func (c *fakeCamera) CaptureJPEG() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.frames++
	return []byte{0xff, 0xd8, byte(c.frames)}, nil
}

type fakeDetector struct {
	results [][]Detection
	err     error
	calls   int
}

func (d *fakeDetector) Detect([]byte) ([]Detection, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []Detection
	if d.calls < len(d.results) {
		out = d.results[d.calls]
	}
	d.calls++
	return out, nil
}

func (d *fakeDetector) Close() error { return nil }

func TestCameraSource(t *testing.T) {
	ctx := context.Background()
	cam := &fakeCamera{}
	det := &fakeDetector{results: [][]Detection{
		nil,
		{{X: 0.2, Y: 0.2, W: 0.3, H: 0.3, Confidence: 0.9, Aspect: 1}},
	}}

	src := NewCameraSource(cam, det)
	var previews int
	src.OnFrame = func([]byte) { previews++ }

	obs, err := src.Next(ctx)
	if err != nil || obs != nil {
		t.Fatalf("Expected no face, got %v, %v", obs, err)
	}

	obs, err = src.Next(ctx)
	if err != nil || obs == nil {
		t.Fatalf("Expected face, got %v, %v", obs, err)
	}
	if obs.Box != [4]float64{0.2, 0.2, 0.3, 0.3} {
		t.Errorf("Box = %v", obs.Box)
	}
	if previews != 2 {
		t.Errorf("OnFrame called %d times, want 2", previews)
	}
}

func TestCameraSource_Errors(t *testing.T) {
	ctx := context.Background()

	src := NewCameraSource(&fakeCamera{err: ErrCameraUnavailable}, &fakeDetector{})
	if _, err := src.Next(ctx); !errors.Is(err, ErrCameraUnavailable) {
		t.Errorf("Expected ErrCameraUnavailable, got %v", err)
	}

	boom := errors.New("inference failed")
	src = NewCameraSource(&fakeCamera{}, &fakeDetector{err: boom})
	if _, err := src.Next(ctx); !errors.Is(err, boom) {
		t.Errorf("Expected detector error, got %v", err)
	}
}

func TestWebcamConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*WebcamConfig)
		wantErr bool
	}{
		{"defaults", func(*WebcamConfig) {}, false},
		{"driver defaults", func(c *WebcamConfig) { c.Width, c.Height, c.Framerate, c.Quality = 0, 0, 0, 0 }, false},
		{"no device", func(c *WebcamConfig) { c.Device = "" }, true},
		{"framerate too high", func(c *WebcamConfig) { c.Framerate = 240 }, true},
		{"quality too high", func(c *WebcamConfig) { c.Quality = 101 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultWebcamConfig()
			tc.modify(&cfg)
			errs := cfg.Validate()
			if (len(errs) > 0) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", errs, tc.wantErr)
			}
		})
	}
}
