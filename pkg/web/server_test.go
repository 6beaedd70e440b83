package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teslashibe/go-avatar/pkg/animation"
	"github.com/teslashibe/go-avatar/pkg/face"
)

const humanFace = `{
	"boxRaw": [0.25, 0.25, 0.5, 0.5],
	"rotation": {"angle": {"pitch": 0.1, "yaw": -0.2, "roll": 0}},
	"emotion": [{"score": 0.9, "emotion": "happy"}]
}`

func postObserve(t *testing.T, s *Server, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/observe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	return resp
}

func TestObserve_PushesToSource(t *testing.T) {
	src := face.NewLatestSource()
	s := NewServer("0", animation.DefaultConfig(), src)

	resp := postObserve(t, s, humanFace)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	obs, err := src.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, obs)
	assert.Equal(t, [4]float64{0.25, 0.25, 0.5, 0.5}, obs.Box)
	assert.InDelta(t, -0.2, obs.Rotation.Yaw, 1e-12)
	top, ok := obs.TopEmotion()
	require.True(t, ok)
	assert.Equal(t, "happy", top.Label)
}

func TestObserve_NullMeansNoFace(t *testing.T) {
	src := face.NewLatestSource()
	s := NewServer("0", animation.DefaultConfig(), src)

	resp := postObserve(t, s, "null")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, uint64(1), src.Received())

	obs, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, obs)
}

func TestObserve_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		source *face.LatestSource
		body   string
		status int
	}{
		{"malformed json", face.NewLatestSource(), `{"boxRaw":`, http.StatusBadRequest},
		{"short box", face.NewLatestSource(), `{"boxRaw":[0.1,0.2]}`, http.StatusBadRequest},
		{"camera mode", nil, humanFace, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer("0", animation.DefaultConfig(), tt.source)
			resp := postObserve(t, s, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.source != nil {
				assert.Equal(t, uint64(0), tt.source.Received())
			}
		})
	}
}

func TestStatus(t *testing.T) {
	src := face.NewLatestSource()
	s := NewServer("0", animation.DefaultConfig(), src)
	s.OnStatus = func() animation.Status {
		return animation.Status{
			State:     animation.StateTracking,
			StateName: animation.StateTracking.String(),
			Session:   "abc",
			Ticks:     42,
		}
	}

	postObserve(t, s, humanFace)
	postObserve(t, s, `[]`)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Pipeline struct {
			State   string `json:"state"`
			Session string `json:"session"`
			Ticks   uint64 `json:"ticks"`
		} `json:"pipeline"`
		Ingested uint64 `json:"observations_ingested"`
		Rejected uint64 `json:"observations_rejected"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "tracking", body.Pipeline.State)
	assert.Equal(t, "abc", body.Pipeline.Session)
	assert.Equal(t, uint64(42), body.Pipeline.Ticks)
	assert.Equal(t, uint64(1), body.Ingested)
	assert.Equal(t, uint64(1), body.Rejected)
}

func TestConfig(t *testing.T) {
	tuning := animation.DefaultConfig()
	tuning.SmoothingCoef = 0.35
	s := NewServer("0", tuning, nil)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/config", nil))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.InDelta(t, 0.35, got["smoothing_coef"], 1e-12)
}

func TestWebSocketRoutesRequireUpgrade(t *testing.T) {
	s := NewServer("0", animation.DefaultConfig(), nil)

	for _, path := range []string{"/ws/pose", "/ws/camera", "/ws/observe"} {
		resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode, "%s: %s", path, body)
	}
}
