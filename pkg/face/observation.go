// Package face defines the per-frame face observation consumed by the
// animation pipeline, and the sources that produce it.
package face

import (
	"encoding/json"
	"fmt"
)

// Mesh indices of the inner lip landmarks.
const (
	UpperLipIndex = 13
	LowerLipIndex = 14
)

// Angles is a head rotation in radians.
type Angles struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// EmotionScore is one entry of the detector's emotion ranking.
type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Observation is one frame of face tracking output.
type Observation struct {
	Rotation Angles `json:"rotation"`

	// Box is the normalized face box as (x, y, width, height), all in [0,1].
	Box [4]float64 `json:"box"`

	// Mesh holds face landmarks. Only the inner lip points are used.
	Mesh [][3]float64 `json:"mesh,omitempty"`

	// Emotions is sorted by descending score and may be empty.
	Emotions []EmotionScore `json:"emotions,omitempty"`
}

// Center returns the normalized center of the face box.
func (o *Observation) Center() (x, y float64) {
	return o.Box[0] + o.Box[2]/2, o.Box[1] + o.Box[3]/2
}

// LipGap returns the vertical distance between the inner lip points.
// ok is false when the mesh does not contain them.
func (o *Observation) LipGap() (gap float64, ok bool) {
	if len(o.Mesh) <= LowerLipIndex {
		return 0, false
	}
	return o.Mesh[LowerLipIndex][1] - o.Mesh[UpperLipIndex][1], true
}

// TopEmotion returns the highest ranked emotion, if any.
func (o *Observation) TopEmotion() (EmotionScore, bool) {
	if len(o.Emotions) == 0 {
		return EmotionScore{}, false
	}
	return o.Emotions[0], true
}

// humanFace mirrors the face entry of a Human.js detection result.
type humanFace struct {
	Rotation *struct {
		Angle Angles `json:"angle"`
	} `json:"rotation"`
	BoxRaw  []float64   `json:"boxRaw"`
	MeshRaw [][]float64 `json:"meshRaw"`
	Emotion []struct {
		Emotion string  `json:"emotion"`
		Score   float64 `json:"score"`
	} `json:"emotion"`
}

// ParseHuman decodes a single Human.js face result. A JSON null decodes to a
// nil observation, meaning no face this frame.
func ParseHuman(data []byte) (*Observation, error) {
	var hf *humanFace
	if err := json.Unmarshal(data, &hf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidObservation, err)
	}
	if hf == nil {
		return nil, nil
	}
	if len(hf.BoxRaw) != 4 {
		return nil, fmt.Errorf("%w: boxRaw has %d values", ErrInvalidObservation, len(hf.BoxRaw))
	}

	obs := &Observation{}
	copy(obs.Box[:], hf.BoxRaw)
	if hf.Rotation != nil {
		obs.Rotation = hf.Rotation.Angle
	}

	if len(hf.MeshRaw) > 0 {
		obs.Mesh = make([][3]float64, len(hf.MeshRaw))
		for i, p := range hf.MeshRaw {
			copy(obs.Mesh[i][:], p)
		}
	}

	for _, e := range hf.Emotion {
		obs.Emotions = append(obs.Emotions, EmotionScore{Label: e.Emotion, Score: e.Score})
	}

	return obs, nil
}
