// Package animation turns face observations into avatar joint rotations and
// blend shape weights: signal mapping, temporal smoothing, autonomous
// blinking and expression selection, sequenced once per frame.
package animation

import (
	"fmt"
	"time"
)

// Config holds the tuning constants of the pipeline.
type Config struct {
	// Smoothing
	SmoothingCoef float64 `yaml:"smoothing_coef" json:"smoothing_coef"` // Blend toward target per tick (0,1]
	LeanCoef      float64 `yaml:"lean_coef" json:"lean_coef"`           // Torso lean per unit of lateral offset (rad)

	// Expression
	EmotionThreshold float64 `yaml:"emotion_threshold" json:"emotion_threshold"` // Top emotion must score strictly above this
	ExpressionWeight float64 `yaml:"expression_weight" json:"expression_weight"` // Weight of the selected expression

	// Blink
	BlinkIntervalMin float64 `yaml:"blink_interval_min" json:"blink_interval_min"` // Seconds
	BlinkIntervalMax float64 `yaml:"blink_interval_max" json:"blink_interval_max"` // Seconds, exclusive
	BlinkSlope       float64 `yaml:"blink_slope" json:"blink_slope"`               // Pulse is 2/slope seconds wide

	// Mouth
	MouthScale  float64 `yaml:"mouth_scale" json:"mouth_scale"`
	MouthOffset float64 `yaml:"mouth_offset" json:"mouth_offset"`

	// Loop
	FrameInterval time.Duration `yaml:"frame_interval" json:"frame_interval"` // Tick period
	LostAfter     int           `yaml:"lost_after" json:"lost_after"`         // Misses before logging a lost face
}

// DefaultConfig returns the tuning the avatar was designed with.
func DefaultConfig() Config {
	return Config{
		SmoothingCoef: 0.2,
		LeanCoef:      1.0,

		EmotionThreshold: 0.7,
		ExpressionWeight: 0.7, // Never 1.0, full presets look exaggerated

		BlinkIntervalMin: 3.0,
		BlinkIntervalMax: 7.0,
		BlinkSlope:       15.0, // ~133ms pulse

		MouthScale:  100.0,
		MouthOffset: -1.0,

		FrameInterval: time.Second / 60,
		LostAfter:     5,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.SmoothingCoef <= 0 || c.SmoothingCoef > 1 {
		errors = append(errors, "smoothing_coef must be in (0, 1]")
	}
	if c.EmotionThreshold < 0 || c.EmotionThreshold > 1 {
		errors = append(errors, "emotion_threshold must be between 0 and 1")
	}
	if c.ExpressionWeight < 0 || c.ExpressionWeight > 1 {
		errors = append(errors, "expression_weight must be between 0 and 1")
	}
	if c.BlinkIntervalMin <= 0 {
		errors = append(errors, "blink_interval_min must be positive")
	}
	if c.BlinkIntervalMax <= c.BlinkIntervalMin {
		errors = append(errors, "blink_interval_max must be greater than blink_interval_min")
	}
	if c.BlinkSlope <= 0 {
		errors = append(errors, "blink_slope must be positive")
	}
	if c.BlinkIntervalMin > 0 && c.BlinkSlope > 0 && 2/c.BlinkSlope >= c.BlinkIntervalMin {
		errors = append(errors, fmt.Sprintf("blink pulse (%.3fs) must be shorter than blink_interval_min", 2/c.BlinkSlope))
	}
	if c.MouthScale <= 0 {
		errors = append(errors, "mouth_scale must be positive")
	}
	if c.FrameInterval <= 0 {
		errors = append(errors, "frame_interval must be positive")
	}
	if c.LostAfter < 1 {
		errors = append(errors, "lost_after must be at least 1")
	}

	return errors
}
