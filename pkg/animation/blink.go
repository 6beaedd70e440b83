package animation

import (
	"math"
)

// Rand is the random source for blink intervals. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// BlinkState schedules the next blink on the pipeline clock (seconds).
type BlinkState struct {
	NextBlinkTime float64
}

// Blinker emits a periodic blink weight independent of face input.
type Blinker struct {
	state BlinkState
	rng   Rand

	minInterval float64
	maxInterval float64
	slope       float64
}

// NewBlinker creates a blinker. The first blink is scheduled on the first
// update after time zero.
func NewBlinker(config Config, rng Rand) *Blinker {
	return &Blinker{
		rng:         rng,
		minInterval: config.BlinkIntervalMin,
		maxInterval: config.BlinkIntervalMax,
		slope:       config.BlinkSlope,
	}
}

// Update returns the blink weight at elapsed seconds. The weight is a
// triangular pulse 2/slope wide that peaks at 1 when the next blink is
// 1/slope away.
func (b *Blinker) Update(elapsed float64) float64 {
	if b.state.NextBlinkTime-elapsed < 0 {
		b.state.NextBlinkTime = elapsed + b.minInterval + (b.maxInterval-b.minInterval)*b.rng.Float64()
	}
	remaining := b.state.NextBlinkTime - elapsed
	return 1 - clamp(math.Abs(b.slope*remaining-1), 0, 1)
}

// State returns a copy of the blink schedule.
func (b *Blinker) State() BlinkState {
	return b.state
}
