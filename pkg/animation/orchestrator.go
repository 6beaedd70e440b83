package animation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teslashibe/go-avatar/internal/log"
	"github.com/teslashibe/go-avatar/pkg/debug"
	"github.com/teslashibe/go-avatar/pkg/face"
)

// Source supplies at most one observation per tick. A nil observation with
// a nil error means no face was seen.
type Source interface {
	Next(ctx context.Context) (*face.Observation, error)
}

// Applier receives finished frames (avatar rig, renderer, network peer).
type Applier interface {
	Apply(ctx context.Context, frame Frame) error
}

// State is the orchestrator lifecycle state.
type State int

const (
	// StateIdle means no tick has run yet.
	StateIdle State = iota

	// StateTracking means the pipeline is producing frames.
	StateTracking
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Status is a snapshot of the orchestrator for dashboards.
type Status struct {
	State     State  `json:"-"`
	StateName string `json:"state"`
	Session   string `json:"session"`
	Ticks     uint64 `json:"ticks"`
	Misses    int    `json:"consecutive_misses"`
	FaceFound bool   `json:"face_found"`
	Last      *Frame `json:"last_frame,omitempty"`
}

// Orchestrator runs the per-frame pipeline: observe, map, smooth, blink,
// select expression, apply. All pipeline state is owned by the goroutine
// calling Step or Run.
type Orchestrator struct {
	config  Config
	source  Source
	applier Applier
	clock   Clock

	mapper   *Mapper
	smoother *Smoother
	blinker  *Blinker

	session string
	signals Signals
	seq     uint64
	misses  int
	lost    bool

	mu     sync.RWMutex
	status Status
}

// New creates an orchestrator viewing the avatar through camera.
func New(config Config, camera *Camera, source Source, applier Applier) *Orchestrator {
	seed := uint64(time.Now().UnixNano())
	session := uuid.NewString()

	return &Orchestrator{
		config:   config,
		source:   source,
		applier:  applier,
		clock:    NewClock(),
		mapper:   NewMapper(camera, config),
		smoother: NewSmoother(config),
		blinker:  NewBlinker(config, rand.New(rand.NewPCG(seed, seed>>1|1))),
		session:  session,
		signals:  InitialSignals(),
		lost:     true,
		status: Status{
			State:     StateIdle,
			StateName: StateIdle.String(),
			Session:   session,
		},
	}
}

// SetClock replaces the wall clock. Call before the first tick.
func (o *Orchestrator) SetClock(clock Clock) {
	o.clock = clock
}

// SetRand replaces the blink interval random source. Call before the first tick.
func (o *Orchestrator) SetRand(rng Rand) {
	o.blinker.rng = rng
}

// Session returns the id stamped on every frame of this run.
func (o *Orchestrator) Session() string {
	return o.session
}

// Status returns a copy of the current status. Safe from any goroutine.
func (o *Orchestrator) Status() Status {
	o.mu.RLock()
	defer o.mu.RUnlock()
	s := o.status
	if s.Last != nil {
		last := *s.Last
		s.Last = &last
	}
	return s
}

// Run ticks at Config.FrameInterval until ctx is done. A slow source lowers
// the frame rate; ticks never overlap and none are replayed.
func (o *Orchestrator) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.config.FrameInterval)
	defer ticker.Stop()

	log.Info("avatar pipeline started",
		"session", o.session,
		"interval", o.config.FrameInterval,
		"smoothing", o.config.SmoothingCoef,
		"lean", o.config.LeanCoef)

	for {
		if _, err := o.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			log.Info("avatar pipeline stopped", "session", o.session, "ticks", o.seq)
			return nil
		case <-ticker.C:
		}
	}
}

// Step runs one tick and returns the frame handed to the applier.
func (o *Orchestrator) Step(ctx context.Context) (Frame, error) {
	obs, err := o.source.Next(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Frame{}, ctx.Err()
		}
		log.Warn("face source failed, treating as no face", "error", err)
		obs = nil
	}

	// Read the clock after detection so blink timing reflects render time.
	delta, elapsed := o.clock.Tick()

	o.trackPresence(obs != nil)

	o.signals = o.mapper.Map(obs, o.signals)
	o.smoother.Update(o.signals.Target)
	joints := o.smoother.Derive()
	blink := o.blinker.Update(elapsed)
	expression := SelectExpression(o.signals.Emotion, o.config.ExpressionWeight)

	o.seq++
	pos := o.smoother.Pose().Position
	frame := Frame{
		Session:    o.session,
		Seq:        o.seq,
		Elapsed:    elapsed,
		Delta:      delta,
		Tracking:   obs != nil,
		Head:       NewQuaternion(joints.Head),
		Neck:       NewQuaternion(joints.Neck),
		Chest:      NewQuaternion(joints.Chest),
		Position:   [3]float64{pos.X(), pos.Y(), pos.Z()},
		Mouth:      o.signals.Mouth,
		Blink:      blink,
		Emotion:    o.signals.Emotion,
		Expression: expression,
	}

	debug.FrameLog("🎭 #%d t=%.3f mouth=%.2f blink=%.2f emotion=%s pos=(%.3f, %.3f)\n",
		frame.Seq, elapsed, frame.Mouth, blink, frame.Emotion, pos.X(), pos.Y())

	o.publish(frame)

	if o.applier != nil {
		if err := o.applier.Apply(ctx, frame); err != nil {
			return frame, fmt.Errorf("%w: %w", ErrApply, err)
		}
	}

	return frame, nil
}

// trackPresence counts misses and logs face lost / found transitions.
func (o *Orchestrator) trackPresence(found bool) {
	if found {
		if o.lost {
			log.Info("face found", "after_misses", o.misses)
		}
		o.misses = 0
		o.lost = false
		return
	}

	o.misses++
	if o.misses == o.config.LostAfter && !o.lost {
		log.Info("face lost, holding last pose", "consecutive_misses", o.misses)
		o.lost = true
	}
}

func (o *Orchestrator) publish(frame Frame) {
	o.mu.Lock()
	o.status.State = StateTracking
	o.status.StateName = StateTracking.String()
	o.status.Ticks = o.seq
	o.status.Misses = o.misses
	o.status.FaceFound = !o.lost
	o.status.Last = &frame
	o.mu.Unlock()
}
