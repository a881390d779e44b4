package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/profile"
)

const (
	// Settle time between moving the pointer and clicking.
	preClickSettle = 50 * time.Millisecond
	// Extra settle after re-asserting the position when drift was detected.
	driftSettle = 10 * time.Millisecond
	// Per-point delays are floored here at sleep time, never at construction.
	minPointDelay = 100 * time.Millisecond
	// Uniform jitter applied to each per-point delay.
	delayJitterFrac = 0.05

	// Start delay for a freshly constructed engine. Differs on purpose
	// from the 3.0s load-time fallback; saved profiles from earlier
	// builds rely on both values staying put.
	defaultStartDelay = 8.0
)

// Pointer is the OS cursor capability the engine drives. Implementations
// may panic when the underlying device goes away; the worker recovers
// and reports through the status observer.
type Pointer interface {
	MoveTo(x, y int)
	Position() (int, int)
	ClickLeft()
}

// Engine owns an ordered click sequence and runs it on a single
// background worker. At most one worker is active at a time.
//
// Observer callbacks fire on the worker goroutine; subscribers that
// update a UI must marshal onto their own thread.
type Engine struct {
	pointer Pointer
	log     *zap.Logger

	mu             sync.Mutex
	points         []profile.ClickPoint
	startDelay     float64
	loopCount      int // 0 = run until stopped
	verifyPosition bool
	debug          bool
	done           chan struct{}

	onStatus       func(status string)
	onClick        func(index, x, y, total int)
	onLoopComplete func(pass int)

	running       atomic.Bool
	stopRequested atomic.Bool
	currentLoop   atomic.Int64
	clickCount    atomic.Int64

	// Injection point for tests; time.Sleep in production.
	sleep func(time.Duration)
}

// New returns an idle engine with no points.
func New(pointer Pointer, log *zap.Logger) *Engine {
	return &Engine{
		pointer:        pointer,
		log:            log,
		startDelay:     defaultStartDelay,
		verifyPosition: true,
		sleep:          time.Sleep,
	}
}

// AddPoint appends a point to the click sequence.
func (e *Engine) AddPoint(p profile.ClickPoint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.points = append(e.points, p)
}

// RemovePoint deletes the point at index; out-of-range indexes are a no-op.
func (e *Engine) RemovePoint(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.points) {
		return
	}
	e.points = append(e.points[:index], e.points[index+1:]...)
}

// UpdatePoint replaces the point at index in place.
func (e *Engine) UpdatePoint(index int, p profile.ClickPoint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.points) {
		return
	}
	e.points[index] = p
}

// SetPointEnabled toggles a point. A change made while a pass is in
// flight takes effect when the next pass computes its enabled subset.
func (e *Engine) SetPointEnabled(index int, enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.points) {
		return
	}
	e.points[index].Enabled = enabled
}

// ClearPoints removes every point.
func (e *Engine) ClearPoints() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.points = nil
}

// Points returns a copy of the full click sequence.
func (e *Engine) Points() []profile.ClickPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]profile.ClickPoint, len(e.points))
	copy(out, e.points)
	return out
}

// ApplyProfile replaces the point sequence and run settings wholesale.
func (e *Engine) ApplyProfile(p *profile.Profile) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startDelay = p.StartDelay
	e.loopCount = p.LoopCount
	e.points = make([]profile.ClickPoint, len(p.ClickPoints))
	copy(e.points, p.ClickPoints)
}

// Snapshot captures the current sequence and run settings as a profile.
// Name, description and the save timestamp are the store's concern.
func (e *Engine) Snapshot() *profile.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	points := make([]profile.ClickPoint, len(e.points))
	copy(points, e.points)
	return &profile.Profile{
		StartDelay:  e.startDelay,
		LoopCount:   e.loopCount,
		ClickPoints: points,
	}
}

func (e *Engine) SetStartDelay(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startDelay = seconds
}

func (e *Engine) StartDelay() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startDelay
}

func (e *Engine) SetLoopCount(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loopCount = n
}

func (e *Engine) LoopCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loopCount
}

// SetVerifyPosition toggles the pre-click drift check.
func (e *Engine) SetVerifyPosition(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.verifyPosition = on
}

// SetDebug enables per-click target/actual logging.
func (e *Engine) SetDebug(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.debug = on
}

// SetOnStatus registers the status-text observer.
func (e *Engine) SetOnStatus(fn func(status string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onStatus = fn
}

// SetOnClick registers the per-click observer. index is the point's
// position within the pass's enabled subset.
func (e *Engine) SetOnClick(fn func(index, x, y, total int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onClick = fn
}

// SetOnLoopComplete registers the pass-completion observer.
func (e *Engine) SetOnLoopComplete(fn func(pass int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onLoopComplete = fn
}

// IsRunning reports whether a worker is active.
func (e *Engine) IsRunning() bool { return e.running.Load() }

// CurrentLoop returns the pass counter of the active or last run.
func (e *Engine) CurrentLoop() int { return int(e.currentLoop.Load()) }

// ClickCount returns the cumulative click counter of the active or last run.
func (e *Engine) ClickCount() int { return int(e.clickCount.Load()) }

// Start launches the worker. It returns false, with no state change,
// when a worker is already active or the point sequence is empty.
// The worker runs until Stop is called, the pass budget is exhausted,
// or a fault occurs; Start itself returns immediately.
func (e *Engine) Start() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.points) == 0 {
		return false
	}
	if !e.running.CompareAndSwap(false, true) {
		return false
	}
	e.stopRequested.Store(false)
	e.currentLoop.Store(0)
	e.clickCount.Store(0)
	e.done = make(chan struct{})
	e.log.Info("clicker starting",
		zap.Int("points", len(e.points)),
		zap.Float64("start_delay", e.startDelay),
		zap.Int("loop_count", e.loopCount))
	go e.run(e.done)
	return true
}

// Stop requests a cooperative stop. It does not block; the in-flight
// click or sleep finishes first, so shutdown latency is bounded by one
// inter-click delay plus settle times.
func (e *Engine) Stop() {
	e.stopRequested.Store(true)
}

// Done returns a channel closed when the current run's worker exits.
// Before the first Start it returns an already-closed channel.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done == nil {
		return closedChan
	}
	return e.done
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func (e *Engine) run(done chan struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("clicker worker fault", zap.Any("panic", r))
			e.emitStatus(fmt.Sprintf("Error: %v", r))
		}
		e.running.Store(false)
		e.emitStatus("Stopped")
		e.log.Info("clicker stopped",
			zap.Int("loops", e.CurrentLoop()),
			zap.Int("clicks", e.ClickCount()))
	}()

	e.mu.Lock()
	startDelay := e.startDelay
	loopLimit := e.loopCount
	e.mu.Unlock()

	e.emitStatus(fmt.Sprintf("Starting in %gs...", startDelay))
	// Full blocking sleep: a stop requested during the start delay is
	// only observed once the delay elapses.
	e.sleep(time.Duration(startDelay * float64(time.Second)))

	if len(e.enabledPoints()) == 0 {
		e.emitStatus("No enabled click points!")
		return
	}

	for !e.stopRequested.Load() {
		pass := e.currentLoop.Add(1)
		if loopLimit > 0 && pass > int64(loopLimit) {
			return
		}
		e.emitStatus(fmt.Sprintf("Running - Loop %d", pass))

		points := e.enabledPoints()
		for i, pt := range points {
			if e.stopRequested.Load() {
				break
			}
			e.clickPoint(i, pt)
		}

		e.emitLoopComplete(int(pass))
	}
}

// clickPoint moves to one target, corrects drift once if verification is
// on, clicks, notifies, and sleeps the jittered per-point delay.
func (e *Engine) clickPoint(index int, pt profile.ClickPoint) {
	x, y := pt.ClickPosition()

	e.pointer.MoveTo(x, y)
	e.sleep(preClickSettle)

	e.mu.Lock()
	verify := e.verifyPosition
	debug := e.debug
	e.mu.Unlock()

	if verify {
		actualX, actualY := e.pointer.Position()
		if actualX != x || actualY != y {
			if debug {
				e.log.Debug("position drift detected",
					zap.Int("target_x", x), zap.Int("target_y", y),
					zap.Int("actual_x", actualX), zap.Int("actual_y", actualY))
			}
			e.pointer.MoveTo(x, y)
			e.sleep(driftSettle)
		}
	}

	e.pointer.ClickLeft()
	total := e.clickCount.Add(1)

	if debug {
		e.log.Debug("click issued",
			zap.Int64("count", total), zap.Int("x", x), zap.Int("y", y))
	}

	e.emitClick(index, x, y, int(total))

	if !e.stopRequested.Load() {
		e.sleep(jitteredDelay(pt.Delay))
	}
}

// enabledPoints snapshots the enabled subset in sequence order. Each
// pass calls this once, so mid-pass toggles never alter the pass that
// already started.
func (e *Engine) enabledPoints() []profile.ClickPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []profile.ClickPoint
	for _, p := range e.points {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

// jitteredDelay perturbs a per-point delay by up to ±5% and floors the
// result at 100ms so a zero or tiny configured delay cannot spin.
func jitteredDelay(seconds float64) time.Duration {
	variation := seconds * delayJitterFrac
	actual := seconds + (rand.Float64()*2-1)*variation
	d := time.Duration(actual * float64(time.Second))
	if d < minPointDelay {
		d = minPointDelay
	}
	return d
}

func (e *Engine) emitStatus(status string) {
	e.mu.Lock()
	fn := e.onStatus
	e.mu.Unlock()
	if fn != nil {
		fn(status)
	}
}

func (e *Engine) emitClick(index, x, y, total int) {
	e.mu.Lock()
	fn := e.onClick
	e.mu.Unlock()
	if fn != nil {
		fn(index, x, y, total)
	}
}

func (e *Engine) emitLoopComplete(pass int) {
	e.mu.Lock()
	fn := e.onLoopComplete
	e.mu.Unlock()
	if fn != nil {
		fn(pass)
	}
}
