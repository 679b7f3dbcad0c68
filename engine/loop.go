package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tzdial/parameter"
)

// Command is a unit of work executed on the loop goroutine against the owned Rotor
type Command func(*Rotor) error

// LoopOptions configures a Loop; zero values get defaults from the parameter package
type LoopOptions struct {
	TickInterval time.Duration // Physics cadence while coasting or animating
	WallInterval time.Duration // Wall-clock refresh cadence, 0 disables
	QueueSize    int

	// Callbacks run on the loop goroutine
	OnWallTick func(now time.Time)
	OnError    func(err error)
	OnSnapshot func(Snapshot)

	// Spawn starts the loop goroutine, default is the go statement
	// Lets the host install panic recovery that restores the terminal
	Spawn func(fn func())
}

// Loop owns a Rotor on a single goroutine
// Input arrives as commands, physics advances on a ticker, and readers get
// lock-free snapshots published after every step
type Loop struct {
	rotor *Rotor
	opts  LoopOptions

	commands chan Command
	snapshot atomic.Pointer[Snapshot]

	// Tick counter for debugging and metrics
	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewLoop wraps rotor; the caller must not touch rotor directly after Start
func NewLoop(rotor *Rotor, opts LoopOptions) *Loop {
	if opts.TickInterval <= 0 {
		opts.TickInterval = parameter.PhysicsTickInterval
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = parameter.CommandQueueSize
	}
	if opts.Spawn == nil {
		opts.Spawn = func(fn func()) { go fn() }
	}

	l := &Loop{
		rotor:    rotor,
		opts:     opts,
		commands: make(chan Command, opts.QueueSize),
		stopChan: make(chan struct{}),
	}
	l.publish()
	return l
}

// Start begins the loop goroutine
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		l.opts.Spawn(l.run)
	}
}

// Stop halts the loop and waits for the goroutine to exit
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		if l.running.CompareAndSwap(true, false) {
			close(l.stopChan)
			l.wg.Wait()
		}
	})
}

// Run starts the loop and blocks until ctx is done, then stops it
func (l *Loop) Run(ctx context.Context) {
	l.Start()
	<-ctx.Done()
	l.Stop()
}

// Submit queues cmd without blocking; false when the queue is full or the loop stopped
func (l *Loop) Submit(cmd Command) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.commands <- cmd:
		return true
	default:
		return false
	}
}

// Snapshot returns the most recently published state
func (l *Loop) Snapshot() Snapshot {
	return *l.snapshot.Load()
}

// Ticks returns the number of physics steps taken
func (l *Loop) Ticks() uint64 {
	return l.tickCount.Load()
}

// StartDrag queues Rotor.StartDrag
func (l *Loop) StartDrag(pointerAngle float64) bool {
	return l.Submit(func(r *Rotor) error { return r.StartDrag(pointerAngle) })
}

// UpdateDrag queues Rotor.UpdateDrag
func (l *Loop) UpdateDrag(pointerAngle float64) bool {
	return l.Submit(func(r *Rotor) error { return r.UpdateDrag(pointerAngle) })
}

// EndDrag queues Rotor.EndDrag
func (l *Loop) EndDrag() bool {
	return l.Submit(func(r *Rotor) error { return r.EndDrag() })
}

// ResetToZero queues Rotor.ResetToZero
func (l *Loop) ResetToZero() bool {
	return l.Submit(func(r *Rotor) error { return r.ResetToZero() })
}

// ResetToNow queues Rotor.ResetToNow
func (l *Loop) ResetToNow() bool {
	return l.Submit(func(r *Rotor) error { return r.ResetToNow() })
}

// SetSelectionMode queues Rotor.SetSelectionMode
func (l *Loop) SetSelectionMode(on bool) bool {
	return l.Submit(func(r *Rotor) error { return r.SetSelectionMode(on) })
}

func (l *Loop) run() {
	defer l.wg.Done()

	step := time.NewTicker(l.opts.TickInterval)
	defer step.Stop()

	var wall <-chan time.Time
	if l.opts.WallInterval > 0 {
		wt := time.NewTicker(l.opts.WallInterval)
		defer wt.Stop()
		wall = wt.C
	}

	for {
		select {
		case <-l.stopChan:
			return

		case cmd := <-l.commands:
			l.report(cmd(l.rotor))
			// Drain whatever else is pending before publishing once
			for drained := false; !drained; {
				select {
				case next := <-l.commands:
					l.report(next(l.rotor))
				default:
					drained = true
				}
			}
			l.publish()

		case <-step.C:
			if !l.rotor.Busy() {
				continue
			}
			l.report(l.rotor.Tick())
			l.tickCount.Add(1)
			l.publish()

		case <-wall:
			if l.opts.OnWallTick != nil {
				l.opts.OnWallTick(l.rotor.clock.Now())
			}
			l.publish()
		}
	}
}

func (l *Loop) report(err error) {
	if err != nil && l.opts.OnError != nil {
		l.opts.OnError(err)
	}
}

func (l *Loop) publish() {
	s := l.rotor.Snapshot()
	l.snapshot.Store(&s)
	if l.opts.OnSnapshot != nil {
		l.opts.OnSnapshot(s)
	}
}
