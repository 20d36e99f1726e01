package countdown

import (
	"context"
	"sync"
	"time"
)

const TickInterval = time.Second

// Event is emitted on every tick of a running countdown.
type Event struct {
	Generation uint64
	Remaining  int
	Warning    bool
	Expired    bool
}

// Timer runs at most one countdown at a time. Every Start supersedes the
// previous countdown and returns a new generation; consumers drop events
// whose generation is not the one they started.
type Timer struct {
	clock            Clock
	interval         time.Duration
	warningThreshold int
	onEvent          func(Event)

	mu         sync.Mutex
	cancel     context.CancelFunc
	generation uint64
}

func New(clock Clock, warningThreshold int, onEvent func(Event)) *Timer {
	return &Timer{
		clock:            clock,
		interval:         TickInterval,
		warningThreshold: warningThreshold,
		onEvent:          onEvent,
	}
}

// Start - cancels any running countdown and counts down from seconds, one tick per interval.
func (that *Timer) Start(seconds int) uint64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	that.cancel = cancel
	generation := that.generation

	go that.run(ctx, that.clock.NewTicker(that.interval), generation, seconds)

	return generation
}

// Cancel - stops the running countdown; no further events are delivered for it.
func (that *Timer) Cancel() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stopLocked()
}

// Active reports whether a countdown is running.
func (that *Timer) Active() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.cancel != nil
}

func (that *Timer) stopLocked() {
	if that.cancel != nil {
		that.cancel()
		that.cancel = nil
	}
	that.generation++
}

func (that *Timer) run(ctx context.Context, ticker Ticker, generation uint64, remaining int) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if ctx.Err() != nil {
				return
			}

			if remaining > 0 {
				remaining--
			}

			if remaining == 0 {
				that.expire(generation)
				that.onEvent(Event{Generation: generation, Expired: true})
				return
			}

			that.onEvent(Event{
				Generation: generation,
				Remaining:  remaining,
				Warning:    remaining <= that.warningThreshold,
			})
		}
	}
}

func (that *Timer) expire(generation uint64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.generation == generation && that.cancel != nil {
		that.cancel()
		that.cancel = nil
	}
}
