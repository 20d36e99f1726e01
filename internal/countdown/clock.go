package countdown

import (
	"sync"
	"time"
)

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates the tickers that drive a countdown.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

func RealClock() Clock {
	return realClock{}
}

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(d)}
}

type realTicker struct {
	ticker *time.Ticker
}

func (that *realTicker) C() <-chan time.Time {
	return that.ticker.C
}

func (that *realTicker) Stop() {
	that.ticker.Stop()
}

const manualTickWait = time.Second

// ManualClock is a Clock whose tickers only fire when Tick is called.
type ManualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (that *ManualClock) NewTicker(_ time.Duration) Ticker {
	that.mu.Lock()
	defer that.mu.Unlock()

	ticker := &manualTicker{ch: make(chan time.Time), done: make(chan struct{})}
	that.tickers = append(that.tickers, ticker)

	return ticker
}

// Tick - fires the most recently created ticker. Returns false when nobody received the tick.
func (that *ManualClock) Tick() bool {
	that.mu.Lock()
	if len(that.tickers) == 0 {
		that.mu.Unlock()
		return false
	}
	ticker := that.tickers[len(that.tickers)-1]
	that.mu.Unlock()

	select {
	case ticker.ch <- time.Now():
		return true
	case <-ticker.done:
		return false
	case <-time.After(manualTickWait):
		return false
	}
}

// Tickers - how many tickers were created so far.
func (that *ManualClock) Tickers() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.tickers)
}

type manualTicker struct {
	ch   chan time.Time
	once sync.Once
	done chan struct{}
}

func (that *manualTicker) C() <-chan time.Time {
	return that.ch
}

func (that *manualTicker) Stop() {
	that.once.Do(func() {
		close(that.done)
	})
}
