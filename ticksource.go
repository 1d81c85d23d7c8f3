package ask433

import (
	"sync"
	"time"
)

// Guarded wraps a Driver with the single critical-section primitive needed
// when Tick runs on an interrupt or a goroutine separate from
// Send/Available/Receive. The Driver itself never takes a lock; Guarded is
// the caller-side boundary where the hardware timer resource meets the
// driver.
//
// Each call below is its own critical section — WithDriver does not hold
// the lock across a caller's blocking Send loop, so a concurrent TickLocked
// call can still make progress and let that loop observe completion.
type Guarded struct {
	mu     sync.Mutex
	driver *Driver
}

// NewGuarded wraps d for safe use from both an interrupt-like ticker
// goroutine and the main context.
func NewGuarded(d *Driver) *Guarded {
	return &Guarded{driver: d}
}

// WithDriver runs fn with exclusive access to the driver.
func (g *Guarded) WithDriver(fn func(*Driver)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.driver)
}

// TickLocked calls Tick as its own critical section.
func (g *Guarded) TickLocked() {
	g.mu.Lock()
	g.driver.Tick()
	g.mu.Unlock()
}

// Send calls Driver.Send as a sequence of short critical sections rather
// than one long one, so its internal busy-wait can observe a concurrently
// ticking transmission finish instead of deadlocking against TickLocked.
func (g *Guarded) Send(payload []byte) bool {
	for {
		g.mu.Lock()
		busy := g.driver.mode == Tx
		if !busy {
			ok := g.driver.Send(payload)
			g.mu.Unlock()
			return ok
		}
		g.mu.Unlock()
	}
}

// Available calls Driver.Available as its own critical section.
func (g *Guarded) Available() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.driver.Available()
}

// Receive calls Driver.Receive as its own critical section.
func (g *Guarded) Receive() ([]byte, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.driver.Receive()
}

// BusyLoopTicker repeatedly calls TickLocked at the interval implied by
// ticksPerBit, for platforms with no interrupt to hang a timer callback
// off of: a goroutine just sleeps and calls tick() in a loop instead. It
// runs until Stop is called.
type BusyLoopTicker struct {
	guarded  *Guarded
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewBusyLoopTicker builds a ticker that drives d at 2000*ticksPerBit Hz.
func NewBusyLoopTicker(g *Guarded, ticksPerBit byte) *BusyLoopTicker {
	hz := 2000 * int(ticksPerBit)
	return &BusyLoopTicker{
		guarded:  g,
		interval: time.Second / time.Duration(hz),
		stop:     make(chan struct{}),
	}
}

// Start launches the ticker's loop on a new goroutine.
func (t *BusyLoopTicker) Start() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				t.guarded.TickLocked()
			}
		}
	}()
}

// Stop halts the ticker and waits for its goroutine to exit.
func (t *BusyLoopTicker) Stop() {
	close(t.stop)
	t.wg.Wait()
}
