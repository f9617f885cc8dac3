package upload

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

const (
	ProgressInterval = 200 * time.Millisecond
	progressCap      = 90
	// Timeout bounds a single upload request.
	Timeout = 30 * time.Second
)

// Progress simulates upload progress for transports that do not report it.
// Ticks add a random 0..20 and hold at 90 until Done or Fail.
type Progress struct {
	Interval time.Duration
	Rand     func() float64
	OnChange func(percent int)

	mu      sync.Mutex
	value   float64
	stopped bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// Start runs the ticker until ctx ends or Done/Fail is called. It is a no-op
// once running or finished.
func (p *Progress) Start(ctx context.Context) {
	p.mu.Lock()
	if p.stop != nil || p.stopped {
		p.mu.Unlock()
		return
	}
	p.stop = make(chan struct{})
	stop := p.stop
	interval := p.Interval
	if interval <= 0 {
		interval = ProgressInterval
	}
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-t.C:
				p.Tick()
			}
		}
	}()
}

// Tick advances once and reports the new value.
func (p *Progress) Tick() int {
	p.mu.Lock()
	if p.stopped {
		v := int(p.value)
		p.mu.Unlock()
		return v
	}
	r := rand.Float64
	if p.Rand != nil {
		r = p.Rand
	}
	p.value += r() * 20
	if p.value > progressCap {
		p.value = progressCap
	}
	v := int(p.value)
	p.mu.Unlock()
	p.emit(v)
	return v
}

func (p *Progress) Value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.value)
}

// Done finishes at 100.
func (p *Progress) Done() { p.finish(100) }

// Fail resets to 0.
func (p *Progress) Fail() { p.finish(0) }

func (p *Progress) finish(v float64) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.value = v
	if p.stop != nil {
		close(p.stop)
	}
	p.mu.Unlock()
	p.wg.Wait()
	p.emit(int(v))
}

func (p *Progress) emit(v int) {
	if p.OnChange != nil {
		p.OnChange(v)
	}
}
