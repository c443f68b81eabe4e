package crawler

import (
	"context"
	"sync"
	"time"
)

type Task func(ctx context.Context) error

// Result reports the outcome of the task submitted under Key.
type Result struct {
	Key string
	Err error
}

type job struct {
	key  string
	task Task
}

// WorkerPool runs submitted tasks on a fixed number of goroutines, optionally
// spacing task starts to a requests-per-second budget.
type WorkerPool struct {
	workers int
	jobs    chan job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		jobs:    make(chan job, buffer),
	}
}

func (p *WorkerPool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTickerLocked()
	if rps <= 0 {
		return
	}
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.C
}

func (p *WorkerPool) stopTickerLocked() {
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
}

func (p *WorkerPool) Submit(key string, t Task) {
	if p == nil || t == nil {
		return
	}
	p.jobs <- job{key: key, task: t}
}

// Close stops accepting tasks. Run's channel closes once queued tasks drain.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	close(p.jobs)
}

func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.jobs:
					if !ok {
						return
					}
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					err := j.task(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Key: j.key, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		p.mu.Lock()
		p.stopTickerLocked()
		p.mu.Unlock()
		close(out)
	}()

	return out
}
