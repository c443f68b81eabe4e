package usecase

import (
	"context"
	"sync"

	"tutor-board/internal/domain/demand"
	"tutor-board/internal/infrastructure/feed"
)

// Catalog holds the demand set acquired for browser sessions. The first
// read acquires it; later reads reuse it until Reload. The feed is fetched
// outside the lock: concurrent first reads share one fetch, and a fetch that
// finishes after an Invalidate is returned to its callers but not kept.
type Catalog struct {
	client feed.Client

	mu      sync.Mutex
	cached  *demand.Acquisition
	pending *pendingFetch
	gen     uint64
}

type pendingFetch struct {
	done chan struct{}
	acq  demand.Acquisition
}

func NewCatalog(client feed.Client) *Catalog {
	return &Catalog{client: client}
}

func (c *Catalog) Acquire(ctx context.Context) demand.Acquisition {
	c.mu.Lock()
	if c.cached != nil {
		acq := *c.cached
		c.mu.Unlock()
		return clone(acq)
	}
	if p := c.pending; p != nil {
		c.mu.Unlock()
		select {
		case <-p.done:
			return clone(p.acq)
		case <-ctx.Done():
			return demand.FallbackFor(ctx.Err())
		}
	}
	p := &pendingFetch{done: make(chan struct{})}
	c.pending = p
	gen := c.gen
	c.mu.Unlock()

	p.acq = c.fetch(ctx)

	c.mu.Lock()
	if c.pending == p {
		c.pending = nil
	}
	if c.gen == gen {
		c.cached = &p.acq
	}
	close(p.done)
	c.mu.Unlock()
	return clone(p.acq)
}

// Reload drops the held set and acquires again.
func (c *Catalog) Reload(ctx context.Context) demand.Acquisition {
	c.Invalidate()
	return c.Acquire(ctx)
}

// Invalidate makes the next Acquire fetch again.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.pending = nil
	c.gen++
	c.mu.Unlock()
}

func (c *Catalog) fetch(ctx context.Context) demand.Acquisition {
	if c.client == nil {
		return demand.FallbackFor(ErrUnavailable)
	}
	return c.client.FetchDemands(ctx)
}

func clone(a demand.Acquisition) demand.Acquisition {
	a.Demands = append([]demand.Demand(nil), a.Demands...)
	return a
}

// NotifyDemandsUpdated invalidates the held set after an import.
func (c *Catalog) NotifyDemandsUpdated(int64, string) {
	c.Invalidate()
}
