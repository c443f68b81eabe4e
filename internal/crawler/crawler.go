package crawler

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Outcome is the result of crawling one article URL.
type Outcome struct {
	URL     string
	Demands []Parsed
	Err     error
}

type Crawler struct {
	fetcher Fetcher
	logger  *zap.Logger
	workers int
	rps     int
}

type Option func(*Crawler)

func WithWorkers(n int) Option     { return func(c *Crawler) { c.workers = n } }
func WithRateLimit(rps int) Option { return func(c *Crawler) { c.rps = rps } }

func New(fetcher Fetcher, logger *zap.Logger, opts ...Option) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Crawler{fetcher: fetcher, logger: logger, workers: 3, rps: 2}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Crawl fetches and parses every URL on the worker pool. Outcomes come back
// in input order; a failing URL never stops the others.
func (c *Crawler) Crawl(ctx context.Context, urls []string) []Outcome {
	outcomes := make([]Outcome, len(urls))
	if len(urls) == 0 {
		return outcomes
	}

	pool := NewWorkerPool(c.workers, len(urls))
	pool.SetRateLimit(c.rps)
	results := pool.Run(ctx)

	var mu sync.Mutex
	index := make(map[string]int, len(urls))
	for i, raw := range urls {
		outcomes[i].URL = raw
		u, err := ValidateURL(raw)
		if err != nil {
			outcomes[i].Err = err
			continue
		}
		if _, dup := index[u]; dup {
			outcomes[i].Err = errDuplicateURL
			continue
		}
		index[u] = i
		outcomes[i].URL = u

		pool.Submit(u, func(ctx context.Context) error {
			parsed, err := c.crawlOne(ctx, u)
			mu.Lock()
			outcomes[i].Demands = parsed
			mu.Unlock()
			return err
		})
	}
	pool.Close()

	seen := make(map[string]bool, len(index))
	for r := range results {
		seen[r.Key] = true
		i := index[r.Key]
		mu.Lock()
		outcomes[i].Err = r.Err
		mu.Unlock()
		if r.Err != nil {
			c.logger.Warn("article import failed", zap.String("url", r.Key), zap.Error(r.Err))
			continue
		}
		c.logger.Info("article parsed", zap.String("url", r.Key), zap.Int("demands", len(outcomes[i].Demands)))
	}
	for u, i := range index {
		if !seen[u] && outcomes[i].Err == nil {
			outcomes[i].Err = ctx.Err()
		}
	}
	return outcomes
}

func (c *Crawler) crawlOne(ctx context.Context, pageURL string) ([]Parsed, error) {
	html, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	article, err := ExtractArticle(pageURL, html)
	if err != nil {
		return nil, err
	}
	return ParseArticle(article), nil
}
