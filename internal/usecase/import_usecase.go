package usecase

import (
	"context"
	"strings"

	"tutor-board/internal/crawler"
	"tutor-board/internal/repository"

	"go.uber.org/zap"
)

// ArticleCrawler fetches and parses article pages.
type ArticleCrawler interface {
	Crawl(ctx context.Context, urls []string) []crawler.Outcome
}

type DemandsNotifier interface {
	NotifyDemandsUpdated(count int64, source string)
}

type ImportFailure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

type ImportReport struct {
	Articles int             `json:"articles"`
	Parsed   int             `json:"parsed"`
	Upserted int64           `json:"upserted"`
	Failures []ImportFailure `json:"failures"`
}

type ImportUsecase interface {
	Import(ctx context.Context, urls []string) (ImportReport, error)
}

type Import struct {
	crawler  ArticleCrawler
	demands  repository.DemandRepository
	cache    DemandCache
	notifier DemandsNotifier
	logger   *zap.Logger
}

func NewImportUsecase(c ArticleCrawler, demands repository.DemandRepository, cache DemandCache, notifier DemandsNotifier, logger *zap.Logger) *Import {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Import{crawler: c, demands: demands, cache: cache, notifier: notifier, logger: logger}
}

// Import crawls urls and upserts every parsed demand. Per-article failures
// are reported, not returned; the error is reserved for bad input and
// storage failures.
func (u *Import) Import(ctx context.Context, urls []string) (ImportReport, error) {
	if u == nil || u.crawler == nil {
		return ImportReport{}, ErrUnavailable
	}
	if u.demands == nil {
		return ImportReport{}, ErrUnavailable
	}

	cleaned := make([]string, 0, len(urls))
	for _, raw := range urls {
		if raw = strings.TrimSpace(raw); raw != "" {
			cleaned = append(cleaned, raw)
		}
	}
	if len(cleaned) == 0 {
		return ImportReport{}, ErrInvalidInput
	}

	report := ImportReport{Articles: len(cleaned), Failures: []ImportFailure{}}
	var batch []repository.DemandUpsert
	for _, o := range u.crawler.Crawl(ctx, cleaned) {
		if o.Err != nil {
			report.Failures = append(report.Failures, ImportFailure{URL: o.URL, Error: o.Err.Error()})
			continue
		}
		for _, p := range o.Demands {
			batch = append(batch, repository.DemandUpsert{Demand: p.Demand, SourceURL: p.SourceURL})
		}
	}
	report.Parsed = len(batch)
	if len(batch) == 0 {
		return report, nil
	}

	n, err := u.demands.UpsertDemands(ctx, batch)
	if err != nil {
		u.logger.Error("upsert imported demands failed", zap.Int("demands", len(batch)), zap.Error(err))
		return report, ErrInternal
	}
	report.Upserted = n

	if u.cache != nil {
		if err := u.cache.Delete(ctx, DemandsCacheKey); err != nil {
			u.logger.Warn("demand cache invalidation failed", zap.Error(err))
		}
	}
	if u.notifier != nil {
		u.notifier.NotifyDemandsUpdated(n, "import")
	}

	u.logger.Info("import finished",
		zap.Int("articles", report.Articles),
		zap.Int("parsed", report.Parsed),
		zap.Int64("upserted", n),
		zap.Int("failures", len(report.Failures)),
	)
	return report, nil
}
