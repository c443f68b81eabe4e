package app

import (
	"context"
	"errors"
	"time"

	"tutor-board/internal/browser"
	"tutor-board/internal/config"
	"tutor-board/internal/crawler"
	"tutor-board/internal/database"
	"tutor-board/internal/database/migration"
	dbpostgres "tutor-board/internal/database/postgres"
	"tutor-board/internal/database/seeder"
	"tutor-board/internal/infrastructure/cache"
	"tutor-board/internal/infrastructure/feed"
	"tutor-board/internal/repository"
	"tutor-board/internal/usecase"
	"tutor-board/internal/ws"
	"tutor-board/migrations"

	"go.uber.org/zap"
)

// ContainerOption adjusts how the container is assembled.
type ContainerOption func(*containerOptions)

type containerOptions struct {
	fetcher crawler.Fetcher
}

// WithFetcher replaces the static article fetcher, e.g. with a headless one.
func WithFetcher(f crawler.Fetcher) ContainerOption {
	return func(o *containerOptions) { o.fetcher = f }
}

// Container owns every long-lived dependency. DB is nil when no database is
// configured; the feed then reports itself unavailable.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Demands    repository.DemandRepository
	DemandList *usecase.DemandList
	Import     *usecase.Import
	Catalog    *usecase.Catalog

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config, logger *zap.Logger, opts ...ContainerOption) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := containerOptions{fetcher: crawler.StaticFetcher{}}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Container{Config: cfg, Logger: logger}

	if cfg.Database.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Demands = repository.NewPostgresDemandRepository(db)
	} else {
		logger.Warn("DB_HOST not set, demand feed disabled")
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)

	hubCtx, stop := context.WithCancel(context.Background())
	c.Hub = ws.NewHub(logger)
	c.stopHub = stop
	go c.Hub.Run(hubCtx)

	browser.SetTimestampZone(cfg.Feed.TimeZone)
	c.Catalog = usecase.NewCatalog(feed.NewClient(cfg.Feed.SourceURL, cfg.Feed.FetchTimeout, logger))
	c.DemandList = usecase.NewDemandListUsecase(c.Demands, c.Cache, logger)
	c.Import = usecase.NewImportUsecase(
		crawler.New(o.fetcher, logger),
		c.Demands,
		c.Cache,
		fanout{c.Hub, c.Catalog},
		logger,
	)

	return c, nil
}

// Migrate applies pending migrations, preferring MIGRATIONS_DIR on disk over
// the embedded set.
func (c *Container) Migrate(ctx context.Context) (migration.Result, error) {
	if c.DB == nil {
		return migration.Result{}, database.ErrNilDB
	}
	r := migration.Runner{Dir: c.Config.App.MigrationsDir, FS: migrations.FS, Logger: c.Logger}
	return r.Run(ctx, c.DB)
}

func (c *Container) Seed(ctx context.Context) error {
	if c.DB == nil {
		return database.ErrNilDB
	}
	r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}
	if err := r.Run(ctx, c.DB); err != nil {
		return err
	}
	if err := c.DemandList.InvalidateCache(ctx); err != nil {
		c.Logger.Warn("demand cache invalidation failed", zap.Error(err))
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

// fanout delivers one update to several notifiers.
type fanout []usecase.DemandsNotifier

func (f fanout) NotifyDemandsUpdated(count int64, source string) {
	for _, n := range f {
		if n != nil {
			n.NotifyDemandsUpdated(count, source)
		}
	}
}
