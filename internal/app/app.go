package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/snoozelab/holiday-alarm/internal/config"
	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/holiday"
	"github.com/snoozelab/holiday-alarm/internal/httpserver"
	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
	"github.com/snoozelab/holiday-alarm/internal/index"
	"github.com/snoozelab/holiday-alarm/internal/logger"
	"github.com/snoozelab/holiday-alarm/internal/migrate"
	"github.com/snoozelab/holiday-alarm/internal/notify"
	"github.com/snoozelab/holiday-alarm/internal/redis"
	"github.com/snoozelab/holiday-alarm/internal/scheduler"
	"github.com/snoozelab/holiday-alarm/internal/sources/holidayapi"
	"github.com/snoozelab/holiday-alarm/internal/sources/soundcatalog"
	redisstore "github.com/snoozelab/holiday-alarm/internal/store/redis"
	"github.com/snoozelab/holiday-alarm/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	store       *redisstore.Store
	memIndex    *index.MemoryIndex
	cache       *holiday.Cache
	reconciler  *notify.Reconciler
	migration   *migrate.SoundMigration
	refresher   *scheduler.HolidayRefresher
	nightly     *scheduler.DailyReconciler
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	memIndex := index.NewMemoryIndex()
	store := redisstore.NewStore(redisClient)

	// Hydrate the memory index from persisted alarms
	syncer := scheduler.NewAlarmSyncer(store, memIndex, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync alarms from redis on startup",
			logger.Error(err))
	}

	// Sound catalog: built-ins plus the optional yaml file
	sounds := domain.DefaultSoundSet()
	if cfg.SoundCatalogFile != "" {
		catalog, err := soundcatalog.NewLoader(cfg.SoundCatalogFile).Load()
		if err != nil {
			loggerClient.Warn("failed to load sound catalog, using built-ins",
				logger.String("file", cfg.SoundCatalogFile),
				logger.Error(err))
		} else if err := catalog.Apply(sounds); err != nil {
			loggerClient.Warn("invalid sound catalog, using built-ins",
				logger.String("file", cfg.SoundCatalogFile),
				logger.Error(err))
		}
	}

	// Holiday data pipeline: provider client -> cache -> resolver
	apiClient := holidayapi.NewClient(
		cfg.HolidayAPIBaseURL,
		cfg.HolidayAPIServiceKey,
		cfg.HolidayAPITimeout,
		loggerClient,
	)
	cache := holiday.NewCache(apiClient, store, loggerClient, time.Now)
	resolver := domain.NewResolver(cache, time.Now)

	// Trigger reconciliation against the persisted trigger set
	platform := notify.NewStorePlatform(store)
	reconciler := notify.NewReconciler(memIndex, resolver, platform, sounds, loggerClient, time.Now)

	migration := migrate.NewSoundMigration(store, sounds, loggerClient)

	refreshTrigger := make(chan struct{}, 1)
	refresher := scheduler.NewHolidayRefresher(cache, loggerClient, cfg.RefreshInterval, refreshTrigger, time.Now)
	nightly := scheduler.NewDailyReconciler(reconciler, memIndex, loggerClient, cfg.ReconcileCronSpec)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		RedisClient:    redisClient,
		Store:          store,
		MemoryIndex:    memIndex,
		Cache:          cache,
		Resolver:       resolver,
		Reconciler:     reconciler,
		Sounds:         sounds,
		RefreshTrigger: refreshTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		store:       store,
		memIndex:    memIndex,
		cache:       cache,
		reconciler:  reconciler,
		migration:   migration,
		refresher:   refresher,
		nightly:     nightly,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting holiday-alarm v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("holiday-alarm %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the holiday cache. Failure is not fatal: lookups degrade to
	// non-holiday and the refresher retries on its next tick.
	if err := a.cache.Initialize(ctx); err != nil {
		a.logger.Warn("holiday cache initialization failed, running degraded",
			logger.Error(err))
	}

	// Repair stale sound references left by catalog changes
	alarms := a.memIndex.AllAlarms()
	if migrated, err := a.migration.Run(ctx, alarms); err != nil {
		a.logger.Warn("sound migration incomplete", logger.Error(err))
	} else if migrated > 0 {
		a.logger.Info("sound migration finished", logger.Int("migrated", migrated))
	}

	// Rebuild the trigger set so it reflects today's precedence outcome
	if err := a.reconciler.RescheduleAllAlarms(ctx, alarms); err != nil {
		a.logger.Warn("startup reschedule failed", logger.Error(err))
	}

	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start holiday refresher: %w", err)
	}
	a.logger.Info("holiday refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	if err := a.nightly.Start(ctx); err != nil {
		return fmt.Errorf("failed to start daily reconciler: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()
	a.nightly.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ holiday-alarm stopped cleanly")
	return nil
}
