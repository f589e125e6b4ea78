package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avstrong/homestay/internal/booking"
	"github.com/avstrong/homestay/internal/config"
	"github.com/avstrong/homestay/internal/extras"
	"github.com/avstrong/homestay/internal/logger"
	"github.com/avstrong/homestay/internal/metrics"
	"github.com/avstrong/homestay/internal/pricing"
	"github.com/avstrong/homestay/internal/storage/memory"
	"github.com/avstrong/homestay/internal/storage/redis"
	"github.com/avstrong/homestay/internal/transport/web"
)

const configPathEnv = "HOMESTAY_CONFIG_PATH"

type estimateCache interface {
	GetEstimate(ctx context.Context, key string) (*booking.Estimate, error)
	SaveEstimate(ctx context.Context, key string, estimate *booking.Estimate) error
}

func newCache(ctx context.Context, l *logger.Logger, cfg *config.Config) (estimateCache, func(), error) {
	if cfg.Cache.Backend != "redis" {
		l.LogInfo("Using in-memory quote cache, ttl %s", cfg.CacheTTL())

		return memory.New(memory.Config{L: l, TTL: cfg.CacheTTL()}), func() {}, nil
	}

	cache := redis.New(redis.Config{
		Address:  cfg.Cache.Redis.Address,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		TTL:      cfg.CacheTTL(),
	})

	if err := cache.Ping(ctx); err != nil {
		_ = cache.Close()

		return nil, nil, fmt.Errorf("connect quote cache: %w", err)
	}

	l.LogInfo("Using redis quote cache at %s, ttl %s", cfg.Cache.Redis.Address, cfg.CacheTTL())

	return cache, func() {
		if err := cache.Close(); err != nil {
			l.LogErrorf("Failed to close redis: %v", err.Error())
		}
	}, nil
}

func loadSchedule(l *logger.Logger, cfg *config.Config) (*pricing.Schedule, error) {
	schedule, err := config.LoadSchedule(cfg.Pricing.SchedulePath)
	if err != nil {
		return nil, fmt.Errorf("load pricing schedule: %w", err)
	}

	if highest := schedule.MaxMarkup(); math.Abs(highest-pricing.PeakReferenceMarkup) > 1e-9 {
		l.LogWarnf(
			"Highest scheduled markup %.2f differs from the advertised peak markup %.2f",
			highest,
			pricing.PeakReferenceMarkup,
		)
	}

	l.LogInfo("Pricing schedule %s loaded with %d windows", schedule.Fingerprint(), len(schedule.Windows()))

	return schedule, nil
}

//nolint:funlen // linear wiring
func Run(bootstrap *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	if err := config.LoadEnv(".env"); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	cfg, err := config.Load(os.Getenv(configPathEnv))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	l := logger.New(logger.Conf{
		Out:     os.Stdout,
		Level:   cfg.Log.Level,
		Console: cfg.Log.Console && !cfg.IsProduction(),
	})

	bootstrap.LogDebugf("Config loaded for env %s", cfg.Env)

	schedule, err := loadSchedule(l, cfg)
	if err != nil {
		return err
	}

	loc := cfg.Location()
	engine := pricing.New(schedule, pricing.WithClock(func() time.Time {
		return time.Now().In(loc)
	}))

	cache, closeCache, err := newCache(ctx, l, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	metricsEndpoint := ""
	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()

		metricsEndpoint = cfg.Monitoring.MetricsEndpoint
	}

	bookManager := booking.New(l, engine, cache, booking.Conf{
		SiteName:     cfg.Site.Name,
		DeepLinkBase: cfg.Site.WhatsAppURL,
	})

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
		LivenessEndpoint:  cfg.Server.LivenessEndpoint,
		MetricsEndpoint:   metricsEndpoint,
		Location:          loc,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
		TrustForwarded:    cfg.RateLimit.TrustForwarded,
	}

	srv, err := web.New(ctx, webConf, bookManager, extras.New(cfg.Extras.ExtraBedPerNight))
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		cancel()

		return fmt.Errorf("run http server: %w", err)
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
