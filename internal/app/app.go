package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/lft-board/external/trackergg"
	"github.com/riskibarqy/lft-board/internal/config"
	"github.com/riskibarqy/lft-board/internal/domain/application"
	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
	"github.com/riskibarqy/lft-board/internal/infrastructure/account"
	"github.com/riskibarqy/lft-board/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/lft-board/internal/infrastructure/account/supabase"
	"github.com/riskibarqy/lft-board/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/lft-board/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/lft-board/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/lft-board/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/lft-board/internal/platform/cache"
	idgen "github.com/riskibarqy/lft-board/internal/platform/id"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"github.com/riskibarqy/lft-board/internal/platform/ratelimit"
	"github.com/riskibarqy/lft-board/internal/usecase"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	dbPingTimeout       = 5 * time.Second
	rateLimitKeyPrefix  = "lft-board:ratelimit:tracker:"
	trackerClientName   = "lft-board-tracker"
	maxTrackerConnsHost = 32
)

type repositories struct {
	listings     cache.ListingStore
	applications application.Repository
	notices      resultnotice.Repository
	profiles     profile.Repository
	tags         playstyle.Repository
}

// NewHTTPServer wires storage, identity, the tracker client and usecases into
// the HTTP router. The returned cleanup closes opened connections.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var closers []func() error
	cleanup := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	fail := func(err error) (*http.Server, func() error, error) {
		_ = cleanup()
		return nil, nil, err
	}

	repos, closeRepos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeRepos)

	limiterStore, closeLimiter, err := newCounterStore(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeLimiter)

	trackerLimiter, err := ratelimit.NewLimiter(limiterStore, cfg.TrackerRateLimit, cfg.TrackerRateWindow)
	if err != nil {
		return fail(fmt.Errorf("build tracker rate limiter: %w", err))
	}

	verifier, err := newTokenVerifier(cfg, logger)
	if err != nil {
		return fail(err)
	}

	trackerClient := trackergg.NewClient(trackergg.Config{
		HTTPClient: &fasthttp.Client{
			Name:            trackerClientName,
			MaxConnsPerHost: maxTrackerConnsHost,
			ReadTimeout:     cfg.TrackerTimeout,
			WriteTimeout:    cfg.TrackerTimeout,
		},
		BaseURL:        cfg.TrackerBaseURL,
		APIKey:         cfg.TrackerAPIKey,
		Timeout:        cfg.TrackerTimeout,
		MaxRetries:     cfg.TrackerMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.TrackerCircuit,
	})

	ids := idgen.NewUUIDGenerator()
	listingSvc := usecase.NewListingService(repos.listings, repos.tags, ids, cfg.ListingExpiryWindow, logger)
	applicationSvc := usecase.NewApplicationService(
		repos.listings,
		repos.applications,
		repos.profiles,
		ids,
		cfg.ListingExpiryWindow,
		cfg.ApplicantLookupWorkers,
		logger,
	)
	finalizeSvc := usecase.NewFinalizeService(repos.listings, repos.applications, repos.listings, ids, logger)
	resultSvc := usecase.NewResultNoticeService(repos.notices)
	profileSvc := usecase.NewProfileService(repos.profiles, trackerClient, trackerLimiter, logger)
	tagSvc := usecase.NewPlayStyleTagService(repos.tags, ids, logger)
	boardSvc := usecase.NewBoardService(listingSvc, applicationSvc, resultSvc, tagSvc)

	handler := httpapi.NewHandler(
		listingSvc,
		applicationSvc,
		finalizeSvc,
		resultSvc,
		profileSvc,
		tagSvc,
		boardSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, httpapi.RouterOptions{
		Logger:             logger,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	var repos repositories
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewStore()
		if err := memory.Seed(ctx, store, memory.SeedPlayStyleTags()); err != nil {
			return repositories{}, nil, fmt.Errorf("seed memory store: %w", err)
		}
		repos = repositories{
			listings:     memory.NewListingRepository(store),
			applications: memory.NewApplicationRepository(store),
			notices:      memory.NewResultNoticeRepository(store),
			profiles:     memory.NewProfileRepository(store),
			tags:         memory.NewPlayStyleTagRepository(store),
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver)
		return repos, noop, nil
	case config.StoragePostgres:
		target := parseDBTarget(cfg.DBURL, cfg.DBDisablePreparedBinary)
		db, err := openDB(ctx, target)
		if err != nil {
			return repositories{}, nil, err
		}
		if err := postgres.BootstrapSeed(ctx, db, memory.SeedPlayStyleTags()); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		repos = repositories{
			listings:     postgres.NewListingRepository(db),
			applications: postgres.NewApplicationRepository(db),
			notices:      postgres.NewResultNoticeRepository(db),
			profiles:     postgres.NewProfileRepository(db),
			tags:         postgres.NewPlayStyleTagRepository(db),
		}
		if cfg.CacheEnabled {
			store := basecache.NewStore(cfg.CacheTTL)
			repos.listings = cache.NewListingRepository(repos.listings, store)
			repos.applications = cache.NewApplicationRepository(repos.applications, store)
			repos.profiles = cache.NewProfileRepository(repos.profiles, store)
			repos.tags = cache.NewPlayStyleTagRepository(repos.tags, store)
		}
		logger.Info("storage ready",
			"driver", cfg.StorageDriver,
			"db_name", target.name,
			"db_host", target.host,
			"cache_enabled", cfg.CacheEnabled,
		)
		return repos, db.Close, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func newCounterStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (ratelimit.CounterStore, func() error, error) {
	if cfg.RateLimitBackend != config.RateLimitRedis {
		logger.Info("rate limit store ready", "backend", config.RateLimitMemory)
		return ratelimit.NewMemoryStore(), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("rate limit store ready", "backend", config.RateLimitRedis, "addr", cfg.RedisAddr)
	return ratelimit.NewRedisStore(client, rateLimitKeyPrefix), client.Close, nil
}

func newTokenVerifier(cfg config.Config, logger *logging.Logger) (*account.ModeratorVerifier, error) {
	var next account.TokenVerifier
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		verifier, err := supabase.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTAudience)
		if err != nil {
			return nil, fmt.Errorf("build jwt verifier: %w", err)
		}
		next = verifier
	case config.AuthModeRemote:
		next = anubis.NewClient(anubis.Config{
			HTTPClient: &http.Client{
				Timeout:   cfg.AuthTimeout,
				Transport: otelhttp.NewTransport(http.DefaultTransport),
			},
			BaseURL:        cfg.AuthBaseURL,
			UserPath:       cfg.AuthUserPath,
			APIKey:         cfg.AuthAPIKey,
			CacheTTL:       cfg.AuthCacheTTL,
			CircuitBreaker: cfg.AuthCircuit,
			Logger:         logger,
		})
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
	}

	logger.Info("token verifier ready", "mode", cfg.AuthMode, "moderators", len(cfg.ModeratorUserIDs))
	return account.WithModerators(next, cfg.ModeratorUserIDs), nil
}
