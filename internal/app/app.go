package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogger-web/internal/audit"
	"blogger-web/internal/config"
	"blogger-web/internal/database"
	"blogger-web/internal/gateway"
	"blogger-web/internal/handler"
	"blogger-web/internal/middleware"
	"blogger-web/internal/router"
	"blogger-web/internal/session"
	"blogger-web/internal/view"
)

const sessionPurgeInterval = 10 * time.Minute

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	a := &App{}
	ctx := context.Background()

	var db *database.DB
	checks := []handler.HealthCheck{}
	if cfg.DatabaseURL != "" {
		slog.Info("connecting to PostgreSQL")
		var err error
		db, err = database.New(ctx, database.Options{
			URL:      cfg.DatabaseURL,
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.onClose(db.Close)

		if err := db.EnsureSchema(ctx); err != nil {
			a.cleanup()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		checks = append(checks, db.Health)
		slog.Info("database ready")
	}

	backend, err := a.sessionBackend(ctx, cfg, db)
	if err != nil {
		a.cleanup()
		return nil, fmt.Errorf("failed to initialize session backend: %w", err)
	}

	var sink audit.Sink
	if db != nil {
		sink = audit.NewPostgresSink(db.Pool)
	} else {
		fileSink, err := audit.NewFileSink(cfg.AuditLogFile)
		if err != nil {
			a.cleanup()
			return nil, fmt.Errorf("failed to initialize audit log: %w", err)
		}
		sink = fileSink
	}
	recorder := audit.NewRecorder(sink)

	client, err := gateway.New(gateway.Config{
		BaseURL:       cfg.BackendBaseURL,
		Timeout:       cfg.BackendTimeout,
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		a.cleanup()
		return nil, fmt.Errorf("failed to initialize backend gateway: %w", err)
	}

	views, err := view.New(cfg.UILocale)
	if err != nil {
		a.cleanup()
		return nil, fmt.Errorf("failed to load views: %w", err)
	}

	deps := handler.Deps{Gateway: client, Views: views, PageSize: cfg.DefaultPageSize}
	sessions := middleware.NewSessionMiddleware(backend, middleware.SessionOptions{
		CookieName: cfg.SessionCookieName,
		Secure:     cfg.SessionCookieSecure,
		TTL:        cfg.SessionTTL,
	})

	appRouter := router.New(cfg, sessions, router.Handlers{
		Site:    handler.NewSiteHandler(deps, checks...),
		Auth:    handler.NewAuthHandler(deps),
		Blog:    handler.NewBlogHandler(deps, recorder),
		Post:    handler.NewPostHandler(deps, recorder),
		Comment: handler.NewCommentHandler(deps, recorder),
		User:    handler.NewUserHandler(deps, recorder),
		Audit:   handler.NewAuditHandler(deps, recorder),
	})

	a.server = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	slog.Info("application configured",
		"backend", cfg.BackendBaseURL,
		"session_backend", cfg.SessionBackend,
		"locale", cfg.UILocale,
	)
	return a, nil
}

// sessionBackend opens the configured token storage. Cleanup of whatever
// it opens is registered on a.
func (a *App) sessionBackend(ctx context.Context, cfg *config.Config, db *database.DB) (session.Backend, error) {
	var backend session.Backend

	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		memoryBackend := session.NewMemoryBackend(cfg.SessionTTL)
		a.startPurge(memoryBackend)
		backend = memoryBackend
	case config.SessionBackendFile:
		fileBackend, err := session.NewFileBackend(cfg.SessionFile, cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		backend = fileBackend
	case config.SessionBackendRedis:
		redisBackend, err := session.NewRedisBackend(ctx, session.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		})
		if err != nil {
			return nil, err
		}
		backend = redisBackend
	case config.SessionBackendPostgres:
		if db == nil {
			return nil, errors.New("postgres session backend needs DATABASE_URL")
		}
		pgBackend := session.NewPostgresBackend(db.Pool, cfg.SessionTTL)
		a.startPurge(pgBackend)
		backend = pgBackend
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}

	a.onClose(func() {
		if err := backend.Close(); err != nil {
			slog.Warn("session backend close failed", "error", err)
		}
	})
	return backend, nil
}

// expiryPurger is a session backend that does not expire entries by itself.
type expiryPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func (a *App) startPurge(backend expiryPurger) {
	purgeCtx, purgeCancel := context.WithCancel(context.Background())
	go purgeExpiredSessions(purgeCtx, backend, sessionPurgeInterval)
	a.onClose(purgeCancel)
}

func purgeExpiredSessions(ctx context.Context, backend expiryPurger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := backend.PurgeExpired(ctx)
			if err != nil {
				slog.Warn("session purge failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("expired sessions purged", "count", removed)
			}
		}
	}
}

// onClose registers cleanup; cleanups run in reverse order.
func (a *App) onClose(fn func()) {
	a.cleanupFuncs = append(a.cleanupFuncs, fn)
}

func (a *App) cleanup() {
	for i := len(a.cleanupFuncs) - 1; i >= 0; i-- {
		a.cleanupFuncs[i]()
	}
	a.cleanupFuncs = nil
}

// Handler exposes the routed handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Close releases the session backend and the database pool.
func (a *App) Close() {
	a.cleanup()
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	defer a.Close()
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
