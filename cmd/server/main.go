package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"wallet-api/internal/auth"
	"wallet-api/internal/clients/cache"
	"wallet-api/internal/config"
	"wallet-api/internal/handlers"
	"wallet-api/internal/logger"
	"wallet-api/internal/models"
	"wallet-api/internal/service"
	"wallet-api/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type sessionCache interface {
	GetSession(ctx context.Context, token string) (*models.Session, error)
	CacheSession(ctx context.Context, s *models.Session) error
}

func main() {
	defer logger.Sync()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	db, err := storage.Open(conf.Database())
	if err != nil {
		logger.Fatal("failed to init database", zap.Error(err), zap.String("driver", conf.Database().Driver()))
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := seedAdmin(ctx, db); err != nil {
		logger.Fatal("failed to seed admin user", zap.Error(err))
	}

	issuer, err := newTokenIssuer(conf.Auth())
	if err != nil {
		logger.Fatal("failed to init token issuer", zap.Error(err))
	}

	sessions, err := newSessionCache(ctx, conf.Cache())
	if err != nil {
		logger.Fatal("failed to init session cache", zap.Error(err))
	}
	if c, ok := sessions.(io.Closer); ok {
		defer c.Close()
	}

	h := handlers.NewHandlers(
		service.NewAuthService(db, db, issuer),
		service.NewEntryService(db, db, sessions),
		db,
	)

	srv := &http.Server{
		Addr:              conf.Server().Addr(),
		Handler:           setupRouter(h, conf.Server().CORSOrigins()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("token-strategy", conf.Auth().TokenStrategy()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func setupRouter(h *handlers.Handlers, origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(handlers.Metrics)

	h.Routes(r)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func newTokenIssuer(conf *config.AuthConfig) (auth.TokenIssuer, error) {
	if conf.TokenStrategy() == config.TokenStrategyPerLogin {
		return auth.PerLoginTokenIssuer{}, nil
	}
	return auth.NewSharedTokenIssuer()
}

// newSessionCache returns nil when no cache is configured.
func newSessionCache(ctx context.Context, conf *config.CacheConfig) (sessionCache, error) {
	switch conf.Driver() {
	case config.CacheRedis:
		return cache.NewRedis(ctx, conf)
	case config.CacheMemcached:
		return cache.NewMemcache(conf)
	}
	return nil, nil
}

// seedAdmin registers the user given by ADMIN_NAME, ADMIN_EMAIL and
// ADMIN_PASSWORD when the database has no users yet.
func seedAdmin(ctx context.Context, db *storage.DB) error {
	email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	count, err := db.UserCount(ctx)
	if err != nil || count > 0 {
		return err
	}

	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "admin"
	}

	// Same validation and hashing as sign-up.
	svc := service.NewAuthService(db, db, nil)
	in := service.RegisterInput{Name: name, Email: email, Password: password}
	if err := svc.Register(ctx, in); err != nil {
		return err
	}
	logger.Info("seeded admin user", zap.String("email", email))
	return nil
}
