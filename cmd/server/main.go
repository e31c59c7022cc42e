package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/product"
	"storefront-be/internal/rest"
	"storefront-be/internal/user"

	"go.uber.org/zap"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 15 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)
	mirror := payment.NewMirror(payment.NewHTTPGateway(cfg.PaymentAPIURL), productRepo, payment.MirrorConfig{
		Workers:  cfg.PaymentMirrorWorkers,
		Attempts: cfg.PaymentMirrorAttempts,
	})
	mirror.Start()

	limiter := middleware.NewLimiter(middleware.TierWrite, middleware.TierRead)
	stopLimiter := make(chan struct{})
	defer close(stopLimiter)
	go limiter.Run(time.Minute, stopLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, database, mirror, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		errCh <- startServerFunc(srv)
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	case <-ctx.Done():
		logger.L().Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("http shutdown", zap.Error(err))
	}
	if err := mirror.Close(shutdownCtx); err != nil {
		logger.L().Warn("payment mirror did not drain", zap.Error(err))
	}
	logger.L().Info("payment mirror stopped", zap.Any("stats", mirror.Stats.Snapshot()))

	return serveErr
}

// newServer wires repositories, services and middleware around the router.
func newServer(cfg *config.Config, database *sql.DB, mirror *payment.Mirror, limiter *middleware.Limiter) http.Handler {
	orderRepo := order.NewRepository(database)
	productRepo := product.NewRepository(database)
	userRepo := user.NewRepository(database)

	h := &rest.Handler{
		OrderSvc:    order.NewService(orderRepo),
		ProductSvc:  product.NewService(productRepo, mirror),
		UserSvc:     user.NewService(userRepo, orderRepo, cfg.UserStatsConcurrency),
		DB:          database,
		MirrorStats: mirror.Stats,
	}

	return middleware.Chain(h.Routes(),
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.Recover,
		middleware.CORS(cfg.CORSOrigin),
		limiter.Middleware,
		middleware.Timeout(cfg.RequestTimeout),
		middleware.BodyLimit(maxBodyBytes),
	)
}
