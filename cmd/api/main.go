package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
	"github.com/BruksfildServices01/appointment-services/internal/config"
	dbpkg "github.com/BruksfildServices01/appointment-services/internal/db"
	"github.com/BruksfildServices01/appointment-services/internal/infra/cache"
	"github.com/BruksfildServices01/appointment-services/internal/infra/events"
	infraRepo "github.com/BruksfildServices01/appointment-services/internal/infra/repository"
	"github.com/BruksfildServices01/appointment-services/internal/logging"
	"github.com/BruksfildServices01/appointment-services/internal/middleware"
	"github.com/BruksfildServices01/appointment-services/internal/notify"
	"github.com/BruksfildServices01/appointment-services/internal/routes"
	"github.com/BruksfildServices01/appointment-services/internal/timezone"
	ucUser "github.com/BruksfildServices01/appointment-services/internal/usecase/user"
	"github.com/BruksfildServices01/appointment-services/internal/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	logger := logging.New(cfg.AppName, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return err
	}

	// ======================================================
	// CACHE (optional)
	// ======================================================
	var redisCache *cache.Client
	if cfg.RedisAddr != "" {
		redisCache = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, reads fall through to the database", slog.Any("err", err))
		}
	}

	// ======================================================
	// AUDIT SINKS
	// ======================================================
	auditLogger := audit.New(db)
	sinks := []audit.Sink{auditLogger}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}

	if cfg.SMTPHost != "" {
		mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
		sinks = append(sinks, notify.NewSink(mailer))
	}

	dispatcher := audit.NewDispatcher(logger, sinks...)

	// ======================================================
	// USERS + BOOTSTRAP
	// ======================================================
	var domainCheck func(string) bool
	if cfg.ValidateEmailDomain {
		domainCheck = validators.NewEmailDomains(nil, 3*time.Second).Valid
	}

	tokens := ucUser.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	users := ucUser.NewService(infraRepo.NewUserGormRepository(db), tokens, dispatcher, domainCheck)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := users.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			logger.Info("bootstrap admin created", slog.String("email", cfg.AdminEmail))
		}
	}

	if err := validators.RegisterBindings(); err != nil {
		return err
	}

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.CORSMiddleware(cfg.CORSOrigins),
		middleware.Timeout(cfg.RequestTimeout),
	)

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Cache:     redisCache,
		Audit:     dispatcher,
		AuditLogs: auditLogger,
		Users:     users,
		Clock:     timezone.NewClock(cfg.Timezone),
		Config:    cfg,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", slog.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", slog.Any("err", err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("audit queue not drained", slog.Any("err", err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	return nil
}
