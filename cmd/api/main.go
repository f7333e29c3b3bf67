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

	"moderation-platform/internal/audit"
	"moderation-platform/internal/auth"
	"moderation-platform/internal/comments"
	"moderation-platform/internal/config"
	"moderation-platform/internal/reporting"
	"moderation-platform/internal/settings"
	"moderation-platform/internal/signals"
	"moderation-platform/pkg/logger"
	"moderation-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Pipeline wiring: settings -> collector -> engine -> audit recorder.
	settingsStore := settings.NewStore(settings.NewPostgresRepo(db))

	var scores signals.ScoreProvider
	if cfg.Spam.RecaptchaSecret != "" {
		scores = &signals.RecaptchaProvider{Secret: cfg.Spam.RecaptchaSecret}
	}
	var verdicts signals.VerdictProvider
	if cfg.Spam.AkismetAPIKey != "" {
		verdicts = &signals.AkismetProvider{APIKey: cfg.Spam.AkismetAPIKey, SiteURL: cfg.Spam.AkismetSiteURL}
	}
	collector := signals.NewCollector(scores, verdicts, cfg.Spam.EnrichTimeout)

	auditRepo := audit.NewPostgresRepo(db)
	auditSvc := audit.NewService(auditRepo)
	recorder := audit.NewRecorder(auditSvc, log, 0)

	limiter := comments.NewRedisLimiter(rdb, cfg.Spam.RateLimit, cfg.Spam.RateLimitWindow)
	commentSvc := comments.NewService(comments.NewPostgresRepo(db), settingsStore, collector, recorder, auditSvc, limiter, uuid.NewString)

	reportingSvc := reporting.NewService(auditRepo)

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, routeDeps{
		Auth:       authManager,
		Comments:   commentSvc,
		Settings:   settingsStore,
		Audit:      auditSvc,
		Reporting:  reportingSvc,
		IPHashSalt: cfg.Spam.IPHashSalt,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	// Drain queued audit entries before the process exits.
	if err := recorder.Close(shutdownCtx); err != nil {
		log.Error("audit drain failed", "err", err)
	}
}
