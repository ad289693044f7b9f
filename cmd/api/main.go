package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/engnet/backoffice-api/internal/api"
	"github.com/engnet/backoffice-api/internal/api/handler"
	"github.com/engnet/backoffice-api/internal/core/ports"
	"github.com/engnet/backoffice-api/internal/core/service"
	mongostore "github.com/engnet/backoffice-api/internal/infrastructure/db/mongo"
	"github.com/engnet/backoffice-api/internal/infrastructure/db/postgres"
	redisstore "github.com/engnet/backoffice-api/internal/infrastructure/db/redis"
	"github.com/engnet/backoffice-api/internal/infrastructure/queue"
	"github.com/engnet/backoffice-api/internal/infrastructure/storage"
	"github.com/engnet/backoffice-api/internal/pkg/config"
	"github.com/engnet/backoffice-api/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// @title                       EngNet API
// @version                     1.0
// @description                 Back-office API for users, clients and expense refunds.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
		Dir:     cfg.Log.Dir,
		Service: "backoffice-api",
	})
	defer logger.Close()

	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		logger.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.Checker{}

	// --- PostgreSQL (required) ---
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:         cfg.Postgres.DSN(),
		MaxOpen:     cfg.Postgres.MaxOpen,
		MaxIdle:     cfg.Postgres.MaxIdle,
		MaxLifetime: cfg.Postgres.MaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return err
	}
	checks["postgres"] = db
	log.Info().Msg("postgres connected")

	users := postgres.NewUserRepository(db)
	clients := postgres.NewClientRepository(db)
	refunds := postgres.NewRefundRepository(db)
	stats := postgres.NewStatsRepository(db)

	// --- MongoDB audit trail (optional) ---
	var auditLog ports.AuditLog
	if cfg.Mongo.Enabled {
		store, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "backoffice-api",
		})
		if err != nil {
			log.Warn().Err(err).Msg("audit store unavailable, audit trail disabled")
		} else {
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = store.Close(closeCtx)
			}()

			repo := mongostore.NewAuditRepository(store.DB)
			if err := repo.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to create audit indexes")
			}

			dispatcher := queue.NewAuditDispatcher(cfg.Mongo.Workers, repo, log)
			dispatcher.Start(context.Background())
			// Runs before store.Close: queued events are flushed first.
			defer dispatcher.Close()

			auditLog = dispatcher
			checks["mongodb"] = store
			log.Info().Msg("audit store connected")
		}
	}

	// --- Redis token denylist (optional) ---
	var denylist ports.TokenDenylist
	if cfg.Redis.Enabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, token revocation disabled")
		} else {
			defer rdb.Close()
			denylist = redisstore.NewTokenDenylist(rdb)
			checks["redis"] = handler.CheckFunc(func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			})
			log.Info().Msg("redis connected")
		}
	}

	// --- Report archive (optional) ---
	var archive ports.ReportArchive
	if cfg.Archive.Enabled {
		store, err := storage.NewReportArchive(storage.Config{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			UseSSL:    cfg.Archive.UseSSL,
		})
		if err == nil {
			err = store.EnsureBucket(ctx)
		}
		if err != nil {
			log.Warn().Err(err).Msg("report archive unavailable, archiving disabled")
		} else {
			archive = store
			checks["archive"] = store
			log.Info().Str("bucket", cfg.Archive.Bucket).Msg("report archive ready")
		}
	}

	// --- Services ---
	tokens := service.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	services := api.Services{
		Auth:      service.NewAuthService(users, tokens, tokens, denylist, log),
		Users:     service.NewUserService(users, auditLog, log),
		Clients:   service.NewClientService(clients, auditLog, log),
		Refunds:   service.NewRefundService(refunds, users, auditLog, log),
		Dashboard: service.NewDashboardService(refunds, stats, log),
		Reports:   service.NewReportService(refunds, users, stats, archive, log),
	}

	e := api.NewRouter(services, api.Options{
		CORSOrigins:  cfg.CORSOrigins(),
		HealthChecks: checks,
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("listening")
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

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited")
	return nil
}
