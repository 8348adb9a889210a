package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-admin-dashboard/internal/auth"
	"ms-admin-dashboard/internal/config"
	"ms-admin-dashboard/internal/database/migrations"
	"ms-admin-dashboard/internal/events"
	events_db "ms-admin-dashboard/internal/events/db"
	"ms-admin-dashboard/internal/events/events_api"
	"ms-admin-dashboard/internal/ingest"
	"ms-admin-dashboard/internal/logger"
	"ms-admin-dashboard/internal/sales"
	sales_db "ms-admin-dashboard/internal/sales/db"
	"ms-admin-dashboard/internal/sales/sales_api"
	"ms-admin-dashboard/internal/utils"
	"ms-admin-dashboard/internal/waitlist"
	waitlist_db "ms-admin-dashboard/internal/waitlist/db"
	"ms-admin-dashboard/internal/waitlist/waitlist_api"
)

func connectDatabase(cfg *config.Config, log *logger.Logger) *bun.DB {
	sqldb, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open Postgres: %v", err))
	}
	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := sqldb.Ping(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to Postgres: %v", err))
	}
	log.Info("DATABASE", "Postgres connection successful")

	return bun.NewDB(sqldb, pgdialect.New())
}

func buildVerifier(ctx context.Context, cfg *config.Config, log *logger.Logger) auth.Verifier {
	if cfg.Auth.OIDCIssuer != "" {
		verifier, err := auth.NewOIDCVerifier(ctx, cfg.Auth.OIDCIssuer)
		if err != nil {
			log.Fatal("AUTH", fmt.Sprintf("Failed to set up OIDC verifier: %v", err))
		}
		log.Info("AUTH", "Using OIDC token verification via "+cfg.Auth.OIDCIssuer)
		return verifier
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("AUTH", "Neither OIDC_ISSUER nor ADMIN_JWT_SECRET is set")
	}
	log.Info("AUTH", "Using local HMAC token verification")
	return auth.NewJWTVerifier(cfg.Auth.JWTSecret)
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	ctx := context.Background()

	bunDB := connectDatabase(cfg, log)
	defer bunDB.Close()

	migrateOpts := migrations.DefaultOptions()
	if migrateOpts.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrateOpts, log)
		if err := runner.MigrateUp(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
		}
	}

	redisClient, err := auth.InitializeAuthCache(cfg.Redis.Addr, log)
	if err != nil {
		// The dashboard works without the cache; every request just hits
		// the verifier.
		log.Warn("AUTH", fmt.Sprintf("Running without auth cache: %v", err))
		redisClient = nil
	}
	verifyCache := auth.NewVerifyCache(redisClient, cfg.Auth.CacheTTL, log)

	verifier := buildVerifier(ctx, cfg, log)

	waitlistService := waitlist.NewService(&waitlist_db.DB{Bun: bunDB})
	salesService := sales.NewService(&sales_db.DB{Bun: bunDB})
	eventsService := events.NewService(&events_db.DB{Bun: bunDB})

	waitlistHandler := waitlist_api.NewHandler(waitlistService, log)
	salesHandler := sales_api.NewHandler(salesService, log)
	eventsHandler := events_api.NewHandler(eventsService, log)

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()

	var consumer *ingest.Consumer
	if cfg.Kafka.Enabled {
		consumer = ingest.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.SalesTopic, cfg.Kafka.GroupID, salesService, log)
		go consumer.Start(consumerCtx)
	}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.AdminOnly(verifier, verifyCache, cfg.Auth.AdminRole, log))
		waitlistHandler.RegisterRoutes(r)
		salesHandler.RegisterRoutes(r)
		eventsHandler.RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", "Admin dashboard API on "+cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	stopConsumer()
	if consumer != nil {
		_ = consumer.Close()
	}

	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "Admin dashboard shutdown complete")
}
