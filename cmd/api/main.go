// @title        Judicial Auction API
// @version      1.0
// @description  REST API for judicial auction listings, bidding and deposit review.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mazadio/auction-system/docs"
	"github.com/mazadio/auction-system/internal/api"
	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/service"
	"github.com/mazadio/auction-system/internal/infrastructure/db/mongo"
	"github.com/mazadio/auction-system/internal/infrastructure/db/redis"
	"github.com/mazadio/auction-system/internal/infrastructure/storage"
	"github.com/mazadio/auction-system/internal/pkg/config"
	"github.com/mazadio/auction-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	// --- Blob storage ---
	blobs, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}

	// --- Bootstrap admin accounts ---
	userRepo := mongo.NewUserRepository(db)
	accounts := []service.BootstrapAccount{
		{
			Email:     cfg.Bootstrap.SuperadminEmail,
			Password:  cfg.Bootstrap.SuperadminPassword,
			FirstName: "Super",
			LastName:  "Admin",
			Role:      domain.RoleSuperadmin,
		},
		{
			Email:     cfg.Bootstrap.AdminEmail,
			Password:  cfg.Bootstrap.AdminPassword,
			FirstName: "Platform",
			LastName:  "Admin",
			Role:      domain.RoleAdmin,
		},
	}
	if err := service.EnsureAdminAccounts(ctx, userRepo, accounts, log); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, blobs, api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		UploadDir: cfg.UploadDir,
	}, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("http server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongodriver.Database) error {
	creators := []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongo.NewAuctionRepository(db),
		mongo.NewBidRepository(db),
		mongo.NewDepositRepository(db),
		mongo.NewUserRepository(db),
		mongo.NewCategoryRepository(db),
	}
	for _, c := range creators {
		if err := c.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
