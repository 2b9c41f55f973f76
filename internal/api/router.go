package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mazadio/auction-system/internal/api/handler"
	"github.com/mazadio/auction-system/internal/api/middleware"
	"github.com/mazadio/auction-system/internal/core/ports"
	"github.com/mazadio/auction-system/internal/core/service"
	mongorepo "github.com/mazadio/auction-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/mazadio/auction-system/internal/infrastructure/db/redis"
)

// RouterConfig bundles what the router needs beyond its datastores.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	UploadDir string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, blobs ports.BlobStore, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auction"))

	// --- Repositories ---
	auctionRepo := mongorepo.NewAuctionRepository(db)
	bidRepo := mongorepo.NewBidRepository(db)
	depositRepo := mongorepo.NewDepositRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	categoryRepo := mongorepo.NewCategoryRepository(db)
	referenceRepo := mongorepo.NewReferenceRepository(db)
	bidLock := redisinfra.NewBidLock(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	auctionService := service.NewAuctionService(auctionRepo, bidRepo, blobs, log)
	bidService := service.NewBidService(auctionRepo, bidRepo, userRepo, bidLock, log)
	depositService := service.NewDepositService(depositRepo, auctionRepo, blobs, log)
	referenceService := service.NewReferenceService(categoryRepo, referenceRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	auctionHandler := handler.NewAuctionHandler(auctionService)
	bidHandler := handler.NewBidHandler(bidService)
	depositHandler := handler.NewDepositHandler(depositService)
	referenceHandler := handler.NewReferenceHandler(referenceService)

	auth := middleware.Auth(cfg.JWTSecret, userRepo)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret, userRepo)
	adminOnly := middleware.RequireAdmin()

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Static receipts and attachments ---
	if cfg.UploadDir != "" {
		e.Static("/uploads", cfg.UploadDir)
	}

	v1 := e.Group("/v1")

	// --- Auth ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", authHandler.Me, auth)
	v1.PUT("/auth/password", authHandler.ChangePassword, auth)

	// --- Users ---
	v1.GET("/users/:id", userHandler.Get, auth)
	v1.PUT("/users/:id", userHandler.UpdateProfile, auth)

	// --- Auctions ---
	v1.GET("/auctions", auctionHandler.List)
	v1.GET("/auctions/:id", auctionHandler.Get, optionalAuth)
	v1.POST("/auctions", auctionHandler.Create, auth)
	v1.PATCH("/auctions/:id", auctionHandler.Update, auth)
	v1.PUT("/auctions/:id/status", auctionHandler.UpdateStatus, auth)
	v1.DELETE("/auctions/:id", auctionHandler.Delete, auth)

	// --- Bids ---
	v1.POST("/auctions/:id/bids", bidHandler.Place, auth)
	v1.GET("/auctions/:id/bids", bidHandler.ListForAuction)
	v1.GET("/auctions/:id/bids/highest", bidHandler.Highest)
	v1.GET("/bids/mine", bidHandler.ListMine, auth)

	// --- Deposits ---
	v1.POST("/deposits", depositHandler.Submit, auth)
	v1.GET("/deposits/mine", depositHandler.ListMine, auth)

	// --- Reference data ---
	v1.GET("/categories", referenceHandler.ListCategories)
	v1.GET("/reference/tribunals", referenceHandler.Tribunals)
	v1.GET("/reference/countries", referenceHandler.Countries)
	v1.GET("/reference/cities", referenceHandler.Cities)
	v1.GET("/reference/credit-organisms", referenceHandler.CreditOrganisms)

	// --- Admin ---
	admin := v1.Group("/admin", auth, adminOnly)
	admin.GET("/users", userHandler.List)
	admin.PUT("/users/:id/role", userHandler.SetRole)
	admin.PUT("/users/:id/block", userHandler.SetBlocked)
	admin.PUT("/users/:id/active", userHandler.SetActive)
	admin.GET("/deposits", depositHandler.List)
	admin.GET("/deposits/stats", depositHandler.Stats)
	admin.PUT("/deposits/:id/review", depositHandler.Review)
	admin.POST("/categories", referenceHandler.CreateCategory)
	admin.DELETE("/categories/:id", referenceHandler.DeleteCategory)

	return e
}
