package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrust/card-ledger/internal/api/handler"
	"github.com/fintrust/card-ledger/internal/api/middleware"
	"github.com/fintrust/card-ledger/internal/core/domain"
	"github.com/fintrust/card-ledger/internal/core/service"
	mongodb "github.com/fintrust/card-ledger/internal/infrastructure/db/mongo"
	redisdb "github.com/fintrust/card-ledger/internal/infrastructure/db/redis"
	healthhandlers "github.com/fintrust/card-ledger/internal/infrastructure/http/handlers"
)

// RouterConfig bundles the dependencies the router needs.
type RouterConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cardledger"))

	// --- Dependencies ---
	cardRepo := mongodb.NewCardRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	loginGuard := redisdb.NewLoginGuard(rdb)

	authService := service.NewAuthService(userRepo, loginGuard, cfg.JWTSecret, cfg.JWTTTL, log)
	cardService := service.NewCardService(cardRepo, userRepo, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	cardHandler := handler.NewCardHandler(cardService)
	userHandler := handler.NewUserHandler(userService)

	authMW := middleware.Auth(cfg.JWTSecret, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	userOnly := middleware.RBAC(domain.RoleUser)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/authenticate", authHandler.Authenticate)

	// --- Card routes ---
	cards := e.Group("/cards", authMW)
	cards.GET("/userCards/me", cardHandler.ListMyCards, userOnly)
	cards.GET("/userCards/:userId", cardHandler.ListUserCards, adminOnly)
	cards.GET("/all", cardHandler.ListAll, adminOnly)
	cards.POST("/add", cardHandler.Create, adminOnly)
	cards.GET("/get/:id", cardHandler.Get, adminOnly)
	cards.DELETE("/delete/:id", cardHandler.Delete, adminOnly)
	cards.POST("/blockQuery/:id", cardHandler.RequestLock, userOnly)
	cards.POST("/block/:id", cardHandler.Block, adminOnly)
	cards.POST("/activate/:id", cardHandler.Activate, adminOnly)
	cards.POST("/transfer", cardHandler.Transfer, userOnly)
	cards.GET("/balance/:cardId", cardHandler.Balance, userOnly)

	// --- User routes ---
	users := e.Group("/users", authMW)
	users.GET("/me", userHandler.Me)
	users.GET("/find/:userId", userHandler.Find, adminOnly)
	users.GET("/allUsers", userHandler.List, adminOnly)
	users.PUT("/role/:id", userHandler.ChangeRole, adminOnly)
	users.DELETE("/delete/:id", userHandler.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
