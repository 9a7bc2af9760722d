package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/blog-api/internal/api/handler"
	"github.com/inkwell/blog-api/internal/api/middleware"
	"github.com/inkwell/blog-api/internal/auth"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/service"
	"github.com/inkwell/blog-api/internal/infrastructure/config"
	mongodb "github.com/inkwell/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/blog-api/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-api/internal/infrastructure/storage"
)

// NewRouter builds the Echo instance with every route and its access rule
// declared in one place. Each mutating route names its gate explicitly; none
// relies on the absence of a check.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, images *storage.LocalImageStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	postRepo := mongodb.NewPostRepository(db)

	hasher := auth.NewHasher(auth.DefaultHashParams())
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	authService := service.NewAuthService(userRepo, roleRepo, hasher, tokens, log)
	categoryService := service.NewCategoryService(categoryRepo, postRepo, log)
	postService := service.NewPostService(postRepo, categoryRepo, images, cfg.BaseURL, log)

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	postHandler := handler.NewPostHandler(postService)

	authenticate := middleware.Authenticate(authService)
	authenticateOptional := middleware.AuthenticateOptional(authService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	anyRole := middleware.RequireRole()
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Limit.Window, cfg.Limit.Attempts)
	authLimit := middleware.AuthRateLimit(limiter, log)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup, authLimit)
	e.POST("/login", authHandler.Login, authLimit)
	e.GET("/me", authHandler.Me, authenticate)

	// --- Category routes ---
	e.GET("/categories", categoryHandler.List)
	e.POST("/categories", categoryHandler.Create, authenticate, adminOnly)
	e.PUT("/categories/:id", categoryHandler.Update, authenticate, adminOnly)
	e.DELETE("/categories/:id", categoryHandler.Delete, authenticate, adminOnly)

	// --- Post routes ---
	e.GET("/posts", postHandler.List, authenticateOptional)
	e.GET("/posts/:id", postHandler.Get, authenticateOptional)
	e.POST("/posts", postHandler.Create, authenticate, anyRole)
	e.PUT("/posts/:id", postHandler.Update, authenticate, anyRole)
	e.DELETE("/posts/:id", postHandler.Delete, authenticate, anyRole)

	// --- Static uploads ---
	e.Static("/uploads", images.Dir())

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
