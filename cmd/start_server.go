package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	authHttp "github.com/abisalde/inventory-service/internal/auth/handler/http"
	"github.com/abisalde/inventory-service/internal/auth/repository"
	"github.com/abisalde/inventory-service/internal/auth/service"
	"github.com/abisalde/inventory-service/internal/configs"
	"github.com/abisalde/inventory-service/internal/database"
	"github.com/abisalde/inventory-service/internal/middleware"
	"github.com/abisalde/inventory-service/pkg/jwt"
	"github.com/abisalde/inventory-service/pkg/logger"
	"github.com/abisalde/inventory-service/pkg/mail"
	"github.com/abisalde/inventory-service/pkg/password"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const requestTimeout = 15 * time.Second

type AppConfig struct {
	HTTPPort string
	AppEnv   string
}

// InitConfig loads .env when present, then the YAML config for APP_ENV.
// PORT overrides app.port.
func InitConfig() (*configs.Config, *AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := configs.Load(os.Getenv("APP_ENV"))
	if err != nil {
		return nil, nil, err
	}

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = cfg.App.Port
	}

	return cfg, &AppConfig{HTTPPort: httpPort, AppEnv: cfg.App.Env}, nil
}

func InitLogger(cfg *configs.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log.Level, cfg.Log.Development)
}

// SetupDatabase connects the relational store and, when configured, Redis.
// A missing Redis only disables rate limiting.
func SetupDatabase(ctx context.Context, cfg *configs.Config, log *zap.Logger) (*database.Database, *database.RedisCache, error) {
	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Redis.Addr == "" {
		log.Warn("redis not configured, rate limiting disabled")
		return db, nil, nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	redisCache, err := database.InitRedis(ctxWithTimeout, cfg, log)
	if err != nil {
		log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		return db, nil, nil
	}
	return db, redisCache, nil
}

func SetupAuthService(db *database.Database, cfg *configs.Config, log *zap.Logger) (*service.AuthService, error) {
	mailer, err := mail.NewMailerService(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}

	tokens, err := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	return service.NewAuthService(
		repository.NewSQLStore(db.SQLDB),
		tokens,
		password.NewHasher(cfg.Auth.BcryptCost),
		mailer,
		log,
		service.WithCodePolicy(cfg.Signup.CodeLength, cfg.Signup.CodeTTL),
	), nil
}

func SetupFiberApp(cfg *configs.Config, db *database.Database, redisCache *database.RedisCache, authService *service.AuthService, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "Inventory Service",
		CaseSensitive: true,
		ErrorHandler:  middleware.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.SecurityHeaders())

	app.Use(healthcheck.New(healthcheck.Config{
		LivenessProbe: func(c *fiber.Ctx) bool {
			return true
		},
		LivenessEndpoint: "/livez",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.FrontendOrigin,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	if cfg.Auth.CookieSecret != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{Key: cfg.Auth.CookieSecret}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.HealthCheck(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("UNHEALTHY")
		}
		return c.SendString("OK")
	})

	var limit fiber.Handler
	if redisCache != nil {
		limiter := middleware.NewRateLimiter(redisCache, middleware.RateLimitConfig{
			Requests:  cfg.RateLimit.Requests,
			Window:    cfg.RateLimit.Window,
			KeyPrefix: "ratelimit:signup",
		}, log)
		limit = limiter.Handler()
	}

	api := app.Group("/api/user", middleware.RequestTimeout(requestTimeout))
	authHttp.NewLoginHandler(authService, cfg.Auth.CookieSecure).RegisterRoutes(api)
	authHttp.NewSignupHandler(authService).RegisterRoutes(api, limit)

	return app
}
