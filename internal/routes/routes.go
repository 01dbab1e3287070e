package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/khata-app/khata/internal/config"
	"github.com/khata-app/khata/internal/middleware"
	"github.com/khata-app/khata/internal/notification"
	"github.com/khata-app/khata/internal/project"
	"github.com/khata-app/khata/internal/token"
	"github.com/khata-app/khata/internal/transaction"
	"github.com/khata-app/khata/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	// Repositories: Postgres when configured, in-memory otherwise (dev only,
	// enforced by config.Load).
	var userRepo user.Repository
	var projectRepo project.Repository
	var txRepo transaction.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		projectRepo = project.NewPostgresRepository(d.DB)
		txRepo = transaction.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		projectRepo = project.NewMemoryRepository()
		txRepo = transaction.NewMemoryRepository()
	}

	validate := validator.New()
	tokens := token.NewManager(d.Cfg.JWTSecret, d.Cfg.TokenTTL)

	notifier := notification.NewLoggerNotifier(d.Logger)
	userSvc := user.NewService(userRepo, d.Cfg.BcryptCost)
	projectSvc := project.NewService(projectRepo, notifier)
	txSvc := transaction.NewService(txRepo, projectSvc, notifier)

	userHandler := user.NewHandler(userSvc, tokens, validate, d.Cfg)
	projectHandler := project.NewHandler(projectSvc, validate)
	txHandler := transaction.NewHandler(txSvc, validate)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRatePerMin)
	RegisterAuthRoutes(api, userHandler, rateLimiter)

	// Protected routes: everything past the gate carries a resolved identity.
	gate := middleware.RequireAuth(tokens)
	protected := api.Group("", gate)
	RegisterUserRoutes(protected, projectHandler)
	RegisterProjectRoutes(protected, projectHandler, txHandler)
	RegisterTransactionRoutes(protected, txHandler)

	return nil
}
