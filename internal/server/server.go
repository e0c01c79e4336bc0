package server

import (
	"backend-parishlive/internal/auth"
	"backend-parishlive/internal/config"
	"backend-parishlive/internal/content"
	"backend-parishlive/internal/engage"
	"backend-parishlive/internal/feed"
	"backend-parishlive/internal/live"
	"backend-parishlive/internal/moderation"
	"backend-parishlive/internal/parish"
	"backend-parishlive/internal/prompt"
	"backend-parishlive/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Live  *live.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Live:  live.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	var promptStore prompt.Store = prompt.NewMemStore()
	if s.Redis != nil {
		promptStore = prompt.NewRedisStore(s.Redis)
	}
	gate := prompt.NewGate(promptStore)

	authService := auth.NewService(s.Cfg.JWTSecret, s.DB)
	authService.AttachPromptGate(gate)

	auth.RegisterRoutes(s.App.Group("/auth"), authService)
	prompt.RegisterRoutes(s.App.Group("/prompt"), gate)
	parish.RegisterRoutes(s.App.Group("/parishes"), parish.NewService(s.DB), jwtMiddleware)
	session.RegisterRoutes(s.App.Group("/sessions"), session.NewService(s.DB, s.Cfg.SessionRadiusM), jwtMiddleware)
	feed.RegisterRoutes(s.App.Group("/feed"), feed.NewService(s.DB), jwtMiddleware)
	engage.RegisterRoutes(s.App.Group("/engage"), engage.NewService(s.DB), jwtMiddleware)
	moderation.RegisterRoutes(s.App.Group("/moderation"), moderation.NewService(s.DB), jwtMiddleware)
	content.RegisterRoutes(s.App.Group("/content"), content.NewService(s.DB), jwtMiddleware)
	live.RegisterRoutes(s.App.Group("/live"), s.Live, jwtMiddleware)
}
