package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/serenity-health/serenity/internal/notify"
	"github.com/serenity-health/serenity/internal/session"
	"github.com/serenity-health/serenity/internal/storage"
	"github.com/serenity-health/serenity/pkg/config"
	"go.uber.org/zap"
)

// Server exposes the dashboard REST API. Authentication is external; the
// authenticated user identity arrives in the X-User-ID header.
type Server struct {
	app      *fiber.App
	cfg      *config.Config
	storage  storage.Storage
	sessions *session.Service
	notifier *notify.Notifier
	logger   *zap.Logger
}

func New(cfg *config.Config, store storage.Storage, sessions *session.Service, notifier *notify.Notifier, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName: "serenity",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	s := &Server{
		app:      app,
		cfg:      cfg,
		storage:  store,
		sessions: sessions,
		notifier: notifier,
		logger:   logger,
	}
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api/v1", s.requireUser)

	api.Get("/profile", s.getProfile)
	api.Put("/profile", s.updateProfile)
	api.Get("/messages", s.getMessages)
	api.Post("/chat", s.chat)
	api.Post("/session/end", s.endSession)
	api.Get("/notes", s.getNotes)
	api.Get("/appointments", s.getAppointments)
	api.Get("/briefing", s.briefing)
}

// requireUser resolves the caller's identity and runs the idempotent
// initialization step so every read below sees seeded data.
func (s *Server) requireUser(c *fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing X-User-ID header",
		})
	}

	if err := s.storage.EnsureUser(c.Context(), userID); err != nil {
		s.logger.Error("Failed to initialize user data", zap.Error(err), zap.String("user_id", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	c.Locals("user_id", userID)
	return c.Next()
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.app.Listen(addr)
}
