package server

import (
	"incorporate-run-be/internal/bootstrap"
	"incorporate-run-be/internal/config"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
	logger    logger.ILogger
}

func New(cfg *config.Config, container *bootstrap.Container, log logger.ILogger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024, // 10MB
		ErrorHandler: serverutils.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))

	if cfg.App.OtelEnabled {
		app.Use(otelfiber.Middleware())
	}

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(serverutils.SuccessResponse[any]("ok", nil))
	})

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
		logger:    log,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.logger.Info("SERVER", "Server is running", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")
	g := c.Guards

	c.AuthController.RegisterRoutes(api, g)
	c.CompanyController.RegisterRoutes(api, g)
	c.FounderController.RegisterRoutes(api, g)
	c.InvestorController.RegisterRoutes(api, g)
	c.DocumentController.RegisterRoutes(api, g)
	c.TaskController.RegisterRoutes(api, g)
	c.CapTableController.RegisterRoutes(api, g)
	c.ChatController.RegisterRoutes(api, g)
	c.NotificationController.RegisterRoutes(api, g)
	c.VoiceController.RegisterRoutes(api, g)

	// public: the magic token is the credential
	c.SignatureController.RegisterRoutes(api, g)
}
