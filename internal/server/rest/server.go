// Package rest exposes the services over HTTP using fiber.
package rest

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/ratelimit"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

// Services bundles the business services the HTTP layer calls into.
// Snapshots may be backed by a nil uploader; the endpoint then answers 503.
type Services struct {
	Users      *services.UserService
	Categories *services.CategoryService
	Tasks      *services.TaskService
	Transfer   *services.TransferService
	Snapshots  *services.SnapshotService
}

type HTTPServer struct {
	address  string
	app      *fiber.App
	services Services
	limiter  ratelimit.Limiter
	logger   logging.Logger
}

// NewHTTPServer builds the fiber app and registers every route. limiter may
// be nil, in which case register and login are not rate limited.
func NewHTTPServer(address string, l logging.Logger, svc Services, limiter ratelimit.Limiter) *HTTPServer {
	s := &HTTPServer{
		address:  address,
		services: svc,
		limiter:  limiter,
		logger:   l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "taskboard",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleFiberError,
	})
	s.routes()

	return s
}

// App returns the underlying fiber application.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

func (s *HTTPServer) routes() {
	s.app.Use(s.requestID, s.accessLog)

	s.app.Get("/healthz", s.health)

	api := s.app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.rateLimit("register"), s.register)
	authGroup.Post("/login", s.rateLimit("login"), s.login)
	authGroup.Get("/me", s.me)

	auth := s.requireAuth

	api.Get("/categories", auth, s.listCategories)
	api.Post("/categories", auth, s.createCategory)
	api.Put("/categories/:id", auth, s.updateCategory)
	api.Delete("/categories/:id", auth, s.deleteCategory)

	// stats must be registered before :id
	api.Get("/tasks/stats", auth, s.taskStats)
	api.Get("/tasks", auth, s.listTasks)
	api.Get("/tasks/:id", auth, s.getTask)
	api.Post("/tasks", auth, s.createTask)
	api.Put("/tasks/:id", auth, s.updateTask)
	api.Delete("/tasks/:id", auth, s.deleteTask)

	api.Get("/export", auth, s.exportData)
	api.Post("/export/snapshot", auth, s.createSnapshot)
	api.Post("/import", auth, s.importData)
}

// Run serves on the configured address until ctx is cancelled, then shuts
// the server down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(context.Background(), "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := s.app.Listener(listen); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}

func (s *HTTPServer) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
