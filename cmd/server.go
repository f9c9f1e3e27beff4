package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/audit/auditapi"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth/authapi"
	"github.com/Abraxas-365/hiresight/pkg/iam/user/userapi"
	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/Abraxas-365/hiresight/recruitment/candidate/candidateapi"
	"github.com/Abraxas-365/hiresight/recruitment/integration/integrationapi"
	"github.com/Abraxas-365/hiresight/recruitment/job/jobapi"
	"github.com/Abraxas-365/hiresight/recruitment/matching/matchingapi"
	"github.com/Abraxas-365/hiresight/recruitment/note/noteapi"
	"github.com/Abraxas-365/hiresight/recruitment/tag/tagapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

var withWorkers bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&withWorkers, "workers", false, "Also run the enrichment workers in this process")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logx.Sync()
	logx.Info("Starting HireSight API Server...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	app := newApp(container)

	if withWorkers {
		go func() {
			if err := newWorkerPool(container).Run(ctx); err != nil {
				logx.Errorf("Enrichment workers stopped: %v", err)
			}
		}()
	}

	go func() {
		logx.Infof("Server listening on port %s", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logx.Errorf("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	logx.Info("Server exited")
	return nil
}

func newApp(container *Container) *fiber.App {
	cfg := container.Config

	app := fiber.New(fiber.Config{
		AppName:               "HireSight API",
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler:          globalErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.PingContext(ctx) == nil,
			"redis":  container.EnrichmentQueue.Ping(ctx) == nil,
		})
	})

	// --- IAM ---
	authapi.RegisterRoutes(app, container.AuthHandlers, container.AuthMiddleware)
	userapi.RegisterRoutes(app, container.UserHandlers, container.AuthMiddleware)
	auditapi.RegisterRoutes(app, container.AuditHandlers, container.AuthMiddleware)

	// --- Recruitment ---
	candidateapi.RegisterRoutes(app, container.CandidateHandlers, container.AuthMiddleware)
	tagapi.RegisterRoutes(app, container.TagHandlers, container.AuthMiddleware)
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)
	noteapi.RegisterRoutes(app, container.NoteHandlers, container.AuthMiddleware)
	matchingapi.RegisterRoutes(app, container.MatchingHandlers, container.AuthMiddleware)
	integrationapi.RegisterRoutes(app, container.IntegrationHandlers, container.AuthMiddleware)

	return app
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors (e.g. 404 route not found, body too large)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	if e, ok := errx.As(err); ok {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("Internal Server Error: %v", err)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
