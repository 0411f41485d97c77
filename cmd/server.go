package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Abraxas-365/careerkit/career/analysis/analysisapi"
	"github.com/Abraxas-365/careerkit/career/interview/interviewapi"
	"github.com/Abraxas-365/careerkit/career/jobsearch/jobsearchapi"
	"github.com/Abraxas-365/careerkit/career/letter/letterapi"
	"github.com/Abraxas-365/careerkit/career/resume/resumeapi"
	"github.com/Abraxas-365/careerkit/career/user/userapi"
	"github.com/Abraxas-365/careerkit/internal/config"
	"github.com/Abraxas-365/careerkit/pkg/errx"
	"github.com/Abraxas-365/careerkit/pkg/logx"
)

func main() {
	// 1. Load Configuration
	if err := godotenv.Load(); err != nil {
		logx.Debugf("No .env file loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.Info("Starting CareerKit API Server...")

	// 3. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.DB.Close()
	defer container.Redis.Close()

	// 4. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "CareerKit API",
		DisableStartupMessage: true,
		BodyLimit:             15 * 1024 * 1024, // room for CV and photo uploads
		ErrorHandler:          globalErrorHandler,
	})

	// 5. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AppURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 6. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		})
	})

	// 7. Register Routes

	// Accounts and password reset: /api/auth/*
	userapi.RegisterRoutes(app, container.UserHandlers, container.AuthMiddleware)

	// Resumes: /api/resumes
	resumeapi.RegisterRoutes(app, container.ResumeHandlers, container.AuthMiddleware)

	// Cover letters: /api/letters
	letterapi.RegisterRoutes(app, container.LetterHandlers, container.AuthMiddleware)

	// Mock interviews: /api/interviews
	interviewapi.RegisterRoutes(app, container.InterviewHandlers, container.AuthMiddleware)

	// CV analyses: /api/analyses
	analysisapi.RegisterRoutes(app, container.AnalysisHandlers, container.AuthMiddleware)

	// Job board scraping: /api/jobs
	jobsearchapi.RegisterRoutes(app, container.JobSearchHandlers, container.AuthMiddleware)

	// 8. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// If it's our custom errx.Error
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
