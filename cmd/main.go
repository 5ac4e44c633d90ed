package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"movie-catalog-service/docs"
	"movie-catalog-service/internal/config"
	"movie-catalog-service/internal/database"
	"movie-catalog-service/internal/handler"
	"movie-catalog-service/internal/middleware"
	"movie-catalog-service/internal/repository"
	"movie-catalog-service/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	db, err := database.NewPostgres(ctx, cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	} else {
		defer rdb.Close()
	}

	// Initialize layers
	movies := service.NewMovieService(repository.NewMovieRepository(db), rdb, cfg.CacheTTL)
	directors := service.NewNamedService("director", repository.NewDirectorRepository(db), movies)
	genres := service.NewNamedService("genre", repository.NewGenreRepository(db), movies)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Catalog",
		ServerHeader: "Movie-Catalog",
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New())
	limiter := middleware.NewRateLimiter(rdb, cfg.RateLimit)
	go limiter.Run(ctx)
	app.Use(limiter.Handler())

	handler.RegisterSwagger(app, "Movie Catalog", docs.SwaggerYAML)
	handler.Register(app,
		handler.NewMovieHandler(movies),
		handler.NewNamedHandler(directors),
		handler.NewNamedHandler(genres),
	)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		slog.Info("shutting down movie catalog...")
		if err := app.Shutdown(); err != nil {
			slog.Error("error shutting down HTTP server", "error", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie catalog", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("movie catalog stopped")
}
