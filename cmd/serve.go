package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"task-dashboard.com/task-dashboard/internal/auth"
	config "task-dashboard.com/task-dashboard/internal/configs"
	httpapi "task-dashboard.com/task-dashboard/internal/http"
	middleware "task-dashboard.com/task-dashboard/internal/http/middlewares"
	"task-dashboard.com/task-dashboard/internal/logger"
	repository "task-dashboard.com/task-dashboard/internal/repositories"
	"task-dashboard.com/task-dashboard/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task dashboard HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := config.NewDatabaseClient(cfg.DatabaseDSN)
		if err != nil {
			return err
		}

		redisClient, err := config.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return err
		}

		var rateLimit echo.MiddlewareFunc
		if redisClient != nil {
			defer redisClient.Close()
			rateLimit = middleware.RedisRateLimiter(redisClient, cfg.RedisRateLimitPrefix, cfg.RateLimit, time.Minute)
			logger.Info("using redis rate limiter", "addr", cfg.RedisAddr)
		} else {
			counter := middleware.NewMemoryCounter(time.Now)
			sweeper := middleware.NewBucketSweeper(counter, time.Minute, 5*time.Minute)
			defer sweeper.Shutdown()
			rateLimit = middleware.LimitBy(counter, cfg.RateLimit, time.Minute)
		}

		taskRepo := repository.NewTaskRepository(database)
		userRepo := repository.NewUserRepository(database)

		tokens := auth.NewTokenService(auth.TokenConfig{
			SecretKey: cfg.JWTSecret,
			Issuer:    cfg.JWTIssuer,
			TTL:       cfg.TokenTTL,
		})

		handler := httpapi.NewHandler(
			services.NewTaskService(taskRepo),
			services.NewAuthService(userRepo, tokens, auth.NewPasswordHasher(cfg.BcryptCost)),
			services.NewDashboardService(taskRepo),
		)

		e := echo.New()
		e.HideBanner = true
		httpapi.Register(e, handler, tokens, rateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server stopped", "error", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}

		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

// loadConfig reads .env when present, then the environment, and installs the
// configured logger.
func loadConfig() (config.Config, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
