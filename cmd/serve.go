package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	config "kanban-today.com/kanban-today/internal/configs"
	httpapi "kanban-today.com/kanban-today/internal/http"
	"kanban-today.com/kanban-today/internal/limiter"
	repository "kanban-today.com/kanban-today/internal/repositories"
	"kanban-today.com/kanban-today/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the board web server",
	Long:  "Migrates the task store and serves the board, the today view and the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		database := config.NewDatabaseClient(cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(database)
		boardService := services.NewBoardService(taskRepo)

		var store limiter.Store = limiter.NewMemoryStore()
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			store = limiter.NewRedisStore(redisClient, cfg.RedisRateLimitPrefix)
			log.Printf("rate limiting through redis at %s", cfg.RedisAddr)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		e.HideBanner = true
		e.Use(echomw.Logger())
		httpapi.Register(e, httpapi.NewHandler(boardService, cfg.TodayLimit), store, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		_ = e.Shutdown(echoCtx)

		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
