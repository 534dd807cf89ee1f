package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmswright/fieldlog/internal/api"
	"github.com/jmswright/fieldlog/internal/db"
	"github.com/jmswright/fieldlog/internal/realtime"
	"gorm.io/gorm"
)

func main() {
	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	port := getEnv("PORT", "8080")

	database, err := openDatabase()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	hub := realtime.NewHub()

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	var events realtime.Publisher
	var bridge *realtime.RedisBridge
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		bridge, err = realtime.NewRedisBridge(hub, redisAddr, os.Getenv("REDIS_CHANNEL"))
		if err != nil {
			log.Fatalf("redis init failed: %v", err)
		}
		if err := bridge.StartForwarder(lifecycleCtx); err != nil {
			log.Fatalf("redis subscribe failed: %v", err)
		}
		defer bridge.Close()
		events = bridge
	}

	handler := api.NewHandler(database, secretKey, hub, events).
		WithCookieSecure(getEnv("COOKIE_SECURE", "") == "true")

	app := fiber.New(fiber.Config{
		AppName:               "Fieldlog",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowCredentials: true,
		}))
	}

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Fieldlog listening on http://0.0.0.0:%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// openDatabase prefers Postgres when DATABASE_URL is set and falls back to
// the embedded SQLite file otherwise.
func openDatabase() (*gorm.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return db.OpenPostgres(dsn)
	}
	dbPath := getEnv("DB_PATH", filepath.Join("data", "fieldlog.db"))
	return db.OpenSQLite(dbPath)
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
