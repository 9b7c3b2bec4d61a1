package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fastfast-logistics/database"
	"fastfast-logistics/database/seeders"
	"fastfast-logistics/logger"
	"fastfast-logistics/routes"
	"fastfast-logistics/services/event_bus"
	"fastfast-logistics/services/session"
	"fastfast-logistics/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	env := godotenv.Load()
	if env != nil {
		logger.Error("Error loading .env file", env)
		fmt.Println("Error loading .env file", env)
	}

	app := fiber.New(fiber.Config{
		AppName:         "FastFast Logistics",
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       4 * 1024 * 1024,
	})

	db, err := database.InitDB()
	if err != nil {
		logger.Fatal("Failed to connect to the database", err)
	}

	if utils.GetEnvBool("SEED_ON_START", false) {
		if err := seeders.Run(db, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
			logger.Error("Seeding failed", err)
		}
	}

	sessions, err := session.NewManagerFromEnv()
	if err != nil {
		logger.Fatal("Failed to configure sessions", err)
	}

	events := event_bus.NewFromEnv()
	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	appHost := utils.GetEnv("APP_HOST", "0.0.0.0")
	appPort := utils.GetEnv("APP_PORT", "8080")

	routes.SetupRoutes(app, routes.Dependencies{
		DB:          db,
		Sessions:    sessions,
		Events:      events,
		AsyncLogger: asyncLogger,
		PublicURL:   utils.GetEnv("APP_PUBLIC_URL", "http://localhost:"+appPort),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", err)
		}
	}()

	logger.Success("Server is running on ip: " + appHost + " port: " + appPort +
		"\n\t\t\t\t\t\t******************************************************************************************\n")

	if err := app.Listen(appHost + ":" + appPort); err != nil {
		logger.Error("Server stopped", err)
	}

	asyncLogger.Close()
	if err := events.Close(); err != nil {
		logger.Error("Failed to close event publisher", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("Server exited")
}
