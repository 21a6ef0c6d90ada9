package main

import (
	"context"
	"errors"
	"log"
	"os"

	"review-portal-api/config"
	"review-portal-api/middleware"
	"review-portal-api/routes"
	"review-portal-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	config.InitDB()
	config.InitRedis()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	routes.SetupRoutes(router)

	// Window-closing reminder job, daily at 08:00 server time.
	reminders := services.NewReminderJobService(config.DB, services.NewNotificationService(config.DB))
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 8 * * *", func() {
		if _, err := reminders.Run(context.Background()); err != nil &&
			!errors.Is(err, services.ErrReminderJobAlreadyRunning) {
			log.Printf("Window reminder job failed: %v", err)
		}
	}); err != nil {
		log.Printf("Warning: failed to schedule reminder job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if ginMode == "release" {
		log.Printf("Running in production mode")
	} else {
		log.Printf("Running in development mode")
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
