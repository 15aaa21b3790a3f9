package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/dataopslabs/socials-gateway/configs"
	"github.com/dataopslabs/socials-gateway/internal/api/handlers"
	"github.com/dataopslabs/socials-gateway/internal/api/middleware"
	job "github.com/dataopslabs/socials-gateway/internal/jobs"
	"github.com/dataopslabs/socials-gateway/internal/repository"
	"github.com/dataopslabs/socials-gateway/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	historyRepo := repository.NewPublishHistoryRepository(db)
	orphanRepo := repository.NewOrphanedUploadRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	mediaService := service.NewMediaService(*cfg, orphanRepo)
	socialService := service.NewSocialService(*cfg)
	connectionService := service.NewConnectionService(*cfg)
	contentService := service.NewContentService(*cfg)
	s3Service := service.NewS3Service(*cfg)
	aiService := service.NewAIService(*cfg, s3Service)
	publishService := service.NewPublishService(*cfg, mediaService, socialService, connectionService, contentService, historyRepo)
	scheduleService := service.NewScheduleService(mediaService, connectionService, contentService)

	credentialJob := job.NewCredentialCheckJob(socialService)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)
	app.Get("/logout", auth.Logout)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	workflow := handlers.NewWorkflowHandler(*cfg, publishService, scheduleService, aiService)
	api.Post("/posts/publish", workflow.Publish)
	api.Post("/posts/schedule", workflow.Schedule)
	api.Post("/ai/generate-text", workflow.GenerateText)
	api.Post("/ai/generate-image", workflow.GenerateImage)

	connection := handlers.NewConnectionHandler(*cfg, connectionService, credentialJob)
	api.Get("/accounts", connection.ListConnections)
	api.Get("/accounts/connect/:platform", connection.Connect)
	api.Delete("/accounts/:id", connection.Disconnect)
	api.Get("/accounts/oauth/return", connection.OAuthReturn)
	api.Get("/accounts/credentials", connection.CredentialHealth)

	content := handlers.NewContentHandler(contentService, historyRepo)
	api.Get("/content", content.ListContent)
	api.Get("/content/history", content.PublishHistory)
	api.Get("/content/:id", content.GetContent)
	api.Put("/content/:id", content.UpdateContent)
	api.Delete("/content/:id", content.RemoveContent)

	// cron jobs
	c := cron.New()
	c.AddFunc("@every 00h10m00s", credentialJob.CheckCredentials)
	c.Start()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
