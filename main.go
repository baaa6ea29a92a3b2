package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bozor/internal/config"
	"bozor/internal/handlers"
	"bozor/internal/middleware"
	"bozor/internal/models"
	"bozor/internal/repositories"
	"bozor/internal/services"
	"bozor/internal/storage"
	"bozor/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	// TranslateError makes unique-constraint violations surface as
	// gorm.ErrDuplicatedKey regardless of driver.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Image{}, &models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ ---
	// The broker is optional: services skip publishing when no client
	// is available.
	var events services.EventPublisher
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events will not be published: %v", err)
	} else {
		defer mqClient.Close()
		events = mqClient
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	imageRepo := repositories.NewGORMImageRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	// --- Services ---
	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokenService, events)
	catalogService := services.NewCatalogService(categoryRepo, imageRepo, storage.NewDiskStore(cfg.UploadDir))
	productService := services.NewProductService(productRepo, events, cfg.BaseURL)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	productHandler := handlers.NewProductHandler(productService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	authRequired := middleware.AuthRequired(tokenService)
	authHandler.RegisterRoutes(app)
	catalogHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app, authRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Shop event consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for shop events...")
		if consumerErr := mqClient.Consume(func(msg amqp.Delivery) error {
			log.Printf("Received shop event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- HTTP server with graceful shutdown ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
