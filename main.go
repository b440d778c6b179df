package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/streadway/amqp"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/logger"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	// --- Repository ---
	productRepo := repositories.NewGORMProductRepository(db)

	var seed []models.Product
	if cfg.SeedProducts {
		seed = defaultCatalog()
	}
	// Init is idempotent: it migrates the schema on every start and seeds
	// only when the store is empty.
	if err := productRepo.Init(seed); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize product repository")
	}

	// --- RabbitMQ (optional) ---
	// Catalog events are best effort; an empty URL disables them entirely.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()

		go func() {
			log.Info().Msg("starting catalog events consumer")
			consumeErr := mqClient.ConsumeCatalogEvents(func(msg amqp.Delivery) error {
				log.Info().
					Uint64("delivery_tag", msg.DeliveryTag).
					RawJSON("event", msg.Body).
					Msg("catalog event received")
				return nil
			})
			if consumeErr != nil {
				log.Error().Err(consumeErr).Msg("catalog events consumer stopped")
			}
		}()
	}

	// --- Services ---
	tokenVerifier := services.NewTokenVerifier(cfg.JWTSecret, cfg.JWTAlgorithm)
	authService := services.NewAuthService(tokenVerifier)
	productService := services.NewProductService(productRepo, mqClient, log)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, log)

	// --- Fiber app ---
	app := fiber.New()

	app.Use(requestid.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Every product route requires authentication; mutating routes are
	// additionally admin-gated inside the handler registration.
	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService, log))
	productHandler.RegisterRoutes(protectedRoutes, middleware.AdminRequired(authService))

	// --- Start HTTP Server ---
	log.Info().Str("port", cfg.AppPort).Str("db_driver", cfg.DBDriver).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped")
}

// defaultCatalog is the fixed dataset seeded into an empty store so a fresh
// deployment has something to serve. An already-populated store is left
// untouched.
func defaultCatalog() []models.Product {
	return []models.Product{
		{Name: "Mechanical keyboard", Description: "Cherry MX Red switches, RGB backlight", Price: 89.99, Stock: 45, Category: "Peripherals"},
		{Name: "27\" 4K monitor", Description: "3840x2160 IPS panel, 60Hz", Price: 349.99, Stock: 12, Category: "Monitors"},
		{Name: "Wireless mouse", Description: "16000 DPI optical sensor, 70h battery", Price: 59.99, Stock: 78, Category: "Peripherals"},
		{Name: "1TB NVMe SSD", Description: "3500 MB/s read, 3000 MB/s write", Price: 79.99, Stock: 150, Category: "Storage"},
		{Name: "Bluetooth headphones", Description: "Active noise cancelling, 30h battery", Price: 129.99, Stock: 33, Category: "Audio"},
		{Name: "Full HD webcam", Description: "1080p 30fps, built-in microphone, autofocus", Price: 49.99, Stock: 60, Category: "Peripherals"},
		{Name: "7-in-1 USB-C hub", Description: "HDMI, 3x USB 3.0, SD, ethernet, 100W charging", Price: 39.99, Stock: 95, Category: "Accessories"},
		{Name: "32GB DDR5 RAM kit", Description: "2x16GB, 5600MHz, CL36", Price: 119.99, Stock: 40, Category: "Components"},
		{Name: "750W gold PSU", Description: "Modular, 80+ Gold, silent 120mm fan", Price: 94.99, Stock: 55, Category: "Components"},
		{Name: "XXL mouse pad", Description: "900x400mm, micro-woven surface, non-slip base", Price: 19.99, Stock: 200, Category: "Accessories"},
		{Name: "USB condenser microphone", Description: "Cardioid pattern, built-in pop filter", Price: 69.99, Stock: 42, Category: "Audio"},
		{Name: "4TB external hard drive", Description: "USB 3.0, 2.5 inch, automatic backup", Price: 99.99, Stock: 70, Category: "Storage"},
	}
}
