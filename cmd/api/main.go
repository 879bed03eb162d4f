package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sefazor/pixelmuse-backend/internal/config"
	"github.com/sefazor/pixelmuse-backend/internal/handler"
	"github.com/sefazor/pixelmuse-backend/internal/middleware"
	"github.com/sefazor/pixelmuse-backend/internal/models"
	"github.com/sefazor/pixelmuse-backend/internal/repository"
	"github.com/sefazor/pixelmuse-backend/internal/service"
	"github.com/sefazor/pixelmuse-backend/pkg/database"
	"github.com/sefazor/pixelmuse-backend/pkg/email"
	"github.com/sefazor/pixelmuse-backend/pkg/logger"
	"github.com/sefazor/pixelmuse-backend/pkg/payment"
	"github.com/sefazor/pixelmuse-backend/pkg/replicate"
	"github.com/sefazor/pixelmuse-backend/pkg/storage"
	"github.com/sefazor/pixelmuse-backend/pkg/utils"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Config'i yükle
	cfg := config.LoadConfig()

	// Logger
	appLogger := logger.New()
	defer appLogger.Sync()

	// Initialize database
	db := database.NewDatabase()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Plan{},
		&models.Project{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Varsayılan planları ekle
	if err := database.SeedPlans(db); err != nil {
		log.Fatal("Failed to seed plans:", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	planRepo := repository.NewPlanRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	// Storage services (input ve output bucket'ları ayrı)
	inputStorage, err := storage.NewObjectStorage(cfg.Storage, cfg.Storage.InputBucket, cfg.Storage.InputPublicURL)
	if err != nil {
		log.Fatal("Failed to initialize input storage:", err)
	}
	outputStorage, err := storage.NewObjectStorage(cfg.Storage, cfg.Storage.OutputBucket, cfg.Storage.OutputPublicURL)
	if err != nil {
		log.Fatal("Failed to initialize output storage:", err)
	}

	// Replicate client
	replicateClient := replicate.NewClient(cfg.Replicate.APIToken, cfg.Replicate.ModelVersion)

	// Email service
	emailService := email.NewEmailService(appLogger)

	// Stripe service
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL)

	// Services
	authService := service.NewAuthService(userRepo, emailService)
	userService := service.NewUserService(userRepo)
	generationService := service.NewGenerationService(
		subscriptionRepo,
		projectRepo,
		inputStorage,
		outputStorage,
		replicateClient,
		appLogger,
	)
	projectService := service.NewProjectService(projectRepo, inputStorage, outputStorage, appLogger)
	paymentService := service.NewPaymentService(
		stripeService,
		subscriptionRepo,
		planRepo,
		userRepo,
		emailService,
		appLogger,
	)

	// Validator
	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService)
	generationHandler := handler.NewGenerationHandler(generationService)
	projectHandler := handler.NewProjectHandler(projectService)
	paymentHandler := handler.NewPaymentHandler(paymentService, appLogger)

	// Router
	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // Çoklu görsel yüklemeleri için
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AppURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Stripe webhook (public)
	api.Post("/payments/webhook", paymentHandler.HandleStripeWebhook)

	// Public plan listing
	api.Get("/payments/plans", paymentHandler.GetPlans)

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)

		// Generation route
		api.Post("/generations", generationHandler.Generate)

		// Project routes
		projects := api.Group("/projects")
		projects.Get("/", projectHandler.GetMyProjects)
		projects.Delete("/:id", projectHandler.DeleteProject)
		projects.Get("/:id/qr", projectHandler.GetProjectQRCode)

		// Payment routes (protected)
		payments := api.Group("/payments")
		payments.Get("/subscription", paymentHandler.GetSubscriptionStatus)
		payments.Post("/checkout/:planCode", paymentHandler.CreateCheckoutSession)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Fatal(app.Listen(":" + port))
}
