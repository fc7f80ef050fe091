package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"plantpal_backend/database"
	"plantpal_backend/internal/config"
	"plantpal_backend/internal/email"
	"plantpal_backend/internal/entitlement"
	"plantpal_backend/internal/handlers"
	"plantpal_backend/internal/logger"
	"plantpal_backend/internal/middleware"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/plantid"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/internal/routes"
	"plantpal_backend/internal/services"
	"plantpal_backend/internal/session"
	"plantpal_backend/internal/validator"
	"plantpal_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers onto a gin engine and
// launches the background workers on ctx.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	userRepo := repositories.NewUserRepository(gormDB)
	plantRepo := repositories.NewPlantRepository(gormDB)
	careRepo := repositories.NewCareActionRepository(gormDB)
	shareRepo := repositories.NewShareRepository(gormDB)
	identRepo := repositories.NewIdentificationRepository(gormDB)

	sessionStore := session.NewMemoryStore()
	sessionStore.StartJanitor(ctx, time.Hour)

	emailProvider := initializeEmailProvider(cfg)
	recognizer := plantid.NewClient(cfg.PlantID.APIKey, cfg.PlantID.BaseURL)

	serviceContainer := initializeServices(cfg, userRepo, plantRepo, careRepo, shareRepo, identRepo, emailProvider, recognizer)

	trialWorker := workers.NewTrialWorker(userRepo, emailProvider, cfg.TrialSweepInterval())
	go trialWorker.Start(ctx)

	appHandlers := initializeHandlers(cfg, serviceContainer, sessionStore)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, sessionStore, userRepo, cfg)

	return ginRouter
}

func initializeEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, emails will be dropped")
		return &MockEmailProvider{}
	}

	provider, err := email.NewSMTPProvider(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
	})
	if err != nil {
		logger.Warn("Invalid SMTP configuration, emails will be dropped", "error", err)
		return &MockEmailProvider{}
	}
	return provider
}

func initializeServices(
	cfg *config.Config,
	userRepo repositories.UserRepository,
	plantRepo repositories.PlantRepository,
	careRepo repositories.CareActionRepository,
	shareRepo repositories.ShareRepository,
	identRepo repositories.IdentificationRepository,
	emailProvider email.Provider,
	recognizer plantid.Recognizer,
) *services.ServiceContainer {
	authService := services.NewAuthService(userRepo, emailProvider)
	userService := services.NewUserService(userRepo, cfg.Trial.DurationDays)
	careService := services.NewCareService(careRepo, plantRepo)
	plantService := services.NewPlantService(plantRepo, shareRepo, careService)
	identifyService := services.NewIdentifyService(recognizer, userRepo, identRepo)
	shareService := services.NewShareService(shareRepo, plantRepo)
	billingService := services.NewBillingService(
		userRepo,
		userService,
		cfg.Stripe.SecretKey,
		cfg.Stripe.WebhookSecret,
		cfg.Stripe.PremiumPriceID,
		cfg.Stripe.LifetimeAmount,
		cfg.Stripe.Currency,
	)

	return &services.ServiceContainer{
		Auth:     authService,
		User:     userService,
		Plant:    plantService,
		Care:     careService,
		Identify: identifyService,
		Share:    shareService,
		Billing:  billingService,
	}
}

func initializeHandlers(cfg *config.Config, sc *services.ServiceContainer, sessionStore session.Store) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, sc.Auth, sessionStore, cfg),
		PlantHandler:    handlers.NewPlantHandler(baseHandler, sc.Plant, sc.Care),
		CareHandler:     handlers.NewCareHandler(baseHandler, sc.Care),
		IdentifyHandler: handlers.NewIdentifyHandler(baseHandler, sc.Identify),
		BillingHandler:  handlers.NewBillingHandler(baseHandler, sc.Billing, sc.User),
		AdminHandler:    handlers.NewAdminHandler(baseHandler, sc.User),
		ShareHandler:    handlers.NewShareHandler(baseHandler, sc.Share),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Username:                 "admin",
		Email:                    adminEmail,
		PasswordHash:             string(hashedPassword),
		Role:                     models.UserRoleAdmin,
		SubscriptionType:         models.SubscriptionPremiumLifetime,
		IdentificationsRemaining: entitlement.UnlimitedSentinel,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
