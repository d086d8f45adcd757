package api

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SundayYogurt/investment_service/config"
	"github.com/SundayYogurt/investment_service/infra/queue"
	"github.com/SundayYogurt/investment_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/investment_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/investment_service/internal/helper"
	"github.com/SundayYogurt/investment_service/internal/interfaces"
	"github.com/SundayYogurt/investment_service/internal/repository"
	"github.com/SundayYogurt/investment_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// App bundles the HTTP app with the services background workers need.
type App struct {
	Fiber    *fiber.App
	Users    services.UserService
	AuditSvc services.AuditService
}

func StartServer(cfg config.Config) {
	if cfg.AccessSecret == "" {
		log.Fatal("ACCESS_SECRET is required")
	}

	// ---------- DB ----------
	db, err := OpenDatabase(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := Migrate(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// ---------- Infra ----------
	var producer interfaces.ProducerHandler
	var kafkaProducer *queue.Producer
	if cfg.KafkaBroker != "" {
		kafkaProducer = queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword)
		producer = kafkaProducer
		log.Printf("KafkaBroker=%q KafkaTopic=%q", cfg.KafkaBroker, cfg.KafkaTopic)
	} else {
		log.Println("KAFKA_BROKER not set - audit events disabled")
	}

	app, err := NewApp(db, cfg, producer)
	if err != nil {
		log.Fatalf("app init error: %v", err)
	}

	// ---------- Seed ----------
	if err := app.Users.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("admin seed error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.KafkaBroker != "" && cfg.KafkaGroupID != "" {
		consumer := queue.NewKafkaConsumer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaGroupID,
			cfg.KafkaUsername,
			cfg.KafkaPassword,
			app.AuditSvc,
		)
		go consumer.Listen(ctx)
		log.Printf("audit consumer listening, group=%q", cfg.KafkaGroupID)
	}

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.Fiber.Shutdown(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	// ---------- Listen ----------
	log.Println("listening on", cfg.ServerPort)
	if err := app.Fiber.Listen(cfg.ServerPort); err != nil {
		log.Printf("listen error: %v", err)
	}
	if err := kafkaProducer.Close(); err != nil {
		log.Printf("kafka producer close error: %v", err)
	}
}

// NewApp wires repositories, services and handlers on top of db. producer may
// be nil, in which case no audit events are published.
func NewApp(db *gorm.DB, cfg config.Config, producer interfaces.ProducerHandler) (*App, error) {
	app := fiber.New(fiber.Config{
		AppName: "investment-service",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: cfg.AllowedOrigins != "*",
	}))

	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	userRoleRepo := repository.NewUserRoleRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	capRepo := repository.NewCapabilityRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, roleRepo, userRoleRepo, authHelper, producer)
	if err := userSvc.SeedRoles(); err != nil {
		return nil, err
	}
	permSvc := services.NewPermissionService(capRepo)
	accountSvc := services.NewAccountService(accountRepo, permSvc, producer)
	txSvc := services.NewTransactionService(txRepo, permSvc, producer)
	capSvc := services.NewCapabilityService(capRepo, userRepo, accountRepo, producer)
	reportSvc := services.NewReportService(userRepo, accountRepo, txRepo)
	auditSvc := services.NewAuditService(auditRepo)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Handlers ----------
	handlers.NewTokenHandler(userSvc).SetupRoutes(app)

	secured := app.Group("", middleware.AuthMiddleware(authHelper, userSvc))
	handlers.NewUserHandler(userSvc).SetupRoutes(secured)
	handlers.NewAccountHandler(accountSvc, userSvc).SetupRoutes(secured)
	handlers.NewTransactionHandler(txSvc).SetupRoutes(secured)
	handlers.NewCapabilityHandler(capSvc, userSvc).SetupRoutes(secured)
	handlers.NewAdminHandler(reportSvc, auditSvc, userSvc).SetupRoutes(secured)

	return &App{
		Fiber:    app,
		Users:    userSvc,
		AuditSvc: auditSvc,
	}, nil
}
