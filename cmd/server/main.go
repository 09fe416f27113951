package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"domain-agent.backend/internal/config"
	"domain-agent.backend/internal/domain/services"
	"domain-agent.backend/internal/infrastructure/ai"
	"domain-agent.backend/internal/infrastructure/email"
	"domain-agent.backend/internal/infrastructure/jobs"
	"domain-agent.backend/internal/infrastructure/models"
	"domain-agent.backend/internal/infrastructure/payments"
	"domain-agent.backend/internal/infrastructure/registrar"
	"domain-agent.backend/internal/infrastructure/repositories"
	"domain-agent.backend/internal/interfaces/http/handlers"
	"domain-agent.backend/internal/interfaces/http/middleware"
	"domain-agent.backend/internal/usecases"
	"domain-agent.backend/pkg/jwt"
	"domain-agent.backend/pkg/logger"
	"domain-agent.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newAdvisor = func(ctx context.Context, cfg config.GeminiConfig) (services.DomainAdvisor, error) {
		return ai.NewGeminiAdvisor(ctx, cfg)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "failed to initialize redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "database not available, endpoints will return errors", zap.Error(err))
	} else {
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info(context.Background(), "database connected and migrated")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	userRepo := repositories.NewUserRepository(db)
	domainRepo := repositories.NewDomainRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	convRepo := repositories.NewConversationRepository(db)
	uow := repositories.NewUnitOfWork(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registrarClient := registrar.NewClient(cfg.Namecheap)
	stripeClient := payments.NewStripeClient(cfg.Stripe)
	mailer := email.NewSMTPMailer(cfg.Mail)
	advisor, err := newAdvisor(ctx, cfg.Gemini)
	if err != nil {
		return fmt.Errorf("failed to initialize ai advisor: %w", err)
	}

	authUsecase := usecases.NewAuthUsecase(userRepo, stripeClient, mailer, jwtService)
	domainUsecase := usecases.NewDomainUsecase(domainRepo, txRepo, uow, registrarClient, advisor)
	paymentUsecase := usecases.NewPaymentUsecase(userRepo, domainRepo, txRepo, uow, stripeClient, registrarClient, mailer)
	aiUsecase := usecases.NewAIUsecase(advisor, convRepo)
	userUsecase := usecases.NewUserUsecase(userRepo, domainRepo, txRepo)

	authHandler := handlers.NewAuthHandler(authUsecase)
	domainHandler := handlers.NewDomainHandler(domainUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	aiHandler := handlers.NewAIHandler(aiUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)

	expiryJob := jobs.NewPendingPurchaseExpiryJob(domainRepo, txRepo, uow,
		cfg.Jobs.PendingPurchaseTTL, cfg.Jobs.ExpiryInterval)
	go expiryJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		authHandler:    authHandler,
		domainHandler:  domainHandler,
		paymentHandler: paymentHandler,
		aiHandler:      aiHandler,
		userHandler:    userHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService),
		rateLimit:      middleware.RateLimitMiddleware(cfg.RateLimit),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "shutting down server")
		expiryJob.Stop()
		cancel()
	}()

	logger.Info(context.Background(), "server starting", zap.String("port", cfg.Server.Port))
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
