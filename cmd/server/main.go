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

	"growfin.backend/internal/config"
	"growfin.backend/internal/infrastructure/jobs"
	"growfin.backend/internal/infrastructure/repositories"
	"growfin.backend/internal/infrastructure/storage"
	"growfin.backend/internal/interfaces/http/handlers"
	"growfin.backend/internal/interfaces/http/middleware"
	"growfin.backend/internal/usecases"
	"growfin.backend/pkg/clock"
	"growfin.backend/pkg/jwt"
	"growfin.backend/pkg/logger"
	"growfin.backend/pkg/redis"
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
			TranslateError: true,
		})
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
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	docStore, err := storage.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.MaxSizeByte)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}

	clk := clock.System{}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	appRepo := repositories.NewLoanApplicationRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	seqRepo := repositories.NewSequenceRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, clk)
	leadUsecase := usecases.NewLeadUsecase(leadRepo, customerRepo, userRepo, seqRepo, uow, clk)
	customerUsecase := usecases.NewCustomerUsecase(customerRepo, userRepo, seqRepo, uow, clk)
	appUsecase := usecases.NewApplicationUsecase(appRepo, customerRepo, seqRepo, docStore, uow, clk)
	loanUsecase := usecases.NewLoanUsecase(loanRepo, paymentRepo, customerRepo, seqRepo, uow, clk)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	leadHandler := handlers.NewLeadHandler(leadUsecase)
	customerHandler := handlers.NewCustomerHandler(customerUsecase)
	applicationHandler := handlers.NewApplicationHandler(appUsecase)
	loanHandler := handlers.NewLoanHandler(loanUsecase)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	arrearsJob := jobs.NewArrearsMonitorJob(loanRepo, clk, cfg.Jobs.ArrearsMonitorInterval)
	go arrearsJob.Start(ctx)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:        authHandler,
		leadHandler:        leadHandler,
		customerHandler:    customerHandler,
		applicationHandler: applicationHandler,
		loanHandler:        loanHandler,
		jwtService:         jwtService,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
		arrearsJob.Stop()
		cancel()
	}()

	log.Printf("GrowFin backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
