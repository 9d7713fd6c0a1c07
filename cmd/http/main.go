package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nhscribe-service/internal/app/config"
	"nhscribe-service/internal/app/delivery/http/controllers"
	"nhscribe-service/internal/app/delivery/http/middlewares"
	"nhscribe-service/internal/app/delivery/http/routers"
	"nhscribe-service/internal/app/drivers/database"
	"nhscribe-service/internal/app/drivers/logger"
	"nhscribe-service/internal/app/drivers/messaging"
	"nhscribe-service/internal/app/drivers/storage"
	"nhscribe-service/internal/app/services/backend"
	"nhscribe-service/internal/app/services/core/autosave"
	"nhscribe-service/internal/app/services/core/letters"
	"nhscribe-service/internal/app/services/core/patients"
	"nhscribe-service/internal/app/services/core/results"
	"nhscribe-service/internal/app/services/core/workflow"
	"nhscribe-service/internal/app/services/shared/audit"
	"nhscribe-service/internal/app/services/shared/eventqueue"
	"nhscribe-service/internal/app/services/shared/redis"
	letterStorage "nhscribe-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(driverConfig, internalConfig)
	log.Infof("Starting nhscribe-service version %s (%s)", Version, Tag)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig, log)
	mongoDB := database.NewMongoDB(driverConfig, log)
	redisClient := database.NewRedisClient(driverConfig, log)
	minioClient := storage.NewMinio(driverConfig, log)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig, log)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		Lifecycle:      log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstrapping the app: %v", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: chiRouter,
	}

	go func() {
		log.Infof("Server listening on %s", server.Addr)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Errorf("Error releasing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig
	backendTimeout := time.Second * time.Duration(cfg.Backend.RequestTimeoutInSeconds)

	// Shared infrastructure
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	auditRepository := audit.NewAuditMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	letterArchive := letterStorage.NewMinioLetterArchive(bootstrap.Minio, cfg.Minio.BucketName, bootstrap.Logger)
	eventPublisher, err := eventqueue.NewLetterEventPublisher(bootstrap.RabbitMQ, cfg.RabbitMQ.LetterEventsQueue, bootstrap.Logger)
	if err != nil {
		return err
	}
	journal := workflow.NewJournal(auditRepository, eventPublisher, bootstrap.Logger)

	// Backend clients
	registryClient := backend.NewPatientRegistryClient(cfg.Backend.BaseUrl, backendTimeout, bootstrap.Logger)
	resultsClient := backend.NewResultsClient(cfg.Backend.BaseUrl, backendTimeout, bootstrap.Logger)
	letterClient := backend.NewLetterClient(cfg.Backend.BaseUrl, backendTimeout, bootstrap.Logger)

	// Patient matching
	registrySnapshot := patients.NewRegistrySnapshotCache(
		registryClient,
		redisRepository,
		time.Second*time.Duration(cfg.Workflow.RegistryCacheTTLInSeconds),
		bootstrap.Logger,
	)
	patientUsecase := patients.NewPatientUsecase(registryClient, registrySnapshot, bootstrap.Logger)

	// Results
	resultsUsecase := results.NewResultsUsecase(resultsClient, bootstrap.Logger)

	// Drafts
	draftStore := workflow.NewDraftRedisStore(redisRepository, time.Hour*time.Duration(cfg.Workflow.DraftTTLInHours))
	draftUsecase := workflow.NewDraftUsecase(
		draftStore,
		patientUsecase,
		resultsUsecase,
		letterClient,
		journal,
		cfg.Workflow.DefaultDoctorName,
		bootstrap.Logger,
	)

	// Reviews
	reviewUsecase := workflow.NewReviewUsecase(letterClient, letterArchive, journal, workflow.ReviewOptions{
		AutosaveDebounce:   cfg.Workflow.AutosaveDebounce,
		SaveNoticeDuration: cfg.Workflow.SaveNoticeDuration,
		IdleTTL:            cfg.Workflow.ReviewIdleTTL,
		Scheduler:          autosave.NewRealScheduler(),
	}, bootstrap.Logger)
	reviewSweeper := workflow.NewReviewSweeper(reviewUsecase, cfg.Workflow.ReviewSweepCronSpec, bootstrap.Logger)
	reviewSweeper.Start()
	bootstrap.ReviewStop = func() {
		reviewSweeper.Stop()
		reviewUsecase.CloseAll()
	}

	// Recent letters board
	board := letters.NewBoard(letterClient, bootstrap.Logger)
	boardUsecase := workflow.NewBoardUsecase(board, journal, bootstrap.Logger)

	// Delivery
	requestTimeout := time.Second * time.Duration(cfg.App.MaxTimeRequestsPerSeconds)
	generateLimiter := middlewares.NewRateLimiter(
		cfg.Workflow.GenerateRequestsPerMinute,
		cfg.Workflow.GenerateBurst,
		time.Minute,
		bootstrap.Logger,
	)
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, cfg)
	draftController := controllers.NewDraftController(
		bootstrap.Logger,
		draftUsecase,
		requestTimeout,
		int64(cfg.App.MaxUploadSizeInMegabyte)<<20,
	)
	reviewController := controllers.NewReviewController(bootstrap.Logger, reviewUsecase, requestTimeout)
	letterController := controllers.NewLetterController(bootstrap.Logger, boardUsecase, requestTimeout)

	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		middlewares,
		generateLimiter,
		draftController,
		reviewController,
		letterController,
	)
	return nil
}
