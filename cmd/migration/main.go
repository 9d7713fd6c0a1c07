package main

import (
	"context"
	"time"

	"nhscribe-service/internal/app/config"
	"nhscribe-service/internal/app/drivers/database"
	"nhscribe-service/internal/app/drivers/logger"
	"nhscribe-service/internal/app/drivers/storage"
	"nhscribe-service/internal/app/services/shared/audit"
	letterStorage "nhscribe-service/internal/app/services/shared/storage"
	"nhscribe-service/internal/pkg/utils"
)

// Provisions the stores the BFF writes to: audit indexes in MongoDB and the
// letter archive bucket in MinIO. Safe to run repeatedly.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(driverConfig, internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig, log)
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	mongoDB := database.NewMongoDB(driverConfig, log)
	defer mongoDB.Disconnect(context.Background())
	minioClient := storage.NewMinio(driverConfig, log)

	requestID := utils.GenerateRequestID()
	auditRepository := audit.NewAuditMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	err := utils.LogOperation(zapLogger, "audit.EnsureIndexes", requestID, func() error {
		return auditRepository.EnsureIndexes(ctx)
	})
	if err != nil {
		log.Fatalf("Error creating audit indexes: %v", err)
	}

	letterArchive := letterStorage.NewMinioLetterArchive(minioClient, internalConfig.Minio.BucketName, zapLogger)
	err = utils.LogOperation(zapLogger, "storage.EnsureBucket", requestID, func() error {
		return letterArchive.EnsureBucket(ctx)
	})
	if err != nil {
		log.Fatalf("Error creating letter archive bucket: %v", err)
	}

	log.Println("Migration finished")
}
