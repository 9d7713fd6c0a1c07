package storage

import (
	"bytes"
	"context"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioLetterArchive struct {
	MinioClient *minio.Client
	BucketName  string
	Log         *zap.Logger
	now         func() time.Time
}

func NewMinioLetterArchive(minioClient *minio.Client, bucketName string, logger *zap.Logger) contracts.LetterArchive {
	return &minioLetterArchive{
		MinioClient: minioClient,
		BucketName:  bucketName,
		Log:         logger,
		now:         time.Now,
	}
}

// ArchiveLetterPDF stores a copy of an exported letter and returns its object key.
func (m *minioLetterArchive) ArchiveLetterPDF(ctx context.Context, pdf *models.LetterPDF) (string, error) {
	requestID := utils.GetRequestID(ctx)
	objectKey := utils.GenerateArchiveObjectKey(pdf.LetterID.String(), m.now())
	m.Log.Info("minioLetterArchive.ArchiveLetterPDF called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, m.BucketName),
		zap.String(constvars.LoggingObjectKey, objectKey),
	)

	_, err := m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectKey,
		bytes.NewReader(pdf.Content),
		int64(len(pdf.Content)),
		minio.PutObjectOptions{
			ContentType: pdf.ContentType,
			UserMetadata: map[string]string{
				"letter-id": pdf.LetterID.String(),
			},
		},
	)
	if err != nil {
		m.Log.Error("minioLetterArchive.ArchiveLetterPDF error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	m.Log.Info("minioLetterArchive.ArchiveLetterPDF succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, objectKey),
	)
	return objectKey, nil
}

func (m *minioLetterArchive) EnsureBucket(ctx context.Context) error {
	exists, err := m.MinioClient.BucketExists(ctx, m.BucketName)
	if err != nil {
		return exceptions.ErrMinioCreateBucket(err, m.BucketName)
	}
	if exists {
		return nil
	}

	err = m.MinioClient.MakeBucket(ctx, m.BucketName, minio.MakeBucketOptions{})
	if err != nil {
		return exceptions.ErrMinioCreateBucket(err, m.BucketName)
	}
	m.Log.Info("minioLetterArchive.EnsureBucket created bucket",
		zap.String(constvars.LoggingBucketKey, m.BucketName),
	)
	return nil
}
