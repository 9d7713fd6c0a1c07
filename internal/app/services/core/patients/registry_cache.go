package patients

import (
	"context"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// registrySnapshotCache reads the registry through Redis. The cache is only an
// accelerator: any Redis failure falls back to the registry itself, while a
// registry failure is always returned to the caller.
type registrySnapshotCache struct {
	Registry contracts.PatientRegistryClient
	Redis    contracts.RedisRepository
	TTL      time.Duration
	Log      *zap.Logger
}

func NewRegistrySnapshotCache(registry contracts.PatientRegistryClient, redis contracts.RedisRepository, ttl time.Duration, logger *zap.Logger) contracts.RegistrySnapshotSource {
	return &registrySnapshotCache{
		Registry: registry,
		Redis:    redis,
		TTL:      ttl,
		Log:      logger,
	}
}

func (c *registrySnapshotCache) Snapshot(ctx context.Context) ([]models.Patient, error) {
	requestID := utils.GetRequestID(ctx)

	if c.Redis != nil && c.TTL > 0 {
		cached, err := c.Redis.Get(ctx, constvars.RedisKeyRegistrySnapshot)
		if err != nil {
			c.Log.Warn("registrySnapshotCache.Snapshot error reading cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		} else if cached != "" {
			var patients []models.Patient
			err = json.Unmarshal([]byte(cached), &patients)
			if err == nil {
				c.Log.Debug("registrySnapshotCache.Snapshot served from cache",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Int(constvars.LoggingPatientCountKey, len(patients)),
				)
				return patients, nil
			}
			c.Log.Warn("registrySnapshotCache.Snapshot error decoding cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	patients, err := c.Registry.FindAllPatients(ctx)
	if err != nil {
		return nil, err
	}

	if c.Redis != nil && c.TTL > 0 {
		err = c.Redis.Set(ctx, constvars.RedisKeyRegistrySnapshot, patients, c.TTL)
		if err != nil {
			c.Log.Warn("registrySnapshotCache.Snapshot error writing cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}
	return patients, nil
}

func (c *registrySnapshotCache) Invalidate(ctx context.Context) {
	if c.Redis == nil {
		return
	}
	err := c.Redis.Delete(ctx, constvars.RedisKeyRegistrySnapshot)
	if err != nil {
		c.Log.Warn("registrySnapshotCache.Invalidate error deleting cache",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}
