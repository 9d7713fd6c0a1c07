package config

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Client
	Redis          *redis.Client
	Minio          *minio.Client
	RabbitMQ       *amqp091.Connection
	Logger         *zap.Logger
	Lifecycle      *logrus.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// ReviewStop abandons pending autosaves of every open review session.
	ReviewStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.ReviewStop != nil {
		b.ReviewStop()
		b.Lifecycle.Info("Successfully closed review sessions")
	}

	err := b.Redis.Close()
	if err != nil {
		return err
	}
	b.Lifecycle.Info("Successfully closing Redis")

	err = b.RabbitMQ.Close()
	if err != nil {
		return err
	}
	b.Lifecycle.Info("Successfully closing RabbitMQ")

	err = b.MongoDB.Disconnect(ctx)
	if err != nil {
		return err
	}
	b.Lifecycle.Info("Successfully closing MongoDB")

	// zap returns EINVAL when syncing stdout on some platforms.
	b.Logger.Sync()
	b.Lifecycle.Info("Successfully closing Logger")

	return nil
}
