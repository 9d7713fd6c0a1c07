package logger

import (
	"io"
	"os"

	"nhscribe-service/internal/app/config"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the lifecycle logger used while wiring drivers and
// during shutdown, before and after the zap request logger is available.
func NewLogrusLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *logrus.Logger {
	logger := logrus.New()
	switch internalConfig.App.Env {
	case "production":
		logger.SetFormatter(&logrus.JSONFormatter{})
		rotating := newRotatingFile(driverConfig.Logger, driverConfig.Logger.LifecycleFileName)
		logger.SetOutput(io.MultiWriter(os.Stderr, rotating))
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
