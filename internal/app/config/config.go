package config

import (
	"time"

	"nhscribe-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "nhscribe"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
			LifecycleFileName:   utils.GetEnvString("LOGGER_LIFECYCLE_FILENAME", "logrus.log"),
			MaxSizeInMegabyte:   utils.GetEnvInt("LOGGER_MAX_SIZE_IN_MEGABYTE", 100),
			MaxBackups:          utils.GetEnvInt("LOGGER_MAX_BACKUPS", 5),
			MaxAgeInDays:        utils.GetEnvInt("LOGGER_MAX_AGE_IN_DAYS", 28),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Europe/London"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1"),
			AllowedOrigins:             utils.GetEnvString("APP_ALLOWED_ORIGINS", "http://localhost:5173"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			MaxUploadSizeInMegabyte:    utils.GetEnvInt("APP_MAX_UPLOAD_SIZE_IN_MEGABYTE", 5),
		},
		Backend: Backend{
			BaseUrl:                 utils.GetEnvString("BACKEND_BASE_URL", "http://localhost:8000"),
			RequestTimeoutInSeconds: utils.GetEnvInt("BACKEND_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		Workflow: Workflow{
			DefaultDoctorName:         utils.GetEnvString("WORKFLOW_DEFAULT_DOCTOR_NAME", "Dr. Smith"),
			AutosaveDebounce:          utils.GetEnvDuration("WORKFLOW_AUTOSAVE_DEBOUNCE", 2*time.Second),
			SaveNoticeDuration:        utils.GetEnvDuration("WORKFLOW_SAVE_NOTICE_DURATION", 3*time.Second),
			DraftTTLInHours:           utils.GetEnvInt("WORKFLOW_DRAFT_TTL_IN_HOURS", 12),
			RegistryCacheTTLInSeconds: utils.GetEnvInt("WORKFLOW_REGISTRY_CACHE_TTL_IN_SECONDS", 30),
			GenerateRequestsPerMinute: utils.GetEnvInt("WORKFLOW_GENERATE_REQUESTS_PER_MINUTE", 20),
			GenerateBurst:             utils.GetEnvInt("WORKFLOW_GENERATE_BURST", 5),
			ReviewIdleTTL:             utils.GetEnvDuration("WORKFLOW_REVIEW_IDLE_TTL", 30*time.Minute),
			ReviewSweepCronSpec:       utils.GetEnvString("WORKFLOW_REVIEW_SWEEP_CRON_SPEC", "@every 1m"),
		},
		Minio: AppMinio{
			BucketName: utils.GetEnvString("APP_MINIO_LETTER_ARCHIVE_BUCKET", "letter-archive"),
		},
		RabbitMQ: AppRabbitMQ{
			LetterEventsQueue: utils.GetEnvString("APP_RABBITMQ_LETTER_EVENTS_QUEUE", "letter_events"),
		},
	}
}
