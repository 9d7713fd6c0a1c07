package config

import "time"

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
		LifecycleFileName   string
		MaxSizeInMegabyte   int
		MaxBackups          int
		MaxAgeInDays        int
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)

type (
	InternalConfig struct {
		App      App
		Backend  Backend
		Workflow Workflow
		Minio    AppMinio
		RabbitMQ AppRabbitMQ
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		AllowedOrigins             string
		MaxRequests                int
		ShutdownTimeout            int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
		MaxUploadSizeInMegabyte    int
	}

	// Backend is the service that owns the registry, results and letters.
	Backend struct {
		BaseUrl                 string
		RequestTimeoutInSeconds int
	}

	Workflow struct {
		DefaultDoctorName         string
		AutosaveDebounce          time.Duration
		SaveNoticeDuration        time.Duration
		DraftTTLInHours           int
		RegistryCacheTTLInSeconds int
		GenerateRequestsPerMinute int
		GenerateBurst             int
		ReviewIdleTTL             time.Duration
		ReviewSweepCronSpec       string
	}

	AppMinio struct {
		BucketName string
	}

	AppRabbitMQ struct {
		LetterEventsQueue string
	}
)
