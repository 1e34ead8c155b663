package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"local"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"5000"`
		Host     string `envconfig:"HOST"      default:"0.0.0.0"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"NAME"      default:"studio"`
		Timezone string `envconfig:"TIMEZONE"  default:"Asia/Kolkata"`
		BasePath string `envconfig:"BASE_PATH" default:"/api"`
		// BaseURL is the public origin used for asset URLs. Empty means derive it from the request.
		BaseURL                 string `envconfig:"BASE_URL"`
		AdminRegistrationEnable bool   `envconfig:"ADMIN_REGISTRATION_ENABLED" default:"true"`
		CORS                    struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS" default:"true"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"   default:"Accept,Authorization,Content-Type"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"   default:"GET,POST,PUT,DELETE,OPTIONS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"   default:"http://localhost:3000"`
			Enable           bool     `envconfig:"ENABLE"            default:"true"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"   default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"20"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST" default:"localhost"`
				Port     string `envconfig:"PORT" default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"1440"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int      `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int      `envconfig:"RETRY_WAIT_TIME" default:"5"`
			MigrationTable string   `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool     `envconfig:"AUTO_MIGRATE"`
			Prefix         string   `envconfig:"PREFIX"`
			Read           Database `envconfig:"READ"`
			Write          Database `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Storage struct {
		// Driver is either "local" or "s3".
		Driver   string `envconfig:"DRIVER"    default:"local"`
		LocalDir string `envconfig:"LOCAL_DIR" default:"uploads"`
		TempDir  string `envconfig:"TEMP_DIR"  default:"uploads/tmp"`
		Sweeper  struct {
			Schedule   string `envconfig:"SCHEDULE"    default:"@every 30m"`
			TTLMinutes int    `envconfig:"TTL_MINUTES" default:"60"`
		} `envconfig:"SWEEPER"`
	} `envconfig:"STORAGE"`

	Media struct {
		MaxImageSizeMB int       `envconfig:"MAX_IMAGE_SIZE_MB" default:"20"`
		MaxVideoSizeMB int       `envconfig:"MAX_VIDEO_SIZE_MB" default:"150"`
		MaxPixels      int64     `envconfig:"MAX_PIXELS"        default:"268402689"`
		Gallery        Transform `envconfig:"GALLERY"`
		Review         Transform `envconfig:"REVIEW"`
		Service        Transform `envconfig:"SERVICE"`
	} `envconfig:"MEDIA"`

	Notification struct {
		// Driver is either "async" or "kafka".
		Driver           string `envconfig:"DRIVER"             default:"async"`
		StudioName       string `envconfig:"STUDIO_NAME"        default:"Studio"`
		StudioEmail      string `envconfig:"STUDIO_EMAIL"`
		StudioPhone      string `envconfig:"STUDIO_PHONE"`
		Topic            string `envconfig:"TOPIC"              default:"studio.notifications"`
		MaxAttempts      int    `envconfig:"MAX_ATTEMPTS"       default:"1"`
		RetryWaitSeconds int    `envconfig:"RETRY_WAIT_SECONDS" default:"2"`
	} `envconfig:"NOTIFICATION"`

	Mail struct {
		Enable   bool   `envconfig:"ENABLE"`
		Host     string `envconfig:"HOST"     default:"smtp.gmail.com"`
		Port     int    `envconfig:"PORT"     default:"465"`
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
		From     string `envconfig:"FROM"`
	} `envconfig:"MAIL"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS" default:"localhost:9092"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"studio-worker"`
		SASL          struct {
			Enable   bool   `envconfig:"ENABLE"`
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			Region    string `envconfig:"REGION"`
			Bucket    string `envconfig:"BUCKET"`
			Endpoint  string `envconfig:"ENDPOINT"`
			AccessKey string `envconfig:"ACCESS_KEY"`
			SecretKey string `envconfig:"SECRET_KEY"`
		} `envconfig:"S3"`
		Twilio struct {
			Enable     bool   `envconfig:"ENABLE"`
			AccountSID string `envconfig:"ACCOUNT_SID"`
			AuthToken  string `envconfig:"AUTH_TOKEN"`
			FromNumber string `envconfig:"FROM_NUMBER"`
		} `envconfig:"TWILIO"`
	} `envconfig:"EXTERNAL"`
}

type Database struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"     default:"studio"`
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

// DefaultMaxPixels is the largest image area accepted for decoding (16383 x 16383).
const DefaultMaxPixels = 268402689

// Transform holds the resize parameters of one media collection.
type Transform struct {
	Width   int `envconfig:"WIDTH"`
	Quality int `envconfig:"QUALITY"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Warn().Err(loadErr).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			return
		}

		conf.applyMediaDefaults()

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("processing environment variables: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}

func (c *Config) applyMediaDefaults() {
	withDefault := func(t *Transform, width, quality int) {
		if t.Width <= 0 {
			t.Width = width
		}

		if t.Quality <= 0 || t.Quality > 100 {
			t.Quality = quality
		}
	}

	if c.Media.MaxPixels <= 0 {
		c.Media.MaxPixels = DefaultMaxPixels
	}

	withDefault(&c.Media.Gallery, 1200, 70)
	withDefault(&c.Media.Review, 600, 80)
	withDefault(&c.Media.Service, 800, 80)
}
