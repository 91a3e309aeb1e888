package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ironstrike-games/studio-api/types"
	"github.com/joho/godotenv"
)

// Auth backend selection.
const (
	AuthBackendLocal  = "local"
	AuthBackendGoTrue = "gotrue"
)

// Asset storage backend selection.
const (
	AssetsBackendNone  = "none"
	AssetsBackendMinio = "minio"
	AssetsBackendGCS   = "gcs"
)

// Event broker backend selection.
const (
	EventsBackendNone     = "none"
	EventsBackendRabbitMQ = "rabbitmq"
	EventsBackendPubSub   = "pubsub"
)

type Config struct {
	ServerPort int
	LogLevel   string
	Database   DatabaseConfig
	Auth       AuthConfig
	Catalog    CatalogConfig
	Assets     AssetsConfig
	Events     EventsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

// AuthConfig selects and configures the credential service backend.
type AuthConfig struct {
	// Backend is "local" or "gotrue".
	Backend string

	// Local backend: HS256 signing secret and session TTL. When
	// RequireConfirmation is set, signups are created unconfirmed and no
	// session is issued until the account is confirmed out of band.
	JWTSecret           string
	TokenTTL            time.Duration
	RequireConfirmation bool

	// GoTrue backend.
	GoTrueURL    string
	GoTrueAPIKey string
}

// CatalogConfig carries the per-entity listing policies and write limits.
type CatalogConfig struct {
	GamesPolicy      types.SourcePolicy
	ChangelogsPolicy types.SourcePolicy

	// MaxInlineImageBytes bounds inline data-URL image payloads on game
	// saves. Larger images must go through the assets endpoint instead.
	MaxInlineImageBytes int
}

type AssetsConfig struct {
	Backend       string
	PublicBaseURL string
	Minio         MinioConfig
	GCS           GCSConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type GCSConfig struct {
	ProjectID       string
	Bucket          string
	CredentialsFile string
}

type EventsConfig struct {
	Backend  string
	Channel  string
	RabbitMQ RabbitMQConfig
	PubSub   PubSubConfig
}

type RabbitMQConfig struct {
	URL             string
	QueueDurable    bool
	QueueAutoDelete bool
	PrefetchCount   int
}

type PubSubConfig struct {
	ProjectID          string
	CredentialsFile    string
	SubscriptionSuffix string
}

const defaultMaxInlineImageBytes = 1 << 20

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "studio"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "studio_db"),
		UseSSL:   getEnvBool("DB_USE_SSL", false),
	}

	authConfig := AuthConfig{
		Backend:             getEnv("AUTH_BACKEND", AuthBackendLocal),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		TokenTTL:            getEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		RequireConfirmation: getEnvBool("AUTH_REQUIRE_CONFIRMATION", false),
		GoTrueURL:           os.Getenv("GOTRUE_URL"),
		GoTrueAPIKey:        os.Getenv("GOTRUE_API_KEY"),
	}

	catalogConfig := CatalogConfig{
		GamesPolicy:         getEnvPolicy("CATALOG_GAMES_POLICY", types.PolicyAlwaysSeed),
		ChangelogsPolicy:    getEnvPolicy("CATALOG_CHANGELOGS_POLICY", types.PolicyReadThrough),
		MaxInlineImageBytes: getEnvInt("CATALOG_MAX_INLINE_IMAGE_BYTES", defaultMaxInlineImageBytes),
	}

	assetsConfig := AssetsConfig{
		Backend:       getEnv("ASSETS_BACKEND", AssetsBackendNone),
		PublicBaseURL: os.Getenv("ASSETS_PUBLIC_BASE_URL"),
		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "studio-assets"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		GCS: GCSConfig{
			ProjectID:       os.Getenv("GCS_PROJECT_ID"),
			Bucket:          os.Getenv("GCS_BUCKET"),
			CredentialsFile: os.Getenv("GCS_CREDENTIALS_FILE"),
		},
	}

	eventsConfig := EventsConfig{
		Backend: getEnv("EVENTS_BACKEND", EventsBackendNone),
		Channel: getEnv("EVENTS_CHANNEL", "studio-content"),
		RabbitMQ: RabbitMQConfig{
			URL:             os.Getenv("RABBITMQ_URL"),
			QueueDurable:    getEnvBool("RABBITMQ_QUEUE_DURABLE", true),
			QueueAutoDelete: getEnvBool("RABBITMQ_QUEUE_AUTO_DELETE", false),
			PrefetchCount:   getEnvInt("RABBITMQ_PREFETCH_COUNT", 0),
		},
		PubSub: PubSubConfig{
			ProjectID:          os.Getenv("PUBSUB_PROJECT_ID"),
			CredentialsFile:    os.Getenv("PUBSUB_CREDENTIALS_FILE"),
			SubscriptionSuffix: getEnv("PUBSUB_SUBSCRIPTION_SUFFIX", "-sub"),
		},
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Database:   dbConfig,
		Auth:       authConfig,
		Catalog:    catalogConfig,
		Assets:     assetsConfig,
		Events:     eventsConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(strings.TrimSpace(valueStr)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvPolicy(key string, defaultValue types.SourcePolicy) types.SourcePolicy {
	if valueStr, exists := os.LookupEnv(key); exists {
		policy := types.SourcePolicy(strings.TrimSpace(valueStr))
		if policy.Valid() {
			return policy
		}
	}
	return defaultValue
}
