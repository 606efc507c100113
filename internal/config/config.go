package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/edurag/tutor-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":3100"`

	// Retrieval configuration
	TopK          int    `env:"RETRIEVAL_TOP_K" envDefault:"5"`
	ChunkMaxWords int    `env:"CHUNK_MAX_WORDS" envDefault:"100"`
	DataDir       string `env:"DATA_DIR" envDefault:"data"`

	// Tenant registry file (JSON); built-in defaults are used when absent
	TenantsFile string `env:"TENANTS_FILE" envDefault:"configs/tenants.json"`

	// External service configurations
	GeneratorCfg   GeneratorConnectorConfig   `envPrefix:"GENERATOR_"`
	TranslatorCfg  TranslatorConnectorConfig  `envPrefix:"TRANSLATOR_"`
	ExtractorCfg   ExtractorConnectorConfig   `envPrefix:"EXTRACTOR_"`
	VideoSearchCfg VideoSearchConnectorConfig `envPrefix:"VIDEO_"`
	EmbedderCfg    EmbedderConfig             `envPrefix:"EMBEDDER_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Tenant registry, loaded from TenantsFile (immutable after load)
	Tenants Tenants

	// Environment (set from flag, not from env var)
	Environment string
}

type GeneratorConnectorConfig struct {
	HTTPClientConfig
	GenerateEndpoint      string               `env:"GENERATE_ENDPOINT" envDefault:"/generate"`
	GenerateImageEndpoint string               `env:"GENERATE_IMAGE_ENDPOINT" envDefault:"/generate-image"`
	Retry                 pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type TranslatorConnectorConfig struct {
	HTTPClientConfig
	DetectEndpoint    string               `env:"DETECT_ENDPOINT" envDefault:"/detect-translate"`
	TranslateEndpoint string               `env:"TRANSLATE_ENDPOINT" envDefault:"/translate"`
	Retry             pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type ExtractorConnectorConfig struct {
	HTTPClientConfig
	ExtractEndpoint string               `env:"EXTRACT_ENDPOINT" envDefault:"/extract-text"`
	Retry           pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type VideoSearchConnectorConfig struct {
	HTTPClientConfig
	SearchEndpoint string               `env:"SEARCH_ENDPOINT" envDefault:"/youtube/v3/search"`
	MaxResults     int                  `env:"MAX_RESULTS" envDefault:"4"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// EmbedderConfig configures the OpenAI-compatible embeddings client.
type EmbedderConfig struct {
	APIKey    string `env:"API_KEY"`
	BaseURL   string `env:"BASE_URL"`
	Model     string `env:"MODEL" envDefault:"text-embedding-3-small"`
	BatchSize int    `env:"BATCH_SIZE" envDefault:"32"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// LoadConfig parses the -env flag, loads the matching .env file and builds
// the configuration. Used by the server entry point.
func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load builds the configuration for the given environment name without
// touching the flag package, so CLI frontends can call it too.
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadTenants(cfg); err != nil {
		return nil, fmt.Errorf("load tenant registry: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.TopK < 1 || cfg.TopK > 100 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be between 1 and 100, got %d", cfg.TopK)
	}
	if cfg.ChunkMaxWords < 10 || cfg.ChunkMaxWords > 2000 {
		return fmt.Errorf("CHUNK_MAX_WORDS must be between 10 and 2000, got %d", cfg.ChunkMaxWords)
	}
	if cfg.VideoSearchCfg.MaxResults < 1 || cfg.VideoSearchCfg.MaxResults > 50 {
		return fmt.Errorf("VIDEO_MAX_RESULTS must be between 1 and 50, got %d", cfg.VideoSearchCfg.MaxResults)
	}
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
