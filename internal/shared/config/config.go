package config

import (
	"fmt"
	"playlist-server/internal/shared/utils"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Playlist  PlaylistConfig
	Share     ShareConfig
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatasetConfig selects where the mission graph is loaded from and saved to
type DatasetConfig struct {
	Source string
	Path   string
}

const (
	DatasetSourceFile     = "file"
	DatasetSourcePostgres = "postgres"
)

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// PlaylistConfig holds generation defaults and the travel table location
type PlaylistConfig struct {
	DefaultDuration  int
	MaxDuration      int
	TravelConfigPath string
	TTL              time.Duration
}

type ShareConfig struct {
	Secret     string
	Expiration time.Duration
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

// Load reads the configuration from the environment and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    loadServerConfig(),
		Dataset:   loadDatasetConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		Frontend:  loadFrontendConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
		Playlist:  loadPlaylistConfig(),
		Share:     loadShareConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	readTimeout := utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)
	writeTimeout := utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)
	idleTimeout := utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)

	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		URL:          utils.GetEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadDatasetConfig() DatasetConfig {
	return DatasetConfig{
		Source: utils.GetEnv("DATASET_SOURCE", DatasetSourceFile),
		Path:   utils.GetEnv("DATASET_PATH", "missions.json"),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	maxOpenConns := utils.GetEnvInt("DB_MAX_OPEN_CONNS", 25)
	maxIdleConns := utils.GetEnvInt("DB_MAX_IDLE_CONNS", 5)
	connMaxLifetime := utils.GetEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	return DatabaseConfig{
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "playlists"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
		MigrationsPath:  utils.GetEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadRedisConfig() RedisConfig {
	enabled := utils.GetEnv("REDIS_ENABLED", "false") == "true"

	return RedisConfig{
		Enabled:  enabled,
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       utils.GetEnvInt("REDIS_DB", 0),
	}
}

func loadFrontendConfig() FrontendConfig {
	corsDebug := utils.GetEnv("CORS_DEBUG", "") == "true"

	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: corsDebug,
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	jsonFormat := environment == "production" || utils.GetEnv("LOG_FORMAT", "text") == "json"

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		Format:     utils.GetEnv("LOG_FORMAT", "text"),
		JSONFormat: jsonFormat,
	}
}

func loadRateLimitConfig() RateLimitConfig {
	enabled := utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true"
	requestsPerSecond, err := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "5"), 64)
	if err != nil {
		requestsPerSecond = 5
	}

	return RateLimitConfig{
		Enabled:           enabled,
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 10),
		TrustProxy:        utils.GetEnv("RATE_LIMIT_TRUST_PROXY", "false") == "true",
	}
}

func loadPlaylistConfig() PlaylistConfig {
	ttl := utils.GetEnvInt("PLAYLIST_TTL_MINUTES", 24*60)

	return PlaylistConfig{
		DefaultDuration:  utils.GetEnvInt("PLAYLIST_DEFAULT_DURATION", 60),
		MaxDuration:      utils.GetEnvInt("PLAYLIST_MAX_DURATION", 24*60),
		TravelConfigPath: utils.GetEnv("TRAVEL_CONFIG_PATH", ""),
		TTL:              time.Duration(ttl) * time.Minute,
	}
}

func loadShareConfig() ShareConfig {
	expiration := utils.GetEnvInt("SHARE_EXPIRATION_HOURS", 24*30)

	return ShareConfig{
		Secret:     utils.GetEnv("SHARE_SECRET", ""),
		Expiration: time.Duration(expiration) * time.Hour,
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Dataset.Source {
	case DatasetSourceFile:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required for the file dataset source")
		}
	case DatasetSourcePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	default:
		return fmt.Errorf("DATASET_SOURCE must be %q or %q, got %q", DatasetSourceFile, DatasetSourcePostgres, c.Dataset.Source)
	}

	if c.Playlist.DefaultDuration <= 0 {
		return fmt.Errorf("PLAYLIST_DEFAULT_DURATION must be positive")
	}

	if c.Playlist.MaxDuration < c.Playlist.DefaultDuration {
		return fmt.Errorf("PLAYLIST_MAX_DURATION must be at least PLAYLIST_DEFAULT_DURATION")
	}

	if c.Share.Secret != "" && len(c.Share.Secret) < 32 {
		return fmt.Errorf("SHARE_SECRET must be at least 32 characters long")
	}

	return nil
}

// SharingEnabled reports whether signed share links can be issued
func (c *Config) SharingEnabled() bool {
	return c.Share.Secret != ""
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
