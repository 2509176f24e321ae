package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Catalog source kinds.
const (
	SourceCSV      = "csv"
	SourceS3       = "s3"
	SourceDatabase = "database"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
	TMDB      TMDBConfig      `mapstructure:"tmdb"`
	Recommend RecommendConfig `mapstructure:"recommend"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// CatalogConfig selects where the movie catalog is read from at startup.
type CatalogConfig struct {
	Source string `mapstructure:"source"` // csv, s3, database
	Path   string `mapstructure:"path"`   // local CSV path
	Key    string `mapstructure:"key"`    // object key when source is s3
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite, postgres
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the driver-specific data source name.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return c.Path
}

// StorageConfig describes an S3-compatible bucket (AWS S3, Cloudflare R2, MinIO).
type StorageConfig struct {
	Type      string `mapstructure:"type"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
}

// TMDBConfig configures poster lookups against The Movie Database.
type TMDBConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	ImageBaseURL      string        `mapstructure:"image_base_url"`
	PosterSize        string        `mapstructure:"poster_size"`
	Placeholder       string        `mapstructure:"placeholder"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Concurrency       int           `mapstructure:"concurrency"`
	BreakerFailures   uint32        `mapstructure:"breaker_failures"`
	BreakerCooldown   time.Duration `mapstructure:"breaker_cooldown"`
}

type RecommendConfig struct {
	DefaultTopN    int  `mapstructure:"default_top_n"`
	MaxTopN        int  `mapstructure:"max_top_n"`
	Workers        int  `mapstructure:"workers"`
	ResolvePosters bool `mapstructure:"resolve_posters"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Explicit bindings for secrets and the variable names the dataset tooling already uses
	v.BindEnv("tmdb.api_key", "TMDB_API_KEY", "API_KEY")
	v.BindEnv("catalog.source", "CATALOG_SOURCE")
	v.BindEnv("catalog.path", "CATALOG_PATH")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("storage.endpoint", "S3_ENDPOINT")
	v.BindEnv("storage.access_key", "S3_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "S3_SECRET_KEY")
	v.BindEnv("storage.bucket", "S3_BUCKET")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("catalog.source", SourceCSV)
	v.SetDefault("catalog.path", "./data/tmdb_5000_movies.csv")
	v.SetDefault("catalog.key", "catalog/tmdb_5000_movies.csv")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/movies.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.bucket", "movierec")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p")
	v.SetDefault("tmdb.poster_size", "w500")
	v.SetDefault("tmdb.placeholder", "https://via.placeholder.com/300x450.png?text=No+Poster")
	v.SetDefault("tmdb.timeout", 5*time.Second)
	v.SetDefault("tmdb.requests_per_second", 20.0)
	v.SetDefault("tmdb.burst", 5)
	v.SetDefault("tmdb.concurrency", 5)
	v.SetDefault("tmdb.breaker_failures", 5)
	v.SetDefault("tmdb.breaker_cooldown", 30*time.Second)
	v.SetDefault("recommend.default_top_n", 5)
	v.SetDefault("recommend.max_top_n", 50)
	v.SetDefault("recommend.workers", 4)
	v.SetDefault("recommend.resolve_posters", true)
}

// Validate checks the fields whose bad values would only surface later at startup.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceCSV:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog: path is required for source %q", SourceCSV)
		}
	case SourceS3:
		if c.Catalog.Key == "" {
			return fmt.Errorf("catalog: key is required for source %q", SourceS3)
		}
	case SourceDatabase:
	default:
		return fmt.Errorf("catalog: unknown source %q", c.Catalog.Source)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database: unknown driver %q", c.Database.Driver)
	}

	if c.Recommend.DefaultTopN <= 0 {
		return fmt.Errorf("recommend: default_top_n must be positive")
	}
	if c.Recommend.MaxTopN < c.Recommend.DefaultTopN {
		return fmt.Errorf("recommend: max_top_n (%d) must be >= default_top_n (%d)",
			c.Recommend.MaxTopN, c.Recommend.DefaultTopN)
	}
	return nil
}
