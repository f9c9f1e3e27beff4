// Package config loads runtime configuration from an optional .env file,
// an optional YAML file and the process environment, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	devJWTSecret = "super-secret-key-please-change-me-in-production"
)

type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	AllowOrigins string `mapstructure:"allow_origins"`
	BodyLimitMB  int    `mapstructure:"body_limit_mb"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN renders the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr            string `mapstructure:"addr"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	EnrichmentQueue string `mapstructure:"enrichment_queue"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
}

type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	BcryptCost     int           `mapstructure:"bcrypt_cost"`
	PasswordPepper string        `mapstructure:"password_pepper"`
}

type ScoringConfig struct {
	VocabularyFile      string                    `mapstructure:"vocabulary_file"`
	DuplicateThreshold  float64                   `mapstructure:"duplicate_threshold"`
	RecommendationLimit int                       `mapstructure:"recommendation_limit"`
	Weights             scoring.ScoreWeights      `mapstructure:"weights"`
	Similarity          scoring.SimilarityWeights `mapstructure:"similarity"`
}

type WorkerConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envBindings keeps the variable names the deployment already uses
var envBindings = map[string]string{
	"env":                          "APP_ENV",
	"server.port":                  "PORT",
	"server.allow_origins":         "CORS_ALLOW_ORIGINS",
	"server.body_limit_mb":         "BODY_LIMIT_MB",
	"database.host":                "DB_HOST",
	"database.port":                "DB_PORT",
	"database.user":                "DB_USER",
	"database.password":            "DB_PASS",
	"database.name":                "DB_NAME",
	"database.sslmode":             "DB_SSLMODE",
	"redis.addr":                   "REDIS_ADDR",
	"redis.password":               "REDIS_PASS",
	"redis.db":                     "REDIS_DB",
	"redis.enrichment_queue":       "ENRICHMENT_QUEUE",
	"aws.region":                   "AWS_REGION",
	"aws.bucket":                   "AWS_BUCKET",
	"aws.prefix":                   "AWS_PREFIX",
	"auth.jwt_secret":              "JWT_SECRET",
	"auth.issuer":                  "JWT_ISSUER",
	"auth.access_token_ttl":        "JWT_ACCESS_TTL",
	"auth.bcrypt_cost":             "BCRYPT_COST",
	"auth.password_pepper":         "PASSWORD_PEPPER",
	"scoring.vocabulary_file":      "SCORING_VOCABULARY_FILE",
	"scoring.duplicate_threshold":  "SCORING_DUPLICATE_THRESHOLD",
	"scoring.recommendation_limit": "SCORING_RECOMMENDATION_LIMIT",
	"worker.concurrency":           "WORKER_CONCURRENCY",
	"worker.max_attempts":          "WORKER_MAX_ATTEMPTS",
	"worker.poll_timeout":          "WORKER_POLL_TIMEOUT",
	"openai.api_key":               "OPENAI_API_KEY",
	"openai.model":                 "OPENAI_MODEL",
	"log.level":                    "LOG_LEVEL",
	"log.format":                   "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allow_origins", "*")
	v.SetDefault("server.body_limit_mb", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "hiresight")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.enrichment_queue", "hiresight:enrichment")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.bucket", "")
	v.SetDefault("aws.prefix", "resumes")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "hiresight")
	v.SetDefault("auth.access_token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("auth.password_pepper", "")
	v.SetDefault("scoring.vocabulary_file", "")
	v.SetDefault("scoring.duplicate_threshold", scoring.DefaultDuplicateThreshold)
	v.SetDefault("scoring.recommendation_limit", scoring.DefaultRecommendationLimit)
	v.SetDefault("scoring.weights.skills", scoring.DefaultScoreWeights.Skills)
	v.SetDefault("scoring.weights.experience", scoring.DefaultScoreWeights.Experience)
	v.SetDefault("scoring.weights.location", scoring.DefaultScoreWeights.Location)
	v.SetDefault("scoring.weights.salary", scoring.DefaultScoreWeights.Salary)
	v.SetDefault("scoring.similarity.email", scoring.DefaultSimilarityWeights.Email)
	v.SetDefault("scoring.similarity.name", scoring.DefaultSimilarityWeights.Name)
	v.SetDefault("scoring.similarity.linkedin", scoring.DefaultSimilarityWeights.LinkedIn)
	v.SetDefault("scoring.similarity.phone", scoring.DefaultSimilarityWeights.Phone)
	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.max_attempts", 3)
	v.SetDefault("worker.poll_timeout", 5*time.Second)
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads configuration. path may be empty, in which case only .env and
// the environment are consulted.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the process runs with production settings
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// UsesDevSecret reports whether the JWT secret fell back to the built-in one
func (c *Config) UsesDevSecret() bool {
	return c.Auth.JWTSecret == devJWTSecret
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	if c.Auth.JWTSecret == "" && !c.IsProduction() {
		c.Auth.JWTSecret = devJWTSecret
	}
	if c.Auth.AccessTokenTTL <= 0 {
		c.Auth.AccessTokenTTL = 24 * time.Hour
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 12
	}
	if c.Scoring.DuplicateThreshold <= 0 || c.Scoring.DuplicateThreshold > 1 {
		c.Scoring.DuplicateThreshold = scoring.DefaultDuplicateThreshold
	}
	if c.Scoring.RecommendationLimit <= 0 {
		c.Scoring.RecommendationLimit = scoring.DefaultRecommendationLimit
	}
	if c.Worker.Concurrency < 1 {
		c.Worker.Concurrency = 1
	}
	if c.Worker.MaxAttempts < 1 {
		c.Worker.MaxAttempts = 1
	}
	if c.Worker.PollTimeout <= 0 {
		c.Worker.PollTimeout = 5 * time.Second
	}
	if c.Server.BodyLimitMB < 1 {
		c.Server.BodyLimitMB = 10
	}
}

// Validate rejects settings that cannot be defaulted
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 4-14)", c.Auth.BcryptCost)
	}
	w := c.Scoring.Weights
	if w.Skills < 0 || w.Experience < 0 || w.Location < 0 || w.Salary < 0 {
		return fmt.Errorf("scoring weights must not be negative")
	}
	if sum := w.Skills + w.Experience + w.Location + w.Salary; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("scoring weights must add up to 1, got %.3f", sum)
	}
	return nil
}
