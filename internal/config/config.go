package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	AI        AIConfig
	Tracing   TracingConfig     `mapstructure:"tracing"`
	CORS      CORSConfig        `mapstructure:"cors"`
	RateLimit RateLimitConfig   `mapstructure:"rate_limit"`
	Baby      BabyMonitorConfig `mapstructure:"baby_monitor"`
	Log       LogConfig         `mapstructure:"log"`

	// 运行时字段（非配置文件）：实际读取到的配置文件路径
	ConfigPath string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Driver    string `mapstructure:"driver"` // mysql | sqlite
	DSN       string `mapstructure:"dsn"`    // sqlite 文件路径
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type RedisConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Host     string
	Port     int
	Password string
	DB       int

	// 技能路径进度缓存过期时间（分钟）
	ProgressTTLMinutes int `mapstructure:"progress_ttl_minutes"`
}

type AIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout bounds a single completion call.
func (c AIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 8 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

type TracingConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"`
	SampleRatio       float64 `mapstructure:"sample_ratio"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"` // 为空时按 server.mode 决定
	File       string `mapstructure:"file"`  // 为空时只输出到控制台
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type BabyMonitorConfig struct {
	StreamIntervalSeconds int `mapstructure:"stream_interval_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SKILLBLOOM")
	v.AutomaticEnv()

	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "skillbloom.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("redis.progress_ttl_minutes", 10)
	v.SetDefault("ai.model", "gemini-2.0-flash-exp")
	v.SetDefault("ai.timeout_seconds", 8)
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("baby_monitor.stream_interval_seconds", 5)
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("log.file", "logs/skillbloom.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_DSN")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET", "SESSION_SECRET")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "SERVER_PORT")

	// AI
	v.BindEnv("ai.base_url", "AI_BASE_URL")
	v.BindEnv("ai.api_key", "AI_API_KEY")
	v.BindEnv("ai.model", "AI_MODEL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.JWT.Secret == "" {
		if cfg.Server.Mode == "release" {
			return nil, fmt.Errorf("JWT secret is required in release mode")
		}
		cfg.JWT.Secret = "skillbloom-secret-key-2025"
	}

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	return &cfg, nil
}
