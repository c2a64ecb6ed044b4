package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger    `mapstructure:"logger"`
	DB        Database  `mapstructure:"database"`
	API       API       `mapstructure:"api"`
	Gemini    Gemini    `mapstructure:"gemini"`
	Cache     Cache     `mapstructure:"cache"`
	Scheduler Scheduler `mapstructure:"scheduler"`
	Upload    Upload    `mapstructure:"upload"`
	Alert     Alert     `mapstructure:"alert"`
	Chat      Chat      `mapstructure:"chat"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Gemini struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	BaseModel           string        `mapstructure:"base_model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	ContextTTL        time.Duration `mapstructure:"context_ttl"`
}

type Scheduler struct {
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	Interval        time.Duration `mapstructure:"interval"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type Upload struct {
	Dir string `mapstructure:"dir"`
}

type Alert struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

type Chat struct {
	HistoryLimit   int `mapstructure:"history_limit"`
	PromptTxnLimit int `mapstructure:"prompt_txn_limit"`
}

func Load() (*Config, error) {
	// .env is optional, deployments normally rely on real environment variables.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta/models")
	viper.SetDefault("gemini.base_model", "gemini-2.0-flash")
	viper.SetDefault("gemini.timeout", 30*time.Second)
	viper.SetDefault("gemini.max_request_per_minute", 15)
	viper.SetDefault("gemini.max_token_per_minute", 1000000)
	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("cache.context_ttl", 30*time.Second)
	viper.SetDefault("scheduler.max_concurrency", 2)
	viper.SetDefault("scheduler.interval", time.Minute)
	viper.SetDefault("scheduler.timeout_duration", 5*time.Minute)
	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("chat.history_limit", 8)
	viper.SetDefault("chat.prompt_txn_limit", 10)
}
