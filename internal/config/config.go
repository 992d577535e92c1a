package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Reply modes.
const (
	ReplyModeRemote = "remote"
	ReplyModeCanned = "canned"
)

type Config struct {
	AppPort         int           `mapstructure:"APP_PORT" validate:"min=1,max=65535"`
	DatabasePath    string        `mapstructure:"DATABASE_PATH" validate:"required"`
	OllamaURL       string        `mapstructure:"OLLAMA_URL" validate:"omitempty,url"`
	OllamaModel     string        `mapstructure:"OLLAMA_MODEL"`
	SystemPrompt    string        `mapstructure:"SYSTEM_PROMPT"`
	ReplyMode       string        `mapstructure:"REPLY_MODE" validate:"oneof=remote canned"`
	ReplyEndpoint   string        `mapstructure:"REPLY_ENDPOINT" validate:"required_if=ReplyMode remote,omitempty,url"`
	ReplyTimeout    time.Duration `mapstructure:"REPLY_TIMEOUT" validate:"min=0"`
	DefaultGender   string        `mapstructure:"DEFAULT_GENDER" validate:"oneof=male female neutral"`
	DefaultUserName string        `mapstructure:"DEFAULT_USER_NAME"`
	SessionIdleTTL  time.Duration `mapstructure:"SESSION_IDLE_TTL" validate:"min=0"`
	SessionCleanup  time.Duration `mapstructure:"SESSION_CLEANUP_INTERVAL" validate:"min=0"`
	MaxSessions     int           `mapstructure:"MAX_SESSIONS" validate:"min=0"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/chat.db")
	viper.SetDefault("OLLAMA_URL", "http://ollama:11434")
	viper.SetDefault("OLLAMA_MODEL", "llama3")
	viper.SetDefault("SYSTEM_PROMPT", "")
	viper.SetDefault("REPLY_MODE", ReplyModeRemote)
	viper.SetDefault("REPLY_ENDPOINT", "http://localhost:8000/chat")
	viper.SetDefault("REPLY_TIMEOUT", "0s")
	viper.SetDefault("DEFAULT_GENDER", "neutral")
	viper.SetDefault("DEFAULT_USER_NAME", "Friend")
	viper.SetDefault("SESSION_IDLE_TTL", "30m")
	viper.SetDefault("SESSION_CLEANUP_INTERVAL", "1m")
	viper.SetDefault("MAX_SESSIONS", 10000)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values against the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
