package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type OCRConfig struct {
	ServiceURL    string
	InternalToken string
	Timeout       time.Duration
}

type RecognizerConfig struct {
	ConfidenceThreshold    float64
	LowConfidenceThreshold float64
	IncludeLowConfidence   bool
	CustomPattern          string
	MergeWindow            int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	OCR         OCRConfig
	Recognizer  RecognizerConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	v.SetDefault("PLATE_CONFIDENCE_THRESHOLD", 60.0)
	v.SetDefault("PLATE_LOW_CONFIDENCE_THRESHOLD", 30.0)
	v.SetDefault("PLATE_MERGE_WINDOW", 1)
	v.SetDefault("OCR_TIMEOUT", "30s")

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		OCR: OCRConfig{
			ServiceURL:    v.GetString("OCR_SERVICE_URL"),
			InternalToken: v.GetString("OCR_INTERNAL_TOKEN"),
			Timeout:       v.GetDuration("OCR_TIMEOUT"),
		},
		Recognizer: RecognizerConfig{
			ConfidenceThreshold:    v.GetFloat64("PLATE_CONFIDENCE_THRESHOLD"),
			LowConfidenceThreshold: v.GetFloat64("PLATE_LOW_CONFIDENCE_THRESHOLD"),
			IncludeLowConfidence:   v.GetBool("PLATE_INCLUDE_LOW_CONFIDENCE"),
			CustomPattern:          v.GetString("PLATE_CUSTOM_PATTERN"),
			MergeWindow:            v.GetInt("PLATE_MERGE_WINDOW"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Recognizer.ConfidenceThreshold < 0 || cfg.Recognizer.ConfidenceThreshold > 100 {
		return fmt.Errorf("PLATE_CONFIDENCE_THRESHOLD must be within [0,100]")
	}
	if cfg.Recognizer.LowConfidenceThreshold < 0 || cfg.Recognizer.LowConfidenceThreshold > 100 {
		return fmt.Errorf("PLATE_LOW_CONFIDENCE_THRESHOLD must be within [0,100]")
	}
	if cfg.Recognizer.LowConfidenceThreshold > cfg.Recognizer.ConfidenceThreshold {
		return fmt.Errorf("PLATE_LOW_CONFIDENCE_THRESHOLD must not exceed PLATE_CONFIDENCE_THRESHOLD")
	}
	return nil
}
