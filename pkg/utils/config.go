package utils

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Factory  FactoryConfig
	Session  SessionConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type JWTConfig struct {
	Secret string
}

type FactoryConfig struct {
	URL     string
	Timeout time.Duration
}

type SessionConfig struct {
	Retention   time.Duration
	CleanupSpec string
}

// AdminConfig describes the global admin created at boot when missing.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "pizza-service")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("FACTORY_URL", "https://pizza-factory.cs329.click")
	viper.SetDefault("FACTORY_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SESSION_RETENTION_HOURS", 24)
	viper.SetDefault("SESSION_CLEANUP_SPEC", "0 0 * * * *")
	viper.SetDefault("ADMIN_NAME", "pizza admin")

	// .env is optional, the environment always wins
	if _, err := os.Stat(".env"); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			CORSOrigins: splitList(viper.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
			Migrate:  viper.GetBool("DB_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Factory: FactoryConfig{
			URL:     strings.TrimRight(viper.GetString("FACTORY_URL"), "/"),
			Timeout: time.Duration(viper.GetInt("FACTORY_TIMEOUT_SECONDS")) * time.Second,
		},
		Session: SessionConfig{
			Retention:   time.Duration(viper.GetInt("SESSION_RETENTION_HOURS")) * time.Hour,
			CleanupSpec: viper.GetString("SESSION_CLEANUP_SPEC"),
		},
		Admin: AdminConfig{
			Name:     viper.GetString("ADMIN_NAME"),
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
