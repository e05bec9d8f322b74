package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Auth    AuthConfig
	Holiday HolidayConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type StoreConfig struct {
	Path string
}

type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	JWTSecret     string
	TokenExpiry   int // in minutes
}

type HolidayConfig struct {
	BaseURL string
	Country string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Validate rejects configurations the server must not start with. The JWT
// secret has no default; an empty one would sign every token with an empty
// key.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	return nil
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("STORE_PATH", "catalog.db")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("JWT_TOKEN_EXPIRY", 30)
	viper.SetDefault("HOLIDAY_API_URL", "https://date.nager.at")
	viper.SetDefault("HOLIDAY_COUNTRY", "IN")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Store: StoreConfig{
			Path: viper.GetString("STORE_PATH"),
		},
		Auth: AuthConfig{
			AdminUsername: viper.GetString("ADMIN_USERNAME"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
			JWTSecret:     viper.GetString("JWT_SECRET"),
			TokenExpiry:   viper.GetInt("JWT_TOKEN_EXPIRY"),
		},
		Holiday: HolidayConfig{
			BaseURL: viper.GetString("HOLIDAY_API_URL"),
			Country: viper.GetString("HOLIDAY_COUNTRY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
	}
}
