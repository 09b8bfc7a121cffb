package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string // postgres URL, or sqlite:<path> for local runs
	RedisURL            string // optional; enables request statistics
	LogLevel            string
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
	// Floor counts used when a floor-generation request omits them.
	DefaultBasementFloors    int
	DefaultAboveGroundFloors int
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_URL", "sqlite:leaseos.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEFAULT_BASEMENT_FLOORS", 5)
	v.SetDefault("DEFAULT_ABOVE_GROUND_FLOORS", 20)

	return &Config{
		Env:                      v.GetString("APP_ENV"),
		Port:                     v.GetString("PORT"),
		DatabaseURL:              v.GetString("DATABASE_URL"),
		RedisURL:                 v.GetString("REDIS_URL"),
		LogLevel:                 v.GetString("LOG_LEVEL"),
		FrontendURLEndsWith:      v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:              v.GetString("DEV_PASSWORD"),
		HealthAdminKey:           v.GetString("HEALTH_ADMIN_KEY"),
		DefaultBasementFloors:    v.GetInt("DEFAULT_BASEMENT_FLOORS"),
		DefaultAboveGroundFloors: v.GetInt("DEFAULT_ABOVE_GROUND_FLOORS"),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
