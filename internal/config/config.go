package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBSource           string `mapstructure:"DB_SOURCE"`
	ServerAddress      string `mapstructure:"SERVER_ADDRESS"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	GinMode            string `mapstructure:"GIN_MODE"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	LogFormat          string `mapstructure:"LOG_FORMAT"`
	MaxBatchSize       int    `mapstructure:"MAX_BATCH_SIZE"`
	RouteMaxPoints     int    `mapstructure:"ROUTE_MAX_POINTS"`
	RouteKeepLastPoint bool   `mapstructure:"ROUTE_KEEP_LAST_POINT"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("MAX_BATCH_SIZE", 1000)
	v.SetDefault("ROUTE_MAX_POINTS", 100)
	v.SetDefault("ROUTE_KEEP_LAST_POINT", false)
}

// LoadConfig reads app.env from path and overlays environment variables.
// A missing config file is not an error as long as the environment supplies DB_SOURCE.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	// AutomaticEnv only applies to keys viper already knows about.
	for _, key := range []string{"DB_SOURCE", "JWT_SECRET"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks values that have no usable default.
func (c Config) Validate() error {
	if c.DBSource == "" {
		return errors.New("config: DB_SOURCE is required")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.MaxBatchSize < 1 {
		return fmt.Errorf("config: MAX_BATCH_SIZE must be positive, got %d", c.MaxBatchSize)
	}
	if c.RouteMaxPoints < 1 {
		return fmt.Errorf("config: ROUTE_MAX_POINTS must be positive, got %d", c.RouteMaxPoints)
	}
	return nil
}
