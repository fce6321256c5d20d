package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DataConfig names the directory and files the loader reads at startup.
type DataConfig struct {
	Dir                 string `mapstructure:"dir"`
	Orders              string `mapstructure:"orders"`
	OrderItems          string `mapstructure:"order_items"`
	Products            string `mapstructure:"products"`
	CategoryTranslation string `mapstructure:"category_translation"`
	Customers           string `mapstructure:"customers"`
	Geolocation         string `mapstructure:"geolocation"`
	Reviews             string `mapstructure:"reviews"`
	Payments            string `mapstructure:"payments"`
}

type DashboardConfig struct {
	TopN     int    `mapstructure:"top_n"`
	Currency string `mapstructure:"currency"`
}

// LoadConfig loads configuration from config.yaml and environment
// variables. A missing config file is fine; the defaults serve a data
// directory at ./data on :8080.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.salesdash/")
	v.AddConfigPath("/etc/salesdash/")

	// Enable environment variable override with SALESDASH_ prefix
	v.SetEnvPrefix("SALESDASH")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.orders", "orders.csv")
	v.SetDefault("data.order_items", "order_items.csv")
	v.SetDefault("data.products", "products.csv")
	v.SetDefault("data.category_translation", "category_translation.csv")
	v.SetDefault("data.customers", "customers.csv")
	v.SetDefault("data.geolocation", "geolocation.csv")
	v.SetDefault("data.reviews", "reviews.csv")
	v.SetDefault("data.payments", "payments.csv")
	v.SetDefault("dashboard.top_n", 10)
	v.SetDefault("dashboard.currency", "$")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
