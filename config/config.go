package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB          int    `mapstructure:"REDIS_AUTH_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Stripe configuration. Bookings and orders are reconciled over separate
	// webhook channels, each with its own signing secret.
	StripeKey                  string `mapstructure:"STRIPE_KEY"`
	StripeBookingWebhookSecret string `mapstructure:"STRIPE_BOOKING_WEBHOOK_SECRET"`
	StripeOrderWebhookSecret   string `mapstructure:"STRIPE_ORDER_WEBHOOK_SECRET"`

	// Pricing configuration for online self-service checkout.
	TaxPercentage           float64 `mapstructure:"TAX_PERCENTAGE"`
	PartialAmountPercentage float64 `mapstructure:"PARTIAL_AMOUNT_PERCENTAGE"`
	Currency                string  `mapstructure:"CURRENCY"`
	FrontendURL             string  `mapstructure:"FRONTEND_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "locart")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_BOOKING_WEBHOOK_SECRET", "")
	viper.SetDefault("STRIPE_ORDER_WEBHOOK_SECRET", "")
	viper.SetDefault("TAX_PERCENTAGE", 0)
	viper.SetDefault("PARTIAL_AMOUNT_PERCENTAGE", 0)
	viper.SetDefault("CURRENCY", "usd")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
