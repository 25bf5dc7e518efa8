package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port         string
		PublicOrigin string
	}
	DB struct {
		Host         string
		Port         string
		User         string
		Password     string
		DBName       string
		SSLMode      string
		MaxOpenConns int
		MaxIdleConns int
		ConnLifetime time.Duration
	}
	Store struct {
		Backend string // "memory" or "postgres"
	}
	Payment struct {
		Provider string // "simulator" or "stripe"
	}
	Stripe struct {
		SecretKey  string
		PublicKey  string
		WebhookKey string
		PriceIDs   map[string]string
	}
	Advice struct {
		Generator string // "huggingface" or "openai"
	}
	HuggingFace struct {
		APIKey string
	}
	OpenAI struct {
		APIKey string
		Model  string
	}
	ShutdownTimeout time.Duration
}

// Load loads the configuration
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("$HOME/.better-life")

	v.SetDefault("ShutdownTimeout", 10*time.Second)
	v.SetDefault("Server.Port", "8080")
	v.SetDefault("Server.PublicOrigin", "http://localhost:8080")
	v.SetDefault("Store.Backend", "memory")
	v.SetDefault("Payment.Provider", "simulator")
	v.SetDefault("Advice.Generator", "huggingface")
	v.SetDefault("OpenAI.Model", "gpt-4")
	v.SetDefault("DB.MaxOpenConns", 20)
	v.SetDefault("DB.MaxIdleConns", 10)
	v.SetDefault("DB.ConnLifetime", 5*time.Minute)

	v.AutomaticEnv()

	// Fall back to plain environment variables when no config file exists.
	if err := v.ReadInConfig(); err != nil {
		cfg := &Config{}

		cfg.Server.Port = getEnvOr("SERVER_PORT", "8080")
		cfg.Server.PublicOrigin = getEnvOr("PUBLIC_ORIGIN", "http://localhost:8080")
		cfg.DB.Host = getEnvOr("DB_HOST", "localhost")
		cfg.DB.Port = getEnvOr("DB_PORT", "5432")
		cfg.DB.User = getEnvOr("DB_USER", "postgres")
		cfg.DB.Password = getEnvOr("DB_PASSWORD", "postgres")
		cfg.DB.DBName = getEnvOr("DB_NAME", "better_life")
		cfg.DB.SSLMode = getEnvOr("DB_SSL_MODE", "disable")
		cfg.DB.MaxOpenConns = 20
		cfg.DB.MaxIdleConns = 10
		cfg.DB.ConnLifetime = 5 * time.Minute
		cfg.Store.Backend = getEnvOr("STORE_BACKEND", "memory")
		cfg.Payment.Provider = getEnvOr("PAYMENT_PROVIDER", "simulator")
		cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
		cfg.Stripe.PublicKey = os.Getenv("STRIPE_PUBLIC_KEY")
		cfg.Stripe.WebhookKey = os.Getenv("STRIPE_WEBHOOK_KEY")
		cfg.Stripe.PriceIDs = priceIDsFromEnv()
		cfg.Advice.Generator = getEnvOr("ADVICE_GENERATOR", "huggingface")
		cfg.HuggingFace.APIKey = os.Getenv("HUGGINGFACE_API_KEY")
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
		cfg.OpenAI.Model = getEnvOr("OPENAI_MODEL", "gpt-4")
		cfg.ShutdownTimeout = 10 * time.Second

		return cfg, nil
	}

	// Process any ${ENV_VAR} syntax in the config values
	for _, key := range v.AllKeys() {
		value := v.GetString(key)
		if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
			envVar := strings.TrimPrefix(strings.TrimSuffix(value, "}"), "${")
			if envValue := os.Getenv(envVar); envValue != "" {
				v.Set(key, envValue)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// priceIDsFromEnv reads the per-plan Stripe price ids, e.g.
// STRIPE_PRICE_ID_BASIC for plan "basic".
func priceIDsFromEnv() map[string]string {
	out := make(map[string]string)
	for _, plan := range []string{"basic", "premium", "pro"} {
		if id := os.Getenv("STRIPE_PRICE_ID_" + strings.ToUpper(plan)); id != "" {
			out[plan] = id
		}
	}
	return out
}

func getEnvOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
