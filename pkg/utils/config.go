package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Checkout CheckoutConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string // empty disables caching
	Password string
	DB       int
	// TTL for the stale-tolerant booked-seats view.
	BookedSeatsTTL time.Duration
}

type SessionConfig struct {
	ExpiryHours int
}

type CheckoutConfig struct {
	// Flat per-seat price used when neither the show nor the movie
	// carries a positive price.
	DefaultSeatPrice float64
	// Upper bound on waiting for the show row lock.
	LockTimeout time.Duration
	// Bounded retries for ticket number collisions.
	TicketAttempts int
}

type ChatConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BOOKED_SEATS_TTL_SECONDS", 5)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("DEFAULT_SEAT_PRICE", 50.0)
	viper.SetDefault("CHECKOUT_LOCK_TIMEOUT_MS", 3000)
	viper.SetDefault("TICKET_ATTEMPTS", 5)
	viper.SetDefault("CHAT_BASE_URL", "https://api.groq.com")
	viper.SetDefault("CHAT_MODEL", "gpt-4o-mini")
	viper.SetDefault("CHAT_MAX_TOKENS", 600)
	viper.SetDefault("CHAT_TIMEOUT_SECONDS", 15)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:           viper.GetString("REDIS_ADDR"),
			Password:       viper.GetString("REDIS_PASS"),
			DB:             viper.GetInt("REDIS_DB"),
			BookedSeatsTTL: time.Duration(viper.GetInt("BOOKED_SEATS_TTL_SECONDS")) * time.Second,
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Checkout: CheckoutConfig{
			DefaultSeatPrice: viper.GetFloat64("DEFAULT_SEAT_PRICE"),
			LockTimeout:      time.Duration(viper.GetInt("CHECKOUT_LOCK_TIMEOUT_MS")) * time.Millisecond,
			TicketAttempts:   viper.GetInt("TICKET_ATTEMPTS"),
		},
		Chat: ChatConfig{
			APIKey:    viper.GetString("CHAT_API_KEY"),
			BaseURL:   viper.GetString("CHAT_BASE_URL"),
			Model:     viper.GetString("CHAT_MODEL"),
			MaxTokens: viper.GetInt("CHAT_MAX_TOKENS"),
			Timeout:   time.Duration(viper.GetInt("CHAT_TIMEOUT_SECONDS")) * time.Second,
		},
	}

	return config, nil
}
