package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Gateway  GatewayConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	PublicBaseURL  string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
}

type SessionConfig struct {
	ExpiryHours int
}

// GatewayConfig holds the payment gateway credentials. KeySecret is shared
// only with the gateway and signs payment callbacks.
type GatewayConfig struct {
	KeyID     string
	KeySecret string
	Currency  string
	Timeout   time.Duration
}

type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	SeatHoldMinutes int
}

type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	BookingsTopic string
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "travel-booking")
	v.SetDefault("PORT", "8000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("HTTP_READ_TIMEOUT_SECONDS", 15)
	v.SetDefault("HTTP_WRITE_TIMEOUT_SECONDS", 30)
	v.SetDefault("HTTP_IDLE_TIMEOUT_SECONDS", 60)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("GATEWAY_CURRENCY", "INR")
	v.SetDefault("GATEWAY_TIMEOUT_SECONDS", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SEAT_HOLD_MINUTES", 15)
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC_BOOKINGS", "booking-events")

	// .env is optional, the process environment always wins
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			PublicBaseURL:  strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ReadTimeout:    time.Duration(v.GetInt("HTTP_READ_TIMEOUT_SECONDS")) * time.Second,
			WriteTimeout:   time.Duration(v.GetInt("HTTP_WRITE_TIMEOUT_SECONDS")) * time.Second,
			IdleTimeout:    time.Duration(v.GetInt("HTTP_IDLE_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			Name:        v.GetString("DB_NAME"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Gateway: GatewayConfig{
			KeyID:     v.GetString("GATEWAY_KEY_ID"),
			KeySecret: v.GetString("GATEWAY_KEY_SECRET"),
			Currency:  v.GetString("GATEWAY_CURRENCY"),
			Timeout:   time.Duration(v.GetInt("GATEWAY_TIMEOUT_SECONDS")) * time.Second,
		},
		Redis: RedisConfig{
			Addr:            v.GetString("REDIS_ADDR"),
			Password:        v.GetString("REDIS_PASSWORD"),
			DB:              v.GetInt("REDIS_DB"),
			SeatHoldMinutes: v.GetInt("SEAT_HOLD_MINUTES"),
		},
		Kafka: KafkaConfig{
			Enabled:       v.GetBool("KAFKA_ENABLED"),
			Brokers:       splitList(v.GetString("KAFKA_BROKERS")),
			BookingsTopic: v.GetString("KAFKA_TOPIC_BOOKINGS"),
		},
	}

	if config.Gateway.KeyID == "" || config.Gateway.KeySecret == "" {
		return nil, errors.New("GATEWAY_KEY_ID and GATEWAY_KEY_SECRET must be set")
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
