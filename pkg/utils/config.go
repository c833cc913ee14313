package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Booking  BookingConfig
	Staff    StaffConfig
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

// KafkaConfig drives the payment-confirmed event consumer. An empty broker
// list disables the consumer; the HTTP webhook stays available either way.
type KafkaConfig struct {
	Brokers []string
	GroupID string
	Topic   string
}

// BookingConfig carries the values the creation pipeline needs explicitly,
// instead of reading global mutable settings.
type BookingConfig struct {
	DefaultVenueID  string
	SlugMaxAttempts int
}

type StaffConfig struct {
	APIKey string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("KAFKA_GROUP_ID", "venue-booking")
	viper.SetDefault("KAFKA_TOPIC", "payment-confirmed")
	viper.SetDefault("SLUG_MAX_ATTEMPTS", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	var brokers []string
	if raw := viper.GetString("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

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
		Kafka: KafkaConfig{
			Brokers: brokers,
			GroupID: viper.GetString("KAFKA_GROUP_ID"),
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
		Booking: BookingConfig{
			DefaultVenueID:  viper.GetString("DEFAULT_VENUE_ID"),
			SlugMaxAttempts: viper.GetInt("SLUG_MAX_ATTEMPTS"),
		},
		Staff: StaffConfig{
			APIKey: viper.GetString("STAFF_API_KEY"),
		},
	}

	return config, nil
}
