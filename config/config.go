package config

import (
	"log"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string `default:":3000"`
	DatabaseDSN    string `default:"sqlite:investment.db"`
	AccessSecret   string
	AccessTTL      time.Duration `default:"15m"`
	RefreshTTL     time.Duration `default:"24h"`
	AllowedOrigins string        `default:"*"`

	KafkaBroker   string
	KafkaTopic    string `default:"investment.audit"`
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	AdminUsername string
	AdminPassword string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	cfg := Config{
		ServerPort:     os.Getenv("SERVER_PORT"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		AccessSecret:   os.Getenv("ACCESS_SECRET"),
		AccessTTL:      durationEnv("ACCESS_TTL"),
		RefreshTTL:     durationEnv("REFRESH_TTL"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		KafkaTopic:     os.Getenv("KAFKA_TOPIC"),
		KafkaGroupID:   os.Getenv("KAFKA_GROUP_ID"),
		KafkaUsername:  os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:  os.Getenv("KAFKA_PASSWORD"),
		AdminUsername:  os.Getenv("ADMIN_USERNAME"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}

	// fills only the fields the environment left empty
	if err := defaults.Set(&cfg); err != nil {
		log.Println("Warning: config defaults not applied:", err)
	}
	return cfg
}

func durationEnv(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a duration, using default", key, v)
		return 0
	}
	return d
}
