package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures everything the server needs from the environment so main
// stays lean. Optional backends (postgres, redis, kafka) are enabled by
// setting their URLs.
type Config struct {
	Addr         string
	PostgresURL  string
	Redis        RedisConfig
	KafkaBrokers []string
	KafkaTopic   string
	SeedContacts bool
}

// RedisConfig holds connection settings for the pattern cache.
type RedisConfig struct {
	URL          string
	PatternTTL   time.Duration
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables. A .env file in the
// working directory is loaded first when present.
func FromEnv() Config {
	_ = godotenv.Load()

	addr := os.Getenv("CARDS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	var brokers []string
	if raw := os.Getenv("CARDS_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	topic := os.Getenv("CARDS_KAFKA_TOPIC")
	if topic == "" {
		topic = "cards.audit"
	}

	return Config{
		Addr:        addr,
		PostgresURL: os.Getenv("CARDS_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("CARDS_REDIS_URL"),
			PatternTTL:   durationEnv("CARDS_PATTERN_CACHE_TTL", time.Hour),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		KafkaBrokers: brokers,
		KafkaTopic:   topic,
		SeedContacts: os.Getenv("CARDS_SEED_CONTACTS") == "true",
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
