package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	Port          string
	AppEnv        string
	AppAuthKey    string
	AppEncKey     string
	SessionTTL    time.Duration
	MaxSessions   int
	CatalogPath   string
	CheckoutDelay time.Duration
	ContactDelay  time.Duration
	EmailHost     string
	EmailPort     string
	EmailUsername string
	EmailPassword string
	EmailFrom     string
	EmailTo       string
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		Port:          envOrDefault("APP_PORT", ":8080"),
		AppEnv:        envOrDefault("APP_ENV", "development"),
		AppAuthKey:    os.Getenv("APP_AUTH_KEY"),
		AppEncKey:     os.Getenv("APP_ENC_KEY"),
		SessionTTL:    envHours("SESSION_TTL_HOURS", 7*24*time.Hour),
		MaxSessions:   envInt("SESSION_MAX", 10000),
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		CheckoutDelay: envMillis("CHECKOUT_DELAY_MS", 1200*time.Millisecond),
		ContactDelay:  envMillis("CONTACT_DELAY_MS", 1200*time.Millisecond),
		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailPort:     envOrDefault("EMAIL_PORT", "587"),
		EmailUsername: os.Getenv("EMAIL_USERNAME"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:     os.Getenv("EMAIL_USERNAME"),
		EmailTo:       envOrDefault("EMAIL_TO", "hello@printcraft.com"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: ignoring invalid %s=%q", key, v)
	}
	return def
}

func envMillis(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		ms, err := strconv.Atoi(v)
		if err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
		log.Printf("Warning: ignoring invalid %s=%q", key, v)
	}
	return def
}

func envHours(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		h, err := strconv.Atoi(v)
		if err == nil && h > 0 {
			return time.Duration(h) * time.Hour
		}
		log.Printf("Warning: ignoring invalid %s=%q", key, v)
	}
	return def
}
