package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all process-wide settings. It is loaded once in main and
// passed to the components that need it; nothing reads the environment
// after startup.
type Config struct {
	Port    string
	GinMode string
	Env     string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	JWTExpiry time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string

	ClientURL  string
	TMDBAPIKey string
}

func Load() Config {
	return Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: os.Getenv("GIN_MODE"),
		Env:     getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRES_HOURS", 168)) * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("EMAIL_USER"),
		SMTPPassword: os.Getenv("EMAIL_PASS"),
		MailFrom:     getEnv("MAIL_FROM", os.Getenv("EMAIL_USER")),
		MailFromName: getEnv("MAIL_FROM_NAME", "Reelworthy"),

		ClientURL:  getEnv("CLIENT_URL", "http://localhost:3000"),
		TMDBAPIKey: os.Getenv("TMDB_API_KEY"),
	}
}

// Production reports whether the server runs in production mode.
func (c Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
