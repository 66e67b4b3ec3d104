package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	SessionTTL time.Duration

	// News provider (newsapi.org compatible).
	NewsAPIURL   string
	NewsAPIKey   string
	NewsQuery    string
	NewsCategory string

	// Meal plan provider (spoonacular compatible).
	FoodAPIURL    string
	FoodAPIKey    string
	FoodAPIHash   string
	FoodTimeFrame string

	// Shared timeout for outbound provider calls.
	UpstreamTimeout time.Duration

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvSeconds gets an environment variable as a number of seconds or returns a default value.
func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // For password, better not to have a hardcoded default
		DBName:     getEnv("DB_NAME", "fitpulse"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		SessionTTL: getEnvSeconds("SESSION_TTL_SECONDS", 24*time.Hour),

		NewsAPIURL:   getEnv("NEWSAPI_URL", "https://newsapi.org"),
		NewsAPIKey:   os.Getenv("NEWSAPI_APIKEY"),
		NewsQuery:    getEnv("NEWS_Q", "fitness"),
		NewsCategory: getEnv("NEWS_CAT", "health"),

		FoodAPIURL:    getEnv("FOOD_API_URL", "https://api.spoonacular.com"),
		FoodAPIKey:    os.Getenv("FOOD_API_APIKEY"),
		FoodAPIHash:   os.Getenv("FOOD_API_HASH"),
		FoodTimeFrame: getEnv("FOOD_TIMEFRAME", "week"),

		UpstreamTimeout: getEnvSeconds("UPSTREAM_TIMEOUT_SECONDS", 15*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}
