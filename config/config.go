package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file into the process environment if one exists.
func LoadEnv() { _ = godotenv.Load() }

// Config is read from environment variables.
type Config struct {
	Port      string
	WebOrigin string

	StoreDriver string // file|postgres|redis|memory
	DataFile    string
	PostgresDSN string
	RedisAddr   string
	RedisPwd    string
	RedisKey    string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	OverdueDays int
}

func FromEnv() Config {
	get := func(k, def string) string {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			return def
		}
		return v
	}
	getInt := func(k string, def int) int {
		n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
		if err != nil || n <= 0 {
			return def
		}
		return n
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			get("DB_HOST", "127.0.0.1"),
			get("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			get("DB_NAME", "lab_assets"),
			get("DB_PORT", "5432"),
		)
	}

	return Config{
		Port:      get("PORT", "3001"),
		WebOrigin: get("WEB_ORIGIN", "http://localhost:5173"),

		StoreDriver: get("LAB_STORE_DRIVER", "file"),
		DataFile:    get("LAB_DATA_FILE", ""),
		PostgresDSN: dsn,
		RedisAddr:   get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:    os.Getenv("REDIS_PASSWORD"),
		RedisKey:    get("REDIS_SNAPSHOT_KEY", ""),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   get("OPENAI_MODEL", ""),
		OpenAIBaseURL: get("OPENAI_BASE_URL", ""),

		OverdueDays: getInt("OVERDUE_DAYS", 3),
	}
}
