package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StoreDriver string

const (
	StoreMemory   StoreDriver = "memory"
	StoreSQLite   StoreDriver = "sqlite"
	StorePostgres StoreDriver = "postgres"
	StoreRedis    StoreDriver = "redis"
)

type Config struct {
	Addr           string
	RequestTimeout time.Duration

	StoreDriver StoreDriver
	StoreDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AMQPURL      string
	AMQPExchange string

	LogLevel  string
	LogFormat string
	LogFile   string

	OptionCount   int
	CORSOrigins   []string
	ImportEnabled bool
	OpenTDBURL    string
}

// Load reads an optional .env file into the process environment and then
// builds the config from it. Variables already set in the environment win.
func Load(files ...string) Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		_ = godotenv.Load(file)
	}
	return FromEnv()
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":8080"
		}
	}

	return Config{
		Addr:           addr,
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 15*time.Second),

		StoreDriver: StoreDriver(strings.ToLower(envOr("STORE_DRIVER", string(StoreMemory)))),
		StoreDSN:    envOr("STORE_DSN", ""),

		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: envOr("AMQP_EXCHANGE", "quiz.events"),

		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "text"),
		LogFile:   os.Getenv("LOG_FILE"),

		OptionCount:   envInt("OPTION_COUNT", 4),
		CORSOrigins:   csvOr("CORS_ORIGINS", "*"),
		ImportEnabled: envBool("IMPORT_ENABLED", true),
		OpenTDBURL:    envOr("OPENTDB_URL", ""),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
