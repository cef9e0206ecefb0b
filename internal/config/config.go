package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port          string
	DBDriver      string
	DatabaseURL   string
	JWTSecret     string
	JWTTTL        time.Duration
	CookieSecure  bool
	CORSOrigins   string
	Timezone      string
	Location      *time.Location
	TelegramToken string
	LogLevel      string

	SuperAdminCompanyID string
	SuperAdminUsername  string
	SuperAdminEmail     string
	SuperAdminPassword  string
}

var instance *Config
var once sync.Once

// Get returns the process-wide config, loading .env on first use.
func Get() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Info(".env file not found, using system environment")
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("error loading config: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load reads the configuration from the environment without touching .env.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "3000"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DatabaseURL:   getEnv("DATABASE_URL", "timeclock.db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTTTL:        time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
		CookieSecure:  getEnvAsBool("COOKIE_SECURE", false),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		Timezone:      getEnv("TIMEZONE", "Local"),
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		SuperAdminCompanyID: strings.TrimSpace(getEnv("SUPER_ADMIN_COMPANY_ID", "")),
		SuperAdminUsername:  strings.TrimSpace(getEnv("SUPER_ADMIN_USERNAME", "")),
		SuperAdminEmail:     strings.TrimSpace(getEnv("SUPER_ADMIN_EMAIL", "")),
		SuperAdminPassword:  strings.TrimSpace(getEnv("SUPER_ADMIN_PASSWORD", "")),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	return cfg, nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
