package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DriverPostgres = "postgres"
	DriverFile     = "file"
)

type Config struct {
	APIPort     string
	Environment string // "development" or "production"

	JWTKey []byte
	JWTExp time.Duration

	StorageDriver string // "postgres" or "file"
	DataFile      string // flat-file store path (file driver)

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	UploadDir      string
	MaxUploadBytes int64

	CORSAllowedOrigins []string

	LoginRateLimit       int
	LoginRateLimitWindow time.Duration

	AdminUsername string
	AdminEmail    string
	AdminPassword string
	AllowSeeding  bool
}

var AppConfig *Config

// Load reads configuration from the environment (and .env in development).
// Misconfiguration is fatal: a missing signing secret must never fall back
// to a development default.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:     getEnv("API_PORT", "4000"),
		Environment: getEnv("APP_ENV", "development"),

		JWTKey: []byte(os.Getenv("JWT_SECRET")),
		JWTExp: time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		StorageDriver: getEnv("STORAGE_DRIVER", DriverPostgres),
		DataFile:      getEnv("DATA_FILE", "data/properties.json"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "inmobiliaria"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "inmobiliaria_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,

		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_MB", 8)) << 20,

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5000,http://localhost:5173")),

		LoginRateLimit:       getEnvAsInt("LOGIN_RATE_LIMIT", 5),
		LoginRateLimitWindow: time.Duration(getEnvAsInt("LOGIN_RATE_LIMIT_WINDOW_MINUTES", 5)) * time.Minute,

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@inmobiliaria.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AllowSeeding:  getEnv("ALLOW_SEEDING", "false") == "true",
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode

	if err := AppConfig.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
}

func (c *Config) Validate() error {
	if len(c.JWTKey) == 0 {
		return errMissing("JWT_SECRET")
	}
	if c.StorageDriver != DriverPostgres && c.StorageDriver != DriverFile {
		return errValue("STORAGE_DRIVER", c.StorageDriver)
	}
	// The file driver authenticates against the configured admin account,
	// so its credentials are mandatory there.
	if c.StorageDriver == DriverFile && c.AdminPassword == "" {
		return errMissing("ADMIN_PASSWORD")
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return errMissing("CORS_ALLOWED_ORIGINS")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

type configError struct{ msg string }

func (e configError) Error() string { return e.msg }

func errMissing(key string) error {
	return configError{msg: key + " is required and not set"}
}

func errValue(key, value string) error {
	return configError{msg: "unsupported value for " + key + ": " + value}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
