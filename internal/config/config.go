package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sportshop/internal/apperror"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongo    = "mongo"
)

// Config is the process-wide configuration, built once at startup and
// read-only afterwards.
type Config struct {
	AppPort   string
	AppEnv    string
	LogLevel  string
	JWTSecret string
	JWTTTL    time.Duration

	BcryptCost int

	DBDriver      string
	DatabaseDSN   string
	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RabbitMQURL string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	UploadDir     string
	PublicBaseURL string
}

// IsProduction reports whether error details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Load reads an optional .env file and the process environment. A missing
// JWT_SECRET or any malformed value yields an error wrapping apperror.ErrConfig.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_EXPIRES_IN", "3d")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "sportshop.db")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "sportshop")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CLOUDINARY_FOLDER", "sportshop-products")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:5000")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:             v.GetString("APP_PORT"),
		AppEnv:              v.GetString("APP_ENV"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		DBDriver:            strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		MongoURI:            v.GetString("MONGO_URI"),
		MongoDatabase:       v.GetString("MONGO_DATABASE"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		CloudinaryCloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: v.GetString("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    v.GetString("CLOUDINARY_FOLDER"),
		UploadDir:           v.GetString("UPLOAD_DIR"),
		PublicBaseURL:       strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required: %w", apperror.ErrConfig)
	}

	var err error
	if cfg.JWTTTL, err = ParseTTL(v.GetString("JWT_EXPIRES_IN")); err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	if cfg.CacheTTL, err = ParseTTL(v.GetString("CACHE_TTL")); err != nil {
		return nil, fmt.Errorf("CACHE_TTL: %w", err)
	}
	if cfg.BcryptCost, err = strconv.Atoi(v.GetString("BCRYPT_COST")); err != nil {
		return nil, fmt.Errorf("BCRYPT_COST %q: %w", v.GetString("BCRYPT_COST"), apperror.ErrConfig)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST %d out of range: %w", cfg.BcryptCost, apperror.ErrConfig)
	}
	if cfg.RedisDB, err = strconv.Atoi(v.GetString("REDIS_DB")); err != nil {
		return nil, fmt.Errorf("REDIS_DB %q: %w", v.GetString("REDIS_DB"), apperror.ErrConfig)
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMySQL, DriverMongo:
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q: %w", cfg.DBDriver, apperror.ErrConfig)
	}

	return cfg, nil
}

// ParseTTL parses a Go duration ("90m", "24h") or a whole number of days ("3d").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day duration %q: %w", s, apperror.ErrConfig)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q: %w", s, apperror.ErrConfig)
	}
	return d, nil
}
