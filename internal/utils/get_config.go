package utils

import (
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server
	AppPort            string `yaml:"APP_PORT"`
	CORSOrigins        string `yaml:"CORS_ORIGINS"`
	RateLimitPerSecond string `yaml:"RATE_LIMIT_PER_SECOND"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Sessions
	JWTSecret        string `yaml:"JWT_SECRET"`
	SessionTTLDays   string `yaml:"SESSION_TTL_DAYS"`
	SecureCookies    string `yaml:"SECURE_COOKIES"`
	SessionSweepCron string `yaml:"SESSION_SWEEP_CRON"`

	// Media storage
	StorageDriver string `yaml:"STORAGE_DRIVER"`
	MediaRoot     string `yaml:"MEDIA_ROOT"`
	MediaURLBase  string `yaml:"MEDIA_URL_BASE"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

var defaults = map[string]string{
	"APP_PORT":              "8001",
	"CORS_ORIGINS":          "*",
	"RATE_LIMIT_PER_SECOND": "10",
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USER":               "postgres",
	"DB_NAME":               "beertrack",
	"SESSION_TTL_DAYS":      "7",
	"SECURE_COOKIES":        "false",
	"STORAGE_DRIVER":        "local",
	"MEDIA_ROOT":            "./uploads",
	"MEDIA_URL_BASE":        "/media",
}

// LoadConfig reads the YAML file at path. A missing file is not fatal:
// environment variables and defaults still apply.
func LoadConfig(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("Error reading YAML file: %s", err)
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Errorf("Error parsing YAML file: %s", err)
	}
}

// GetConfig resolves key from the environment first, then config.yaml,
// then the built-in defaults.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v := fromFile(key); v != "" {
		return v
	}
	return defaults[key]
}

func GetConfigInt(key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(GetConfig(key)))
	if err != nil {
		d, _ := strconv.Atoi(defaults[key])
		return d
	}
	return n
}

func GetConfigBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(GetConfig(key))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func fromFile(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "CORS_ORIGINS":
		return config.CORSOrigins
	case "RATE_LIMIT_PER_SECOND":
		return config.RateLimitPerSecond
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "SESSION_TTL_DAYS":
		return config.SessionTTLDays
	case "SECURE_COOKIES":
		return config.SecureCookies
	case "SESSION_SWEEP_CRON":
		return config.SessionSweepCron
	case "STORAGE_DRIVER":
		return config.StorageDriver
	case "MEDIA_ROOT":
		return config.MediaRoot
	case "MEDIA_URL_BASE":
		return config.MediaURLBase
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
