package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	LogLevel  string
	PublicDir string
	Store     StoreConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Queue     QueueConfig
	Security  SecurityConfig
	Backup    BackupConfig
}

// StoreConfig selects the record store driver
type StoreConfig struct {
	Driver     string // fs | memory | s3 | mysql | postgres | sqlite
	FSRoot     string
	SQLitePath string
	S3         S3Config
}

// S3Config holds bucket settings for the s3 driver
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// DatabaseConfig holds database configuration for the mysql and postgres drivers
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret         string
	SessionMinutes int
}

// CookieConfig holds session cookie configuration
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite string
	Domain   string
}

// QueueConfig holds queue defaults written on first start
type QueueConfig struct {
	AvgTimePerPatient int
}

// SecurityConfig holds credential hashing settings
type SecurityConfig struct {
	BcryptCost int
}

// BackupConfig holds the collection snapshot job settings
type BackupConfig struct {
	Enabled  bool
	Schedule string
	Keep     int
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	store := loadStoreConfig()
	switch store.Driver {
	case "fs", "memory", "s3", "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER: '%s'", store.Driver)
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3000"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		PublicDir: getEnv("PUBLIC_DIR", "./public"),
		Store:     store,
		Database:  loadDatabaseConfig(appMode, store.Driver),
		JWT:       loadJWTConfig(appMode),
		Cookie:    loadCookieConfig(appMode),
		Queue:     QueueConfig{AvgTimePerPatient: getEnvInt("AVG_TIME_PER_PATIENT", 5)},
		Security:  SecurityConfig{BcryptCost: getEnvInt("BCRYPT_COST", 12)},
		Backup:    loadBackupConfig(),
	}

	if config.IsProd() && config.JWT.Secret == defaultJWTSecret {
		return nil, fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, STORE: %s]", appMode, store.Driver)
	return config, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

func loadStoreConfig() StoreConfig {
	pathStyle, _ := strconv.ParseBool(getEnv("STORE_S3_PATH_STYLE", "false"))
	return StoreConfig{
		Driver:     strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", "fs"))),
		FSRoot:     getEnv("STORE_FS_ROOT", "./data"),
		SQLitePath: getEnv("SQLITE_PATH", "./data/clinic.db"),
		S3: S3Config{
			Bucket:    getEnv("STORE_S3_BUCKET", ""),
			Region:    getEnv("STORE_S3_REGION", "us-east-1"),
			Endpoint:  getEnv("STORE_S3_ENDPOINT", ""),
			PathStyle: pathStyle,
		},
	}
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode, driver string) DatabaseConfig {
	prefix := modePrefix(mode)

	defaultPort, defaultUser := "3306", "root"
	if driver == "postgres" {
		defaultPort, defaultUser = "5432", "postgres"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", defaultUser),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "clinic_queue"),
		SSLMode:  getEnv(prefix+"DB_SSLMODE", "disable"),
	}
}

const defaultJWTSecret = "default_secret"

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	return JWTConfig{
		Secret:         getEnv(modePrefix(mode)+"JWT_SECRET", defaultJWTSecret),
		SessionMinutes: getEnvInt("SESSION_TTL_MINUTES", 480),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	secure, _ := strconv.ParseBool(getEnv(modePrefix(mode)+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Name:     getEnv("COOKIE_NAME", "session"),
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadBackupConfig() BackupConfig {
	enabled, err := strconv.ParseBool(getEnv("BACKUP_ENABLED", "true"))
	if err != nil {
		enabled = true
	}
	return BackupConfig{
		Enabled:  enabled,
		Schedule: getEnv("BACKUP_SCHEDULE", "0 2 * * *"),
		Keep:     getEnvInt("BACKUP_KEEP", 7),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets a positive integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:" + c.Port
	}
	return origins
}
