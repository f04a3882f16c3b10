package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"campusdesk/app/logger"
)

const devSecret = "campusdesk-dev-secret"

type Config struct {
	Env             string
	Port            string
	DatabaseURL     string
	SecretKey       string
	UploadDir       string
	MaxUploadMB     int
	Timezone        string
	TemplateReload  bool
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	OverdueSchedule string
	Library         LibraryConfig

	DB *sqlx.DB
}

type LibraryConfig struct {
	LoanDays   int
	FinePerDay float64
}

var AppConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SECRET_KEY", devSecret)
	v.SetDefault("UPLOAD_DIR", "./static/uploads")
	v.SetDefault("MAX_UPLOAD_MB", 16)
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("TEMPLATE_RELOAD", false)
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("SCHEDULE_OVERDUE", "10 0 * * *")
	v.SetDefault("LIBRARY_LOAN_DAYS", 14)
	v.SetDefault("LIBRARY_FINE_PER_DAY", 1.0)
}

// Load reads the environment (and a .env file when present) into a Config.
func Load() (*Config, error) {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := fromViper(v)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	AppConfig = cfg
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Env:             strings.ToLower(v.GetString("APP_ENV")),
		Port:            v.GetString("PORT"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		SecretKey:       v.GetString("SECRET_KEY"),
		UploadDir:       v.GetString("UPLOAD_DIR"),
		MaxUploadMB:     v.GetInt("MAX_UPLOAD_MB"),
		Timezone:        v.GetString("TIMEZONE"),
		TemplateReload:  v.GetBool("TEMPLATE_RELOAD"),
		DBMaxOpenConns:  v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:  v.GetInt("DB_MAX_IDLE_CONNS"),
		OverdueSchedule: v.GetString("SCHEDULE_OVERDUE"),
		Library: LibraryConfig{
			LoanDays:   v.GetInt("LIBRARY_LOAN_DAYS"),
			FinePerDay: v.GetFloat64("LIBRARY_FINE_PER_DAY"),
		},
	}
}

// Current is the loaded configuration, or the built-in defaults before Load has run.
func Current() *Config {
	if AppConfig != nil {
		return AppConfig
	}
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.Library.LoanDays <= 0 {
		return fmt.Errorf("LIBRARY_LOAN_DAYS must be positive, got %d", c.Library.LoanDays)
	}
	if c.Library.FinePerDay < 0 {
		return fmt.Errorf("LIBRARY_FINE_PER_DAY must not be negative")
	}
	if c.IsProduction() && c.SecretKey == devSecret {
		return fmt.Errorf("SECRET_KEY must be set in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// MaxUploadBytes is the request body limit handed to Fiber.
func (c *Config) MaxUploadBytes() int {
	return c.MaxUploadMB * 1024 * 1024
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		logger.L().Warn("unknown timezone, using UTC", zap.String("timezone", c.Timezone), zap.Error(err))
		return time.UTC
	}
	return loc
}

// InitDB opens the connection pool and verifies it with a ping.
func InitDB(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if cfg.SecretKey == devSecret {
		logger.L().Warn("SECRET_KEY not set, using the development key")
	}
	logger.L().Info("database connected", zap.Int("max_open_conns", cfg.DBMaxOpenConns))

	cfg.DB = db
	return db, nil
}

func GetDB() *sqlx.DB {
	return AppConfig.DB
}
