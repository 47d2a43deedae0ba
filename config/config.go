package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the API process needs at startup.
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	Storage StorageConfig
	Redis   RedisConfig
	Admin   AdminConfig
}

type AppConfig struct {
	Port     string
	GinMode  string
	LogLevel string
	// LogFormat is "text" or "json".
	LogFormat string
	TimeZone  string
	// CurrentDate pins "today" to a fixed YYYY-MM-DD. Empty means wall clock.
	CurrentDate string
}

type DBConfig struct {
	Driver string // sqlite | mysql
	DSN    string
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type StorageConfig struct {
	Backend        string // local | s3
	LocalDir       string
	PublicPath     string
	Bucket         string
	Endpoint       string
	AccountID      string
	Region         string
	AccessKeyID    string
	SecretKey      string
	PublicURL      string
	MaxUploadBytes int64
}

type RedisConfig struct {
	// Addr empty disables the Redis claim layer.
	Addr     string
	Password string
	DB       int
	GuardTTL time.Duration
}

type AdminConfig struct {
	Email    string
	Username string
	Password string
}

// defaultJWTSecret is only meant for local runs
const defaultJWTSecret = "lunch_voting_super_secret_2024"

// Load reads an optional .env file, an optional config file, and the
// environment, in increasing order of precedence.
func Load(configPath ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("app.port", "PORT", "APP_PORT")
	_ = v.BindEnv("app.gin_mode", "GIN_MODE", "APP_GIN_MODE")
	_ = v.BindEnv("app.time_zone", "TIME_ZONE", "APP_TIME_ZONE")
	_ = v.BindEnv("app.current_date", "CURRENT_DATE", "APP_CURRENT_DATE")
	_ = v.BindEnv("storage.account_id", "R2_ACCOUNT_ID", "STORAGE_ACCOUNT_ID")
	_ = v.BindEnv("storage.access_key_id", "R2_ACCESS_KEY_ID", "STORAGE_ACCESS_KEY_ID")
	_ = v.BindEnv("storage.secret_key", "R2_SECRET_ACCESS_KEY", "STORAGE_SECRET_KEY")

	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Port:        v.GetString("app.port"),
			GinMode:     v.GetString("app.gin_mode"),
			LogLevel:    v.GetString("app.log_level"),
			LogFormat:   v.GetString("app.log_format"),
			TimeZone:    v.GetString("app.time_zone"),
			CurrentDate: v.GetString("app.current_date"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("db.driver")),
			DSN:    v.GetString("db.dsn"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			AccessTTL:  v.GetDuration("jwt.access_ttl"),
			RefreshTTL: v.GetDuration("jwt.refresh_ttl"),
		},
		Storage: StorageConfig{
			Backend:        strings.ToLower(v.GetString("storage.backend")),
			LocalDir:       v.GetString("storage.local_dir"),
			PublicPath:     v.GetString("storage.public_path"),
			Bucket:         v.GetString("storage.bucket"),
			Endpoint:       v.GetString("storage.endpoint"),
			AccountID:      v.GetString("storage.account_id"),
			Region:         v.GetString("storage.region"),
			AccessKeyID:    v.GetString("storage.access_key_id"),
			SecretKey:      v.GetString("storage.secret_key"),
			PublicURL:      v.GetString("storage.public_url"),
			MaxUploadBytes: v.GetInt64("storage.max_upload_bytes"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			GuardTTL: v.GetDuration("redis.guard_ttl"),
		},
		Admin: AdminConfig{
			Email:    v.GetString("admin.email"),
			Username: v.GetString("admin.username"),
			Password: v.GetString("admin.password"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.gin_mode", "debug")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")
	v.SetDefault("app.time_zone", "UTC")
	v.SetDefault("app.current_date", "")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "lunch_voting.db")

	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.access_ttl", 24*time.Hour)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_dir", "media")
	v.SetDefault("storage.public_path", "/media")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.max_upload_bytes", 10<<20)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.guard_ttl", 26*time.Hour)

	v.SetDefault("admin.username", "admin")
}

// Validate rejects combinations the process cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported db driver %q (want sqlite or mysql)", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("db dsn is required")
	}
	switch c.Storage.Backend {
	case "local":
		if c.Storage.LocalDir == "" {
			return errors.New("storage local_dir is required for the local backend")
		}
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("storage bucket is required for the s3 backend")
		}
		if c.Storage.Endpoint == "" && c.Storage.AccountID == "" && c.Storage.Region == "auto" {
			return errors.New("storage endpoint, account_id or a concrete region is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend %q (want local or s3)", c.Storage.Backend)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret must not be empty")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("jwt ttls must be positive")
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return errors.New("storage max_upload_bytes must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, _, err := c.ReferenceDate(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.App.TimeZone, err)
	}
	return loc, nil
}

// ReferenceDate parses CurrentDate. ok is false when no override is set.
func (c *Config) ReferenceDate() (day time.Time, ok bool, err error) {
	if c.App.CurrentDate == "" {
		return time.Time{}, false, nil
	}
	day, err = time.Parse("2006-01-02", c.App.CurrentDate)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse current_date %q: %w", c.App.CurrentDate, err)
	}
	return day, true, nil
}
