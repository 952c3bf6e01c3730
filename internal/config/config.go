package config

import (
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Source  SourceConfig
	Drive   DriveConfig
	Object  ObjectConfig
	Cache   CacheConfig
	Report  ReportConfig
	Refresh RefreshConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type LogConfig struct {
	Level string
}

// SourceConfig selects where the raw spreadsheet text comes from.
type SourceConfig struct {
	Kind           string // http, drive, object, file or sample
	URL            string
	File           string
	Delimiter      string
	TimeoutSeconds int
}

type DriveConfig struct {
	FileID          string
	FolderID        string
	CredentialsJSON string
}

type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Key       string
	Prefix    string
	Region    string
	UseSSL    bool
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

type ReportConfig struct {
	InitialStock float64
	PreviewSize  int
	PeriodLimit  int
}

type RefreshConfig struct {
	Schedule string
	TimeZone string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		setDefaults(viper.GetViper())

		// Read from environment variables
		viper.AutomaticEnv()

		instance = fromViper(viper.GetViper())
	})

	return instance
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SOURCE_KIND", "sample")
	v.SetDefault("SOURCE_URL", "")
	v.SetDefault("SOURCE_FILE", "")
	v.SetDefault("SOURCE_DELIMITER", "")
	v.SetDefault("SOURCE_TIMEOUT_SECONDS", 20)
	v.SetDefault("DRIVE_FILE_ID", "")
	v.SetDefault("DRIVE_FOLDER_ID", "")
	v.SetDefault("GOOGLE_DRIVE_CREDENTIALS_JSON", "")
	v.SetDefault("OBJECT_ENDPOINT", "")
	v.SetDefault("OBJECT_ACCESS_KEY", "")
	v.SetDefault("OBJECT_SECRET_KEY", "")
	v.SetDefault("OBJECT_BUCKET", "")
	v.SetDefault("OBJECT_KEY", "")
	v.SetDefault("OBJECT_PREFIX", "")
	v.SetDefault("OBJECT_REGION", "us-east-1")
	v.SetDefault("OBJECT_USE_SSL", true)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_REPORT_TTL_SECONDS", 60)
	v.SetDefault("REPORT_INITIAL_STOCK", 300000)
	v.SetDefault("REPORT_PREVIEW_SIZE", 5)
	v.SetDefault("REPORT_PERIOD_LIMIT", 50)
	v.SetDefault("REFRESH_SCHEDULE", "")
	v.SetDefault("REFRESH_TIMEZONE", "Europe/Istanbul")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Source: SourceConfig{
			Kind:           strings.ToLower(strings.TrimSpace(v.GetString("SOURCE_KIND"))),
			URL:            v.GetString("SOURCE_URL"),
			File:           v.GetString("SOURCE_FILE"),
			Delimiter:      v.GetString("SOURCE_DELIMITER"),
			TimeoutSeconds: v.GetInt("SOURCE_TIMEOUT_SECONDS"),
		},
		Drive: DriveConfig{
			FileID:          v.GetString("DRIVE_FILE_ID"),
			FolderID:        v.GetString("DRIVE_FOLDER_ID"),
			CredentialsJSON: v.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON"),
		},
		Object: ObjectConfig{
			Endpoint:  v.GetString("OBJECT_ENDPOINT"),
			AccessKey: v.GetString("OBJECT_ACCESS_KEY"),
			SecretKey: v.GetString("OBJECT_SECRET_KEY"),
			Bucket:    v.GetString("OBJECT_BUCKET"),
			Key:       v.GetString("OBJECT_KEY"),
			Prefix:    v.GetString("OBJECT_PREFIX"),
			Region:    v.GetString("OBJECT_REGION"),
			UseSSL:    v.GetBool("OBJECT_USE_SSL"),
		},
		Cache: CacheConfig{
			Enabled:          v.GetBool("CACHE_ENABLED"),
			RedisURL:         v.GetString("REDIS_URL"),
			RedisHost:        v.GetString("REDIS_HOST"),
			RedisPort:        v.GetString("REDIS_PORT"),
			RedisPassword:    v.GetString("REDIS_PASSWORD"),
			RedisDB:          v.GetInt("REDIS_DB"),
			ReportTTLSeconds: v.GetInt("CACHE_REPORT_TTL_SECONDS"),
		},
		Report: ReportConfig{
			InitialStock: v.GetFloat64("REPORT_INITIAL_STOCK"),
			PreviewSize:  v.GetInt("REPORT_PREVIEW_SIZE"),
			PeriodLimit:  v.GetInt("REPORT_PERIOD_LIMIT"),
		},
		Refresh: RefreshConfig{
			Schedule: v.GetString("REFRESH_SCHEDULE"),
			TimeZone: v.GetString("REFRESH_TIMEZONE"),
		},
	}
}
