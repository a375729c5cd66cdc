package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Backend  BackendConfig
	Google   GoogleConfig
	Redis    RedisConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Log      LogConfig
	Export   ExportConfig
	Timezone string
}

// BackendConfig points at the schedule backend that serves group lists
// and group schedules.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GoogleConfig holds OAuth and Calendar API settings.
type GoogleConfig struct {
	ClientID        string
	AuthURL         string
	CalendarBaseURL string
	Scope           string
	RedirectOrigin  string
	RequestTimeout  time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig tunes the group list cache.
type CacheConfig struct {
	GroupsTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig governs the export worker pool and the OAuth token broker.
type ExportConfig struct {
	Workers      int
	QueueSize    int
	PollInterval time.Duration
	AuthTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.Timezone = v.GetString("SCHEDULE_TIMEZONE")

	cfg.Backend = BackendConfig{
		BaseURL: v.GetString("BACKEND_BASE_URL"),
		Timeout: parseDuration(v.GetString("BACKEND_TIMEOUT"), 15*time.Second),
	}

	cfg.Google = GoogleConfig{
		ClientID:        v.GetString("GOOGLE_CLIENT_ID"),
		AuthURL:         v.GetString("GOOGLE_AUTH_URL"),
		CalendarBaseURL: v.GetString("GOOGLE_CALENDAR_BASE_URL"),
		Scope:           v.GetString("GOOGLE_OAUTH_SCOPE"),
		RedirectOrigin:  v.GetString("GOOGLE_REDIRECT_ORIGIN"),
		RequestTimeout:  parseDuration(v.GetString("GOOGLE_REQUEST_TIMEOUT"), 20*time.Second),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		GroupsTTL: parseDuration(v.GetString("GROUPS_CACHE_TTL"), time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{
		Workers:      v.GetInt("EXPORT_WORKERS"),
		QueueSize:    v.GetInt("EXPORT_QUEUE_SIZE"),
		PollInterval: parseDuration(v.GetString("AUTH_POLL_INTERVAL"), 100*time.Millisecond),
		AuthTimeout:  parseDuration(v.GetString("AUTH_TIMEOUT"), 3*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("SCHEDULE_TIMEZONE", "Europe/Kyiv")

	v.SetDefault("BACKEND_BASE_URL", "https://api.kpiexport.org")
	v.SetDefault("BACKEND_TIMEOUT", "15s")

	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_AUTH_URL", "https://accounts.google.com/o/oauth2/v2/auth")
	v.SetDefault("GOOGLE_CALENDAR_BASE_URL", "https://www.googleapis.com/calendar/v3")
	v.SetDefault("GOOGLE_OAUTH_SCOPE", "https://www.googleapis.com/auth/calendar")
	v.SetDefault("GOOGLE_REDIRECT_ORIGIN", "http://localhost:8080")
	v.SetDefault("GOOGLE_REQUEST_TIMEOUT", "20s")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("GROUPS_CACHE_TTL", "1h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("EXPORT_WORKERS", 4)
	v.SetDefault("EXPORT_QUEUE_SIZE", 16)
	v.SetDefault("AUTH_POLL_INTERVAL", "100ms")
	v.SetDefault("AUTH_TIMEOUT", "3m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
