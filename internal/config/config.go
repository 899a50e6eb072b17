package config

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type APIConfig struct {
	Origin  string
	Timeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ThreadConfig struct {
	LikeCountWorkers int
}

type ComposerConfig struct {
	MaxAttachmentBytes int64
	MaxAttachments     int
}

type SessionConfig struct {
	CookieName  string
	TTL         time.Duration
	Secure      bool
	MaxSessions int
}

type TracingConfig struct {
	Endpoint    string
	ServiceName string
}

type AppConfig struct {
	Port          string
	ClientOrigin  string
	DefaultPostID string
	API           APIConfig
	Redis         RedisConfig
	Thread        ThreadConfig
	Composer      ComposerConfig
	Session       SessionConfig
	Tracing       TracingConfig
}

func SetDefaults() {
	viper.SetDefault("app.port", "3000")
	viper.SetDefault("app.default-post", "1")
	viper.SetDefault("client.origin", "http://localhost:3000")
	viper.SetDefault("api.origin", "http://127.0.0.1:5000")
	viper.SetDefault("api.timeout", 10*time.Second)
	viper.SetDefault("thread.like-count-workers", 8)
	viper.SetDefault("composer.max-attachment-bytes", 10<<20)
	viper.SetDefault("composer.max-attachments", 10)
	viper.SetDefault("session.cookie", "bluestrap_session")
	viper.SetDefault("session.ttl", 24*time.Hour)
	viper.SetDefault("session.secure", false)
	viper.SetDefault("session.max-sessions", 10000)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("tracing.service-name", "bluestrap-web")
}

// Load reads app settings from viper and secrets from the environment.
func Load() AppConfig {
	return AppConfig{
		Port:          viper.GetString("app.port"),
		ClientOrigin:  viper.GetString("client.origin"),
		DefaultPostID: viper.GetString("app.default-post"),
		API: APIConfig{
			Origin:  viper.GetString("api.origin"),
			Timeout: viper.GetDuration("api.timeout"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       viper.GetInt("redis.db"),
		},
		Thread: ThreadConfig{
			LikeCountWorkers: viper.GetInt("thread.like-count-workers"),
		},
		Composer: ComposerConfig{
			MaxAttachmentBytes: viper.GetInt64("composer.max-attachment-bytes"),
			MaxAttachments:     viper.GetInt("composer.max-attachments"),
		},
		Session: SessionConfig{
			CookieName:  viper.GetString("session.cookie"),
			TTL:         viper.GetDuration("session.ttl"),
			Secure:      viper.GetBool("session.secure"),
			MaxSessions: viper.GetInt("session.max-sessions"),
		},
		Tracing: TracingConfig{
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: viper.GetString("tracing.service-name"),
		},
	}
}
