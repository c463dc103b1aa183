package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP      HTTP
		Log       Log
		Converter Converter
		Upload    Upload
		Preview   Preview
		Viewer    Viewer
		Session   Session
		Swagger   Swagger
	}

	HTTP struct {
		Port            string        `env:"HTTP_PORT,required"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"5m"` // convert?wait=true holds the response
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"3s"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	Converter struct {
		Endpoint     string        `env:"CONVERTER_ENDPOINT,required,notEmpty"`
		Token        string        `env:"CONVERTER_TOKEN,required,notEmpty"`
		Timeout      time.Duration `env:"CONVERTER_TIMEOUT" envDefault:"5m"`
		ModelFormat  string        `env:"CONVERTER_MODEL_FORMAT" envDefault:"glb"`
		MaxModelSize int64         `env:"CONVERTER_MAX_MODEL_SIZE" envDefault:"104857600"`
		RateLimit    float64       `env:"CONVERTER_RATE_LIMIT" envDefault:"0"` // conversions per second, 0 disables
		RateBurst    int           `env:"CONVERTER_RATE_BURST" envDefault:"5"`
	}

	Upload struct {
		MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"10485760"`
	}

	Preview struct {
		MaxWidth  int `env:"PREVIEW_MAX_WIDTH" envDefault:"768"`
		MaxHeight int `env:"PREVIEW_MAX_HEIGHT" envDefault:"768"`
	}

	Viewer struct {
		ScriptURL string `env:"VIEWER_SCRIPT_URL" envDefault:"https://ajax.googleapis.com/ajax/libs/model-viewer/3.3.0/model-viewer.min.js"`
	}

	Session struct {
		CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`
		IdleTTL         time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
		JanitorInterval time.Duration `env:"SESSION_JANITOR_INTERVAL" envDefault:"1m"`
		ShutdownTimeout time.Duration `env:"SESSION_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
