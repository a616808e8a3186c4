package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// PDF response modes for POST /quotations: stream the bytes back, or save to
// disk and answer with a download link.
const (
	PDFResponseStream = "stream"
	PDFResponseLink   = "link"
)

type Config struct {
	Env             string `envconfig:"APP_ENV" default:"development"`
	HTTPAddr        string `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL" required:"true"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string `envconfig:"LOG_FORMAT" default:"console"`
	DownloadsDir    string `envconfig:"DOWNLOADS_DIR" default:"downloads"`
	StaticDir       string `envconfig:"STATIC_DIR" default:""`
	PDFResponseMode string `envconfig:"PDF_RESPONSE_MODE" default:"stream"`
	CORSAllowOrigin string `envconfig:"CORS_ALLOW_ORIGIN" default:"*"`
	RedisAddr       string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword   string `envconfig:"REDIS_PASSWORD" default:""`
	AdminToken      string `envconfig:"ADMIN_TOKEN" default:""`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	// envconfig treats a set-but-empty variable as present.
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}
	switch cfg.PDFResponseMode {
	case PDFResponseStream, PDFResponseLink:
	default:
		return Config{}, fmt.Errorf("invalid PDF_RESPONSE_MODE %q", cfg.PDFResponseMode)
	}
	return cfg, nil
}

func (c Config) IsProd() bool {
	return strings.EqualFold(c.Env, "production")
}
