// Package logging configures the zerolog logger shared by the service.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Shivanand-hulikatti/hackhub/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds a logger writing to w. Console format is meant for local
// development; json is what production log shippers expect.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Setup builds a stderr logger from cfg and installs it as the global
// zerolog logger.
func Setup(cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := New(cfg, os.Stderr)
	if err != nil {
		return logger, err
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
	return logger, nil
}
