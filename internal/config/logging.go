package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a logger for cfg. Output goes to console, when not nil,
// and to cfg.File when set. A full-screen UI passes a nil console so logs
// never draw over the terminal. Unknown levels fall back to info.
//
// The returned closer releases the log file and is never nil.
func NewLogger(cfg LoggingConfig, console io.Writer) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339})
	}
	closer := io.Closer(nopCloser{})
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("opening log file %s: %w", cfg.File, err)
		}
		writers = append(writers, f)
		closer = f
	}
	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
