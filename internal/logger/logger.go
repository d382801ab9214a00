package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tgienger/tm/internal/config"
)

// Init points the global logger at the configured log file. The terminal
// belongs to the UI, so nothing is written to stdout or stderr. The returned
// closer flushes and closes the file.
func Init(cfg *config.Config) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, errors.Wrap(err, "creating log directory")
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "opening log file")
	}

	Setup(f, cfg)
	return f, nil
}

// Setup configures the global logger to write to w at the configured level.
func Setup(w io.Writer, cfg *config.Config) {
	var out io.Writer = w
	if cfg.Env == config.EnvDev {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	SetLogLevel(cfg)
}

// SetLogLevel applies cfg.LogLevel, falling back to info when it does not parse.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
		log.Warn().Str("loglevel", cfg.LogLevel).Msg("Unknown log level, using info.")
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("loglevel", level.String()).Msg("Log level set.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
