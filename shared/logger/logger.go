// Package logger configures the global zerolog logger shared by the server and the CLI.
package logger

import (
	"bistro/config"
	"bistro/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// stackTracer is satisfied by errors created or wrapped with pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// InitLogger installs a human readable console writer at trace level. SetLogLevel narrows it
// once configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

// SetLogLevel applies the configured level, trace when it is missing or unknown. Production
// writes JSON lines instead of console output.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if cfg.Server.Env == constant.ServerEnvProduction {
		out = os.Stdout
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("service", cfg.App.Name).Logger()
	log.Debug().Str("level", level.String()).Msg("Logger configured.")
}

// ErrorWithStack logs err with a stack trace. Errors that already carry one keep it.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	var traced stackTracer
	if !errors.As(err, &traced) {
		err = errors.WithStack(err)
	}

	log.Error().Msgf("%+v", err)
}
