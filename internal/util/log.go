package util

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFromContext returns the request-scoped logger, falling back to the global one.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := log.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = &log.Logger
	}

	return l
}

// LogOutput describes where the global logger writes to.
type LogOutput struct {
	PrettyPrintConsole bool
	// File enables rotated file output next to the console when set.
	File           string
	FileMaxSizeMB  int
	FileMaxBackups int
	FileMaxAgeDays int
}

// ConfigureGlobalLogger sets level and writers of the zerolog global logger.
func ConfigureGlobalLogger(level zerolog.Level, out LogOutput) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.SetGlobalLevel(level)

	var console io.Writer = os.Stderr
	if out.PrettyPrintConsole {
		console = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		})
	}

	writer := console
	if out.File != "" {
		writer = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   out.File,
			MaxSize:    out.FileMaxSizeMB,
			MaxBackups: out.FileMaxBackups,
			MaxAge:     out.FileMaxAgeDays,
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}
