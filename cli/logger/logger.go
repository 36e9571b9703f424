package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Level  string `doc:"log from debug, info, warn or error"`
	File   string `doc:"append logs to file"`
	Format string `doc:"format logs as text or json"         default:"text"`
	Source bool   `doc:"log the source line of each record"`
}

// level accepts the names understood by [slog.Level.UnmarshalText],
// such as "warn" or "info+2". The empty string keeps the handler default.
func level(option string) (slog.Leveler, bool) {
	if option == "" {
		return nil, true
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(option)); err != nil {
		return nil, false
	}
	return l, true
}

func New(options *Options) *slog.Logger {
	return NewWithOutput(options, os.Stdout)
}

// NewWithOutput is [New] logging to stdout instead of [os.Stdout]
// when no file is given.
func NewWithOutput(options *Options, stdout io.Writer) *slog.Logger {
	level, ok := level(options.Level)
	if !ok {
		options.Level = ""
		logger := NewWithOutput(options, stdout)
		logger.Warn("could not parse logger level")
		return logger
	}
	opts := slog.HandlerOptions{Level: level, AddSource: options.Source}

	var output io.Writer
	switch options.File {
	case "", "-":
		output = stdout
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		var err error
		output, err = os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			options.File = ""
			logger := NewWithOutput(options, stdout)
			logger.Warn("could not open logger file", "err", err)
			return logger
		}
	}

	switch strings.ToLower(options.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts))
	case "text":
		return slog.New(slog.NewTextHandler(output, &opts))
	default:
		options.Format = "text"
		logger := NewWithOutput(options, stdout)
		logger.Warn("could not parse logger format")
		return logger
	}
}
