package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger.
// format is "console" for human readable output or "json" for raw structured lines.
func Setup(level, format string) error {
	return setup(os.Stderr, level, format)
}

func setup(out io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = out
	if strings.ToLower(format) != "json" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
