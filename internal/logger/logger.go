package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init replaces the global zerolog logger. Output is JSON unless console is set.
func Init(service string, debug, console bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	var l zerolog.Logger
	if console {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i interface{}) string {
				return fmt.Sprintf("| %-6s|", i)
			},
		})
	} else {
		l = zerolog.New(os.Stdout)
	}

	log.Logger = l.Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
