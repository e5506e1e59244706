// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init sets the global level and a console writer on out. An unknown or
// empty level falls back to info. Setting LOG_FILE also appends plain JSON
// lines to that file. The returned function closes the log file, if any.
func Init(level string, out io.Writer) func() {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}

	var (
		file     *os.File
		fileErr  error
		filePath = os.Getenv("LOG_FILE")
	)
	if filePath != "" {
		file, fileErr = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if fileErr == nil {
			output = io.MultiWriter(output, file)
		}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	if fileErr != nil {
		log.Error().Err(fileErr).Str("path", filePath).Msg("failed to open log file")
	}
	log.Debug().Str("level", lvl.String()).Msg("logger initialized")

	return func() {
		if file != nil {
			file.Close()
		}
	}
}
