package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("LOG_FILE", "")

	t.Run("falls back to info", func(t *testing.T) {
		var out bytes.Buffer
		closeLog := Init("nonsense", &out)
		defer closeLog()

		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
		log.Debug().Msg("hidden")
		log.Info().Msg("shown")
		require.NotContains(t, out.String(), "hidden")
		require.Contains(t, out.String(), "shown")
	})

	t.Run("appends to the log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kamisado.log")
		t.Setenv("LOG_FILE", path)
		var out bytes.Buffer

		closeLog := Init("info", &out)
		log.Info().Msg("to both")
		closeLog()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), `"message":"to both"`)
		require.Contains(t, out.String(), "to both")
	})

	t.Run("reports a log file that cannot be opened", func(t *testing.T) {
		t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "missing", "kamisado.log"))
		var out bytes.Buffer

		closeLog := Init("info", &out)
		defer closeLog()

		require.Contains(t, out.String(), "failed to open log file")
		log.Info().Msg("still logging")
		require.Contains(t, out.String(), "still logging")
	})
}
