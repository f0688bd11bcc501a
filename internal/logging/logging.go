package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global zerolog logger writing human-readable output to
// w at the given level. Every event carries a run_id so that the prompt and
// response lines of one invocation can be correlated. It returns the run id.
func Setup(w io.Writer, level string) string {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	runID := uuid.NewString()
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Str("run_id", runID).
		Logger()
	return runID
}

// SetLevel changes the global level after Setup. Unknown levels are ignored.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return
	}
	zerolog.SetGlobalLevel(lvl)
}
