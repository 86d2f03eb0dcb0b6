package obs

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerMu sync.Mutex
	logger   zerolog.Logger
	loggerOK bool
)

// Logger returns the shared structured logger used across the service.
func Logger() *zerolog.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if !loggerOK {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		loggerOK = true
	}
	return &logger
}

// SetLoggerOutput redirects the shared logger. Tests use this to capture
// log lines; cmd/api uses it to attach the configured sink.
func SetLoggerOutput(w io.Writer) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = zerolog.New(w).With().Timestamp().Logger()
	loggerOK = true
}
