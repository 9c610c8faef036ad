// internal/logging/logging.go
package logging

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

func NewHandler(name string) slog.Handler {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          name,
		Level:           log.InfoLevel,
	})
}

func New(name string) *slog.Logger {
	return slog.New(NewHandler(name))
}
