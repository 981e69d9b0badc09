package database

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// gooseLogger sends goose's printf-style output to slog so migration progress
// shares the format of the rest of the process logs.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
