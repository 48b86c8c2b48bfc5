package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

func NewLogger(writer io.Writer, level string) (*log.Logger, error) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(writer, log.Options{
		Prefix:          "mod-analyzer",
		ReportTimestamp: true,
		Level:           parsed,
	})
	return logger, nil
}
