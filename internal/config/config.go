// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxsna/internal/options"
	"github.com/retroenv/zxsna/internal/report"
)

// CreateLogger creates a logger with the level selected by the debug and quiet flags.
// Debug takes precedence over quiet.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case flags.Debug:
		cfg.Level = log.DebugLevel
	case flags.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateFormatter creates the report formatter for the selected format.
func CreateFormatter(flags options.Flags) (report.Formatter, error) {
	formatter, err := report.NewFormatter(flags.Format)
	if err != nil {
		return nil, fmt.Errorf("creating report formatter: %w", err)
	}
	return formatter, nil
}
