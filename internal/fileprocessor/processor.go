// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxsna/internal/config"
	"github.com/retroenv/zxsna/internal/loader"
	"github.com/retroenv/zxsna/internal/options"
	"github.com/retroenv/zxsna/internal/report"
	"github.com/retroenv/zxsna/internal/sna"
)

// ProcessFile loads the input snapshot, applies the optional paging port
// write and writes the report to the output.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return err
	}

	if err := applyPageWrite(logger, opts, snapshot); err != nil {
		return err
	}

	formatter, err := config.CreateFormatter(opts.Flags)
	if err != nil {
		return err
	}

	r, err := report.New(opts.Input, snapshot)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	if opts.Output == "" {
		if err := formatter.Format(os.Stdout, r); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	}
	return writeReportFile(opts.Output, formatter, r)
}

// writeReportFile writes the formatted report to a new file. No partial
// file is left behind if formatting fails.
func writeReportFile(path string, formatter report.Formatter, r *report.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}

	if err := formatter.Format(file, r); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("writing report: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", path, err)
	}
	return nil
}

func applyPageWrite(logger *log.Logger, opts options.Program, snapshot *sna.Snapshot) error {
	value, ok := opts.PageWrite()
	if !ok {
		return nil
	}

	if err := snapshot.Write7FFD(value); err != nil {
		return fmt.Errorf("writing paging port: %w", err)
	}
	logger.Debug("Paging port written",
		log.Hex("value", value),
		log.Int("high_bank", snapshot.HighBank()))
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates the report filename for a given input file
func GenerateOutputFilename(inputFile, format string) string {
	ext := filepath.Ext(inputFile)
	base := inputFile[:len(inputFile)-len(ext)]

	switch format {
	case report.FormatJSON:
		return base + ".json"
	case report.FormatYAML:
		return base + ".yaml"
	default:
		return base + ".txt"
	}
}

// OutputFilename returns the report file for an input file. In batch mode
// a set output option writes one report next to every input file.
func OutputFilename(opts options.Program, inputFile string) string {
	if opts.Batch != "" && opts.Output != "" {
		return GenerateOutputFilename(inputFile, opts.Format)
	}
	return opts.Output
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("zxsna",
		log.String("version", buildinfo.Version(version, commit, date)),
		log.Stringer("system", arch.ZXSpectrum))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
