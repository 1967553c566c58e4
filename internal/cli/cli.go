// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	retrocli "github.com/retroenv/retrogolib/cli"
	"github.com/retroenv/zxsna/internal/options"
	"github.com/retroenv/zxsna/internal/report"
)

var errNoInput = errors.New("no snapshot file given")

type positional struct {
	File string `arg:"positional" usage:"snapshot file to inspect"`
}

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := retrocli.NewFlagSet("zxsna")
	var opts options.Program
	var pos positional
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Flags", &opts.Flags)
	flags.AddPositional(&pos)

	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		// the flag set already printed the usage
		return opts, &UsageError{err: err}
	}
	if pos.File == "" && opts.Input == "" && opts.Batch == "" {
		return opts, &UsageError{flags: flags, err: errNoInput}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" && pos.File != "" {
		opts.Input = pos.File
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *retrocli.FlagSet
	err   error
}

func (e *UsageError) Error() string {
	return e.err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// ShowUsage prints the usage and all flag defaults, unless the flag parser
// already printed them.
func (e *UsageError) ShowUsage() {
	if e.flags != nil {
		e.flags.ShowUsage()
	}
}

// validateArgs checks that no arguments follow the snapshot file
func validateArgs(flags *retrocli.FlagSet, args []string) error {
	if len(args) == 0 {
		return nil
	}

	arg := args[0]
	if strings.HasPrefix(arg, "-") {
		return &UsageError{
			flags: flags,
			err:   fmt.Errorf("potential argument %s found after snapshot file, please pass the snapshot file as last argument", arg),
		}
	}
	return &UsageError{
		flags: flags,
		err:   fmt.Errorf("unexpected argument %s", arg),
	}
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Format = strings.ToLower(opts.Format)
	if opts.Format == "yml" {
		opts.Format = report.FormatYAML
	}

	if opts.Page < options.NoPageWrite || opts.Page > 0xFF {
		return fmt.Errorf("invalid paging port value %d, expected 0-255", opts.Page)
	}

	for _, valid := range report.Formats {
		if opts.Format == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported report format: %s. Valid options: %s",
		opts.Format, strings.Join(report.Formats, ", "))
}
