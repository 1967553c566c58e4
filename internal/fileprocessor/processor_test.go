package fileprocessor

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxsna/internal/options"
	"github.com/retroenv/zxsna/internal/report"
	"github.com/retroenv/zxsna/internal/sna"
)

func writeSnapshot(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, make([]byte, size), 0o600))
	return path
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	logger := log.NewTestLogger(t)

	tests := []struct {
		name       string
		size       int
		flags      options.Flags
		wantErr    error
		wantOutput string
	}{
		{
			name:       "48K text report",
			size:       sna.Size48K,
			flags:      options.Flags{Format: report.FormatText, Page: options.NoPageWrite},
			wantOutput: "machine:  48K",
		},
		{
			name:       "128K yaml report with paging write",
			size:       sna.MinSize128K + 5*sna.BankSize,
			flags:      options.Flags{Format: report.FormatYAML, Page: 0x16},
			wantOutput: "high_bank: 6",
		},
		{
			name:    "48K with paging write",
			size:    sna.Size48K,
			flags:   options.Flags{Format: report.FormatJSON, Page: 0x01},
			wantErr: sna.ErrInvalidMachineState,
		},
		{
			name:    "invalid size",
			size:    sna.Size48K - 1,
			flags:   options.Flags{Format: report.FormatText, Page: options.NoPageWrite},
			wantErr: sna.ErrInvalidFileSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeSnapshot(t, dir, "in.sna", tt.size)
			output := filepath.Join(dir, "out.report")
			opts := options.Program{
				Parameters: options.Parameters{Input: input, Output: output},
				Flags:      tt.flags,
			}

			err := ProcessFile(context.Background(), logger, opts)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)

			data, err := os.ReadFile(output)
			assert.NoError(t, err)
			assert.True(t, strings.Contains(string(data), tt.wantOutput))
		})
	}
}

func TestProcessFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options.Program{Parameters: options.Parameters{Input: "unused.sna"}}
	err := ProcessFile(ctx, log.NewTestLogger(t), opts)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "a.sna", 1)
	writeSnapshot(t, dir, "b.sna", 1)
	writeSnapshot(t, dir, "c.z80", 1)

	opts := &options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.sna")}}
	files, err := GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = &options.Program{Parameters: options.Parameters{Input: "game.sna"}}
	files, err = GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "game.sna", files[0])
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "dir/game.txt", GenerateOutputFilename("dir/game.sna", report.FormatText))
	assert.Equal(t, "game.json", GenerateOutputFilename("game.sna", report.FormatJSON))
	assert.Equal(t, "game.yaml", GenerateOutputFilename("game.SNA", report.FormatYAML))
}

func TestProcessFileLoadError(t *testing.T) {
	dir := t.TempDir()
	flags := options.Flags{Format: report.FormatText, Page: options.NoPageWrite}

	opts := options.Program{
		Parameters: options.Parameters{Input: writeSnapshot(t, dir, "short.sna", 100)},
		Flags:      flags,
	}
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.True(t, errors.Is(err, sna.ErrInvalidFileSize))
	assert.Equal(t, 1, strings.Count(err.Error(), "loading snapshot"))

	opts.Input = filepath.Join(dir, "missing.sna")
	err = ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

var errFormat = errors.New("format failed")

type failingFormatter struct{}

func (failingFormatter) Format(w io.Writer, _ *report.Report) error {
	_, _ = io.WriteString(w, "partial")
	return errFormat
}

func TestWriteReportFile(t *testing.T) {
	dir := t.TempDir()
	s, err := sna.Parse(make([]byte, sna.Size48K))
	assert.NoError(t, err)
	r, err := report.New("in.sna", s)
	assert.NoError(t, err)

	t.Run("format error removes the file", func(t *testing.T) {
		path := filepath.Join(dir, "failed.txt")
		err := writeReportFile(path, failingFormatter{}, r)
		assert.True(t, errors.Is(err, errFormat))

		_, err = os.Stat(path)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("success", func(t *testing.T) {
		path := filepath.Join(dir, "ok.txt")
		assert.NoError(t, writeReportFile(path, report.TextFormatter{}, r))

		data, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "machine:  48K"))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := writeReportFile(filepath.Join(dir, "missing", "out.txt"), report.TextFormatter{}, r)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		name   string
		params options.Parameters
		want   string
	}{
		{
			name:   "single file to stdout",
			params: options.Parameters{Input: "game.sna"},
			want:   "",
		},
		{
			name:   "single file to output",
			params: options.Parameters{Input: "game.sna", Output: "x"},
			want:   "x",
		},
		{
			name:   "batch to stdout",
			params: options.Parameters{Batch: "*.sna"},
			want:   "",
		},
		{
			name:   "batch with one match",
			params: options.Parameters{Batch: "*.sna", Output: "x"},
			want:   "dir/game.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: tt.params,
				Flags:      options.Flags{Format: report.FormatJSON},
			}
			assert.Equal(t, tt.want, OutputFilename(opts, "dir/game.sna"))
		})
	}
}
