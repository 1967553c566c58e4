// Package loader handles snapshot file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxsna/internal/sna"
)

// Loader handles loading snapshot files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new snapshot loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the complete snapshot file and parses it.
func (l *Loader) Load(path string) (*sna.Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	snapshot, err := l.LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", path, err)
	}
	return snapshot, nil
}

// LoadReader reads a snapshot until EOF and parses it.
func (l *Loader) LoadReader(reader io.Reader) (*sna.Snapshot, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	snapshot, err := sna.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	l.logger.Debug("Snapshot loaded",
		log.String("machine", snapshot.Type().String()),
		log.Int("size", len(data)),
		log.Int("banks", snapshot.Banks().Count()),
		log.Int("high_bank", snapshot.HighBank()))
	return snapshot, nil
}
