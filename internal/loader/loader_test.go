package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/zxsna/internal/sna"
)

func TestLoad(t *testing.T) {
	logger := log.NewTestLogger(t)

	t.Run("load 48K snapshot", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, sna.Size48K))

		snapshot, err := New(logger).Load(tmpFile)
		assert.NoError(t, err)
		assert.NotNil(t, snapshot)
		assert.Equal(t, sna.Snapshot48, snapshot.Type())
	})

	t.Run("load 128K snapshot", func(t *testing.T) {
		data := make([]byte, sna.MinSize128K+5*sna.BankSize)
		data[sna.Size48K+2] = 0x04 // paging port

		snapshot, err := New(logger).Load(createTempFile(t, data))
		assert.NoError(t, err)
		assert.Equal(t, sna.Snapshot128, snapshot.Type())
		assert.Equal(t, 4, snapshot.HighBank())
		assert.Equal(t, sna.BankCount, snapshot.Banks().Count())
	})

	t.Run("error on invalid size", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, sna.Size48K+1))

		_, err := New(logger).Load(tmpFile)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, sna.ErrInvalidFileSize))
		assert.ErrorContains(t, err, "loading snapshot")
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New(logger).Load("/nonexistent/file.sna")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestLoadReader(t *testing.T) {
	data := make([]byte, sna.Size48K)
	data[sna.Size48K-1] = 0xAB

	snapshot, err := New(log.NewTestLogger(t)).LoadReader(bytes.NewReader(data))
	assert.NoError(t, err)

	b, err := snapshot.Peek(0xFFFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "test.sna")
	err := os.WriteFile(name, data, 0o600)
	assert.NoError(t, err)
	return name
}
