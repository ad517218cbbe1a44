package trigvk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggersFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logs, err := NewLoggers(dir)
	require.NoError(t, err)

	logs.Info.Println("device picked")
	logs.Warn.Println("layer missing")
	logs.Error.Println("device lost")
	require.NoError(t, logs.Close())

	for file, want := range map[string]string{
		"info_log.txt":  "INFO: ",
		"warn_log.txt":  "WARNING: ",
		"error_log.txt": "ERROR: ",
	} {
		data, err := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, err)
		assert.Contains(t, string(data), want, file)
		assert.Contains(t, string(data), "logging_test.go", file)
	}
}

func TestNewLoggersStderr(t *testing.T) {
	logs, err := NewLoggers("")
	require.NoError(t, err)
	assert.NoError(t, logs.Close())
}
