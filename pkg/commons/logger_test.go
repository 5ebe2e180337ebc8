package commons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplicationLogger_Defaults(t *testing.T) {
	l, err := NewApplicationLogger()
	require.NoError(t, err)
	assert.NotNil(t, l)
	l.Debugf("hello %s", "world")
	l.Infow("structured", "call_sid", "CA123")
}

func TestNewApplicationLogger_InvalidLevel(t *testing.T) {
	l, err := NewApplicationLogger(Level("loud"))
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestNewApplicationLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewApplicationLogger(Name("test-logger"), Path(dir), Level("info"))
	require.NoError(t, err)

	l.Infof("call started: %s", "CA42")
	l.Debugf("filtered out")
	_ = l.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "test-logger.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "call started: CA42")
	assert.NotContains(t, string(data), "filtered out")
}
