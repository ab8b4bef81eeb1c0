package logging

import (
	"errors"
	"os"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud")
	require.Error(t, err)

	logger, err := New("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestErrorFields(t *testing.T) {
	plain := ErrorFields(errors.New("boom"))
	assert.Equal(t, []any{"error", "boom"}, plain)

	wrapped := goerr.Wrap(errors.New("boom"), "save failed", goerr.V("key", "history"))
	fields := ErrorFields(wrapped)
	assert.Contains(t, fields, "key")
	assert.Contains(t, fields, "history")
}

func TestNewWritesToFile(t *testing.T) {
	path := t.TempDir() + "/app.log"
	logger, err := New("info", path)
	require.NoError(t, err)

	logger.Infow("hello", "k", "v")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
