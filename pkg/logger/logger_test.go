package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "bot.log")

	log, err := New(file, "info")
	require.NoError(t, err)

	log.Info("user %d selected branch %s", 42, "Москва")
	log.Debug("hidden %s", "debug")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "user 42 selected branch Москва")
	assert.Contains(t, content, "INFO")
	assert.NotContains(t, content, "hidden debug")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "info"},
		{"DEBUG", "debug"},
		{"warning", "warn"},
		{" error ", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lvl, err := parseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lvl.String())
		})
	}
}
