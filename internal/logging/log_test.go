package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"", INFO},
		{" Info ", INFO},
		{"warn", WARNING},
		{"WARNING", WARNING},
		{"error", ERROR},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, `unknown log level "verbose"`)
}

func TestSetLevel(t *testing.T) {
	core, logs := observer.New(atomicLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()
	defer SetLevel(INFO)

	SetLevel(WARNING)
	Info("dropped %d", 1)
	Warn("kept %d", 2)

	SetLevel(DEBUG)
	Debug("kept %d", 3)
	With("request_id", "abc").Info("request")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "kept 2", entries[0].Message)
	assert.Equal(t, "kept 3", entries[1].Message)
	assert.Equal(t, "abc", entries[2].ContextMap()["request_id"])
}
