package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitForCLI_WritesSubsystem(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("Registry", "hidden %d", 1)
	Info("Registry", "registered %s", "window")
	Error("Binding", errors.New("boom"), "construction failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "registered window")
	assert.Contains(t, out, "subsystem=Registry")
	assert.Contains(t, out, "error=boom")
}

func TestInitForCapture_FiltersByLevel(t *testing.T) {
	defer Reset()

	entries := InitForCapture(LevelWarn)

	Info("Scope", "ignored")
	Warn("Scope", "kept %s", "entry")

	require.Len(t, entries, 1)
	entry := <-entries
	assert.Equal(t, LevelWarn, entry.Level)
	assert.Equal(t, "Scope", entry.Subsystem)
	assert.Equal(t, "kept entry", entry.Message)
}

func TestUninitializedLoggingIsSilent(t *testing.T) {
	Reset()
	assert.NotPanics(t, func() {
		Info("Registry", "nobody listens")
	})
}
