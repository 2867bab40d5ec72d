package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    Level
		expected string
	}{
		{name: "debug level", level: LevelDebug, expected: "debug"},
		{name: "info level", level: LevelInfo, expected: "info"},
		{name: "warn level", level: LevelWarn, expected: "warn"},
		{name: "error level", level: LevelError, expected: "error"},
		{name: "unknown level", level: Level(99), expected: "level(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "INFO", want: LevelInfo},
		{input: "", want: LevelInfo},
		{input: "warning", want: LevelWarn},
		{input: " error ", want: LevelError},
		{input: "Warn", want: LevelWarn},
		{input: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_Ordering(t *testing.T) {
	t.Parallel()

	assert.Less(t, LevelDebug, LevelInfo)
	assert.Less(t, LevelInfo, LevelWarn)
	assert.Less(t, LevelWarn, LevelError)
	assert.Equal(t, LevelInfo, Level(0), "the zero value is info")
}

func TestF(t *testing.T) {
	t.Parallel()

	field := F("step", "winget:bootstrap")
	assert.Equal(t, "step", field.Key)
	assert.Equal(t, "winget:bootstrap", field.Value)
}

type stubLogger struct{ Logger }

func TestLoggerContext(t *testing.T) {
	t.Parallel()

	assert.Nil(t, LoggerFromContext(context.Background()))

	logger := &stubLogger{}
	ctx := ContextWithLogger(context.Background(), logger)
	assert.Same(t, logger, LoggerFromContext(ctx))
}
