package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "debug", want: zapcore.DebugLevel},
		{in: "INFO", want: zapcore.InfoLevel},
		{in: "warn", want: zapcore.WarnLevel},
		{in: "warning", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "loud", want: zapcore.InfoLevel, wantErr: true},
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

func TestParseLevel_EnvFallback(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "error")
	got, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.ErrorLevel, got)

	t.Setenv(LogLevelEnvVar, "")
	got, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, got)
}

func TestGetLogger_BeforeInitialize(t *testing.T) {
	logger = nil
	assert.NotNil(t, GetLogger())
	assert.NotPanics(t, func() { Info("ignored") })
}
