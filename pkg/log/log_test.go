package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{name: "debug", level: "DEBUG", want: zapcore.DebugLevel},
		{name: "info", level: "info", want: zapcore.InfoLevel},
		{name: "warn", level: "Warn", want: zapcore.WarnLevel},
		{name: "error", level: "ERROR", want: zapcore.ErrorLevel},
		{name: "fatal", level: "FATAL", want: zapcore.FatalLevel},
		{name: "unknown falls back to info", level: "verbose", want: zapcore.InfoLevel},
		{name: "empty falls back to info", level: "", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.level))
		})
	}
}

func TestLogConfigValidate(t *testing.T) {
	conf := &LogConfig{Output: "file", Path: "/tmp/logs"}
	require.NoError(t, conf.Validate())
	assert.Equal(t, 100, conf.RotateSize)
	assert.Equal(t, 10, conf.RotateNum)
	assert.Equal(t, 7, conf.KeepDays)

	bad := &LogConfig{Output: "file"}
	assert.Error(t, bad.Validate())
}

func TestNewLogStdout(t *testing.T) {
	conf := SetDefaults()
	logger, err := NewLog(conf)
	require.NoError(t, err)
	require.NotNil(t, logger)

	// 全局方法在初始化后可用
	Infow("test message", "key", "value")
	Debugf("debug %s", "message")
	require.NotPanics(t, func() { _ = Sync() })
}
