package logger

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error"} {
		t.Run(level, func(t *testing.T) {
			logger, err := New(level)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}

	for _, level := range []string{"", "trace", "INVALID"} {
		t.Run("rejects "+level, func(t *testing.T) {
			logger, err := New(level)
			assert.Error(t, err)
			assert.Nil(t, logger)
		})
	}
}

func TestNewWithWriter_CarriesServiceName(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewWithWriter("info", &buf)
	require.NoError(t, err)

	logger.Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "key")
	assert.Contains(t, out, serviceName)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{env: "production", want: true},
		{env: "prod", want: true},
		{env: "PRODUCTION", want: true},
		{env: "development", want: false},
		{env: "", want: false},
	}

	for _, tt := range tests {
		t.Run("GO_ENV="+tt.env, func(t *testing.T) {
			t.Setenv("GO_ENV", tt.env)
			assert.Equal(t, tt.want, isProduction())
		})
	}
}

func TestContextHelpers(t *testing.T) {
	tests := []struct {
		name string
		tag  func(*slog.Logger) *slog.Logger
		want []string
	}{
		{
			name: "component",
			tag:  func(l *slog.Logger) *slog.Logger { return WithComponent(l, "gateway") },
			want: []string{"component", "gateway"},
		},
		{
			name: "identity",
			tag:  func(l *slog.Logger) *slog.Logger { return WithUser(l, "id-123") },
			want: []string{"identity_id", "id-123"},
		},
		{
			name: "tenant",
			tag:  func(l *slog.Logger) *slog.Logger { return WithTenant(l, "tenant-456") },
			want: []string{"tenant_id", "tenant-456"},
		},
		{
			name: "request",
			tag:  func(l *slog.Logger) *slog.Logger { return WithRequest(l, "req-789", "GET", "/v1/tenants") },
			want: []string{"request_id", "req-789", "method", "GET", "path", "/v1/tenants"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base, err := NewWithWriter("info", &buf)
			require.NoError(t, err)

			tt.tag(base).Info("tagged")

			out := buf.String()
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter("info", &buf)
	require.NoError(t, err)

	LogError(logger, assert.AnError, "lookup failed", "table", "identities")

	out := buf.String()
	assert.Contains(t, out, "lookup failed")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "identities")
}

func TestLogDuration(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter("info", &buf)
	require.NoError(t, err)

	LogDuration(logger, time.Now().Add(-100*time.Millisecond), "token_cleanup", "deleted", 3)

	out := buf.String()
	assert.Contains(t, out, "operation completed")
	assert.Contains(t, out, "token_cleanup")
	assert.Contains(t, out, "duration_ms")
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		emit    func(*slog.Logger)
		visible bool
	}{
		{
			name:    "debug hidden at info",
			level:   "info",
			emit:    func(l *slog.Logger) { l.Debug("d") },
			visible: false,
		},
		{
			name:    "debug shown at debug",
			level:   "debug",
			emit:    func(l *slog.Logger) { l.Debug("d") },
			visible: true,
		},
		{
			name:    "warn hidden at error",
			level:   "error",
			emit:    func(l *slog.Logger) { l.Warn("w") },
			visible: false,
		},
		{
			name:    "error shown at error",
			level:   "error",
			emit:    func(l *slog.Logger) { l.Error("e") },
			visible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewWithWriter(tt.level, &buf)
			require.NoError(t, err)

			tt.emit(logger)

			if tt.visible {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
