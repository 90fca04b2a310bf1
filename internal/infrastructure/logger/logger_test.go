package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	l, err := New(nil)
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	l.Debug("dropped")
	l.Info("invoice created", zap.String("number", "INV-1"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"invoice created"`)
	assert.Contains(t, string(data), `"number":"INV-1"`)
	assert.NotContains(t, string(data), "dropped")
}

func TestNew_TeesExtraCores(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l, err := New(&Config{Level: "info", Format: "json", Output: "stderr"}, core)
	require.NoError(t, err)

	l.Info("report generated")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "report generated", logs.All()[0].Message)
}

func TestFromContext(t *testing.T) {
	t.Run("no logger stored returns nop", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("request and tenant fields attached", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		tenantID := uuid.New()

		ctx, _ := WithRequestID(context.Background(), zap.New(core), "req-1")
		ctx = WithTenant(ctx, tenantID)
		FromContext(ctx).Info("posted")

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, tenantID.String(), fields["tenant_id"])
		assert.Equal(t, "req-1", GetRequestID(ctx))
		assert.Equal(t, tenantID, GetTenantID(ctx))
	})

	t.Run("tenant without logger", func(t *testing.T) {
		tenantID := uuid.New()
		ctx := WithTenant(context.Background(), tenantID)
		assert.Equal(t, tenantID, GetTenantID(ctx))
		assert.Empty(t, GetRequestID(ctx))
	})
}
