package logging

import (
	"context"
	"testing"

	"github.com/fyrsmithlabs/oicgw/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSecret_RedactsValue(t *testing.T) {
	tl := NewTestLogger()
	secret := config.Secret("super-secret-token")
	tl.Info(context.Background(), "token acquired", Secret("client_secret", secret))
	tl.AssertNoSecrets(t)
}

func TestRedactedString(t *testing.T) {
	f := RedactedString("authorization", "Bearer abc123")
	assert.Equal(t, zapcore.StringType, f.Type)
	assert.NotContains(t, f.String, "abc123")
	assert.Contains(t, f.String, "[REDACTED:")
}

func TestRedactingEncoder_FieldName(t *testing.T) {
	enc, err := NewRedactingEncoder(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), RedactionConfig{
		Enabled: true,
		Fields:  []string{"access_token"},
	})
	require.NoError(t, err)

	enc.AddString("access_token", "secret-value")
	enc.AddString("tool", "monitoringErrors")

	buf, err := enc.EncodeEntry(zapcore.Entry{Message: "test"}, nil)
	require.NoError(t, err)
	out := buf.String()
	assert.NotContains(t, out, "secret-value")
	assert.Contains(t, out, "monitoringErrors")
}

func TestRedactingEncoder_Pattern(t *testing.T) {
	enc, err := NewRedactingEncoder(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), RedactionConfig{
		Enabled:  true,
		Patterns: []string{`(?i)bearer\s+\S+`},
	})
	require.NoError(t, err)

	enc.AddString("header", "Bearer sk-abc123")
	buf, err := enc.EncodeEntry(zapcore.Entry{Message: "test"}, nil)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "sk-abc123")
}

func TestNewRedactingEncoder_InvalidPattern(t *testing.T) {
	_, err := NewRedactingEncoder(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), RedactionConfig{
		Enabled:  true,
		Patterns: []string{"("},
	})
	require.Error(t, err)
}
</content>
