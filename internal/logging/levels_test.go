package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromString_Trace(t *testing.T) {
	l, err := LevelFromString("trace")
	require.NoError(t, err)
	assert.Equal(t, TraceLevel, l)
}

func TestLevelFromString_Standard(t *testing.T) {
	l, err := LevelFromString("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, l)
}

func TestLevelFromString_Invalid(t *testing.T) {
	_, err := LevelFromString("verbose")
	require.Error(t, err)
}
</content>
