package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestL_LazyInit(t *testing.T) {
	log = nil
	l := L()
	require.NotNil(t, l)
	assert.Same(t, l, L())
	assert.NotNil(t, S())
}

func TestInit_LevelOverride(t *testing.T) {
	Init("escher-test", "prod", "warn")
	t.Cleanup(func() { log = nil })

	assert.False(t, L().Core().Enabled(zapcore.DebugLevel), "debug must be disabled at warn level")
	assert.True(t, L().Core().Enabled(zapcore.WarnLevel), "warn must be enabled")
	Sync()
}
