package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStyledLogger_PrefixAndLevel(t *testing.T) {
	styled := NewStyledLogger("repl")

	assert.Equal(t, "repl ", styled.GetPrefix())
	assert.Equal(t, Logger.GetLevel(), styled.GetLevel())
}

func TestComponentLoggersWriteToConfiguredOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courseforge.log")
	require.NoError(t, Configure("debug", path, false))
	t.Cleanup(func() { require.NoError(t, Configure("info", "", false)) })

	GenerationEvent("coach", "submit", "session", "s-1")
	ServiceOperation("session", "create", "id", "s-1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "generation")
	assert.Contains(t, out, "Generation event")
	assert.Contains(t, out, "services")
	assert.Contains(t, out, "Service operation")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, log.ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, log.InfoLevel, parseLogLevel("unknown"))
}
