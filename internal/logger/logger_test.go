package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	defer SetLevel(zerolog.InfoLevel)

	require.NoError(t, Configure("trace"))
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())

	require.NoError(t, Configure(""))
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel(), "empty name keeps the level")

	assert.Error(t, Configure("loud"))
}

func TestSetOutput(t *testing.T) {
	defer SetLevel(zerolog.InfoLevel)
	SetLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	SetOutput(&buf)
	Log.Debug().Str("plugin", "Foo.esp").Msg("hello")

	assert.Contains(t, buf.String(), `"plugin":"Foo.esp"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
