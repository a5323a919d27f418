package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestComponent_FijaCampo(t *testing.T) {
	l := New(Config{Env: "production", Level: "error"}).Component("link_sync")
	assert.Equal(t, zerolog.ErrorLevel, l.Zerolog().GetLevel())
	assert.Nil(t, Nop().Info(), "Nop descarta todos los eventos")
}
