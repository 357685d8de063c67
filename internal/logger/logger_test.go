package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, l)

	dev, err := New(Config{Level: "info", Development: true})
	require.NoError(t, err)
	require.NotNil(t, dev)
}

func TestFromZap_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(String("run_id", "r-1"))

	l.Warn("book skipped", String("title", "Dune"), Error(errors.New("boom")))

	entries := logs.FilterMessage("book skipped").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "r-1", fields["run_id"])
	assert.Equal(t, "Dune", fields["title"])
	assert.Equal(t, "boom", fields["error"])
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Info("ignored", Int("n", 1))
	assert.NotNil(t, l.With(Bool("x", true)))
}
