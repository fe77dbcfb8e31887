package calculation

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	l.Debugf("hidden %d", 1)
	l.Infof("[iter %5d] VU = %.6f", 100, 6.044)
	l.Warnf("didn't converge")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[iter   100] VU = 6.044000")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "didn't converge")
}

func TestNewSlogLoggerNil(t *testing.T) {
	l := NewSlogLogger(nil)
	assert.NotNil(t, l.L)
}
