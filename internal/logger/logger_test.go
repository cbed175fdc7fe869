package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, log)
}

func newBufferLogger(buf *bytes.Buffer, level slog.Level) {
	Set(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})))
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	newBufferLogger(&buf, slog.LevelInfo)

	Info("check-in recorded", "member_id", 7)

	output := buf.String()
	assert.Contains(t, output, "check-in recorded")
	assert.Contains(t, output, "member_id")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	newBufferLogger(&buf, slog.LevelInfo)

	Error("rental conflict")

	assert.Contains(t, buf.String(), "rental conflict")
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	newBufferLogger(&buf, slog.LevelDebug)

	Debug("overlap query ran")

	assert.Contains(t, buf.String(), "overlap query ran")
}

func TestDebugFilteredAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	newBufferLogger(&buf, slog.LevelInfo)

	Debug("should not appear")

	assert.Empty(t, buf.String())
}

func TestInfof(t *testing.T) {
	var buf bytes.Buffer
	newBufferLogger(&buf, slog.LevelInfo)

	Infof("series %s created", "abc-123")

	assert.Contains(t, buf.String(), "series abc-123 created")
}

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	newBufferLogger(&buf, slog.LevelInfo)

	Errorf("failed after %d attempts", 3)

	assert.Contains(t, buf.String(), "failed after 3 attempts")
}
