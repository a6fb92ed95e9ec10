package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yaac/internal/adapters/logger"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)
	return l, &buf
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		value string
		want  logger.Format
	}{
		{"auto", logger.FormatAuto},
		{"pretty", logger.FormatPretty},
		{"JSON", logger.FormatJSON},
		{" json ", logger.FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := logger.ParseFormat(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := logger.ParseFormat("yaml")
	require.ErrorContains(t, err, domain.ErrInvalidLogFormat.Error())
}

func TestLogger_Pretty(t *testing.T) {
	buildFailure := zerr.With(
		zerr.Wrap(zerr.With(domain.ErrAssetNotFound, "asset", "app.less"), domain.ErrBuildFailed.Error()),
		"failed", 1,
	)
	writeFailure := zerr.With(
		zerr.Wrap(errors.New("disk full"), domain.ErrOutputWriteFailed.Error()),
		"path", "/out/app.css",
	)

	tests := []struct {
		name string
		log  func(l *logger.Logger)
	}{
		{"info_basic", func(l *logger.Logger) { l.Info("compiled app.less -> /static/app-3f2a.css") }},
		{"warn_basic", func(l *logger.Logger) { l.Warn("search path entry does not exist") }},
		{"error_chain", func(l *logger.Logger) { l.Error(buildFailure) }},
		{"error_stdlib_cause", func(l *logger.Logger) { l.Error(writeFailure) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestLogger(t)
			tt.log(l)

			g := goldie.New(t)
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	l, buf := newTestLogger(t)
	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorPlainChain(t *testing.T) {
	l, buf := newTestLogger(t)
	l.Error(fmt.Errorf("outer: %w", errors.New("inner")))
	assert.Equal(t, "✗ Error: outer: inner\n", buf.String())
}

func TestLogger_JSON(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetJSON(true)

	err := zerr.Wrap(zerr.With(domain.ErrAssetNotFound, "asset", "app.less"), "resolve failed")
	l.Error(err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "resolve failed", record["msg"])
	assert.Equal(t, "app.less", record["asset"])
	assert.Contains(t, record["error"], "asset not found")
}

func TestLogger_JSONInfo(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetJSON(true)
	l.Info("watching")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "watching", record["msg"])
}

func TestLogger_SetJSONKeepsOutput(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetJSON(true)
	l.SetJSON(false)
	l.Info("plain")
	assert.Equal(t, "plain\n", buf.String())
}

func TestLogger_Concurrent(t *testing.T) {
	l, buf := newTestLogger(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%5 == 0 {
				l.SetJSON(i%10 == 0)
			}
			l.Info("tick")
		}()
	}
	wg.Wait()

	l.SetOutput(nil)
	assert.Contains(t, buf.String(), "tick")
}

func TestCollectErrorEntries(t *testing.T) {
	err := zerr.With(errors.New("permission denied"), "path", "/tmp/x")
	err = zerr.Wrap(err, "failed to write compiled asset")

	entries := logger.CollectErrorEntries(err)
	require.Len(t, entries, 2)
	assert.Equal(t, "failed to write compiled asset", entries[0].Message)
	assert.Equal(t, "permission denied", entries[1].Message)
}

func TestFormatErrorEntries_Multiline(t *testing.T) {
	got := logger.FormatErrorEntries([]logger.ErrorEntry{
		{Message: "first\nsecond"},
		{Message: "cause", Metadata: map[string]any{"b": 2, "a": 1}},
	})

	want := "Error: first\n" +
		"       second\n" +
		"\n" +
		"  Caused by:\n" +
		"    → cause\n" +
		"      a: 1\n" +
		"      b: 2"
	assert.Equal(t, want, got)
}
