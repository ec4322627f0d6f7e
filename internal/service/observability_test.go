package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(NewLogger(&buf))

	observe(context.Background(), obs, "reorder", time.Now(), map[string]any{"moved": "a1"}, nil)
	observe(context.Background(), obs, "import", time.Now(), nil, errors.New("disk full"))

	out := buf.String()
	assert.Contains(t, out, "use_case=reorder")
	assert.Contains(t, out, "moved=a1")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `error="disk full"`)
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
}

func TestLogUseCaseObserver_SortsFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(NewLogger(&buf))

	observe(context.Background(), obs, "reorder", time.Now(), map[string]any{"target": "b", "moved": "a", "noop": false}, nil)

	out := buf.String()
	assert.Less(t, strings.Index(out, "moved="), strings.Index(out, "noop="))
	assert.Less(t, strings.Index(out, "noop="), strings.Index(out, "target="))
}
