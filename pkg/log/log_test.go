package log

import (
	contextPkg "KukoRobot/pkg/context"
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	l := NewLogger()
	var buf bytes.Buffer
	out := l.Out
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() { l.SetOutput(out) })
	return &buf
}

func TestErrorWithTraceIDReusesRequestID(t *testing.T) {
	buf := captureLogs(t)

	traceID := ErrorWithTraceID(Fields{"request_id": "01HZX"}, "boom")

	assert.Equal(t, "01HZX", traceID)
	assert.Contains(t, buf.String(), `"trace_id":"01HZX"`)
}

func TestErrorWithTraceIDGenerates(t *testing.T) {
	captureLogs(t)

	traceID := ErrorWithTraceID(nil, "boom")

	assert.Len(t, traceID, 36)
}

func TestWithContext(t *testing.T) {
	captureLogs(t)

	ctx := contextPkg.WithOperatorID(contextPkg.WithRequestID(context.Background(), "req-1"), "op-1")
	e := WithContext(ctx)

	assert.Equal(t, "req-1", e.Data["request_id"])
	assert.Equal(t, "op-1", e.Data["operator_id"])
}
