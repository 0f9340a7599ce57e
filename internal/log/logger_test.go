package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(uint32(logrus.InfoLevel), false, false)
	SetOutput(&buf)
	defer SetLogger(uint32(logrus.InfoLevel), false, false)

	Debug("hidden", "k", 1)
	assert.Empty(t, buf.String())
	assert.False(t, IsDebug())

	Info("search started", "threads", 4, "target", 2)
	out := buf.String()
	assert.Contains(t, out, `msg="search started"`)
	assert.Contains(t, out, "threads=4")
	assert.Contains(t, out, "target=2")

	buf.Reset()
	Warnf("sink %s failed", "keyfile")
	assert.Contains(t, buf.String(), "sink keyfile failed")
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(uint32(logrus.TraceLevel), true, false)
	SetOutput(&buf)
	defer SetLogger(uint32(logrus.InfoLevel), false, false)

	assert.True(t, IsDebug())
	Error("write failed", "err", fmt.Errorf("disk full"), "path", "/tmp/x")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "write failed", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "/tmp/x", entry["path"])
}

func TestWithFieldsOddAndNonString(t *testing.T) {
	entry := WithFields("a", 1, 2, "b", "dangling")
	assert.Equal(t, 1, entry.Data["a"])
	assert.Len(t, entry.Data, 1)
}
