package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug", false).GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("nonsense", true).GetLevel())
}

func TestAuditWritesStructuredFields(t *testing.T) {
	l := New("info", false)
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Audit("doctor1", "queue.advance", true, logrus.Fields{"current_token": 3})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Audit event", entry["message"])
	assert.Equal(t, "doctor1", entry["username"])
	assert.Equal(t, "queue.advance", entry["action"])
	assert.Equal(t, float64(3), entry["current_token"])
}
