package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "warn")

	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown", "companyID", 7)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, float64(7), entry["companyID"])
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctxLogger := NewWithWriter(buf, "debug").With("requestID", "abc")
	ctx := ToContext(context.Background(), ctxLogger)

	InfoFromContext(ctx, "import finished")
	assert.Contains(t, buf.String(), `"requestID":"abc"`)
	assert.Contains(t, buf.String(), "import finished")
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.Same(t, L, FromContext(context.Background()))
}
