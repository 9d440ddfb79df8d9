package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
)

func TestLogEmitterWritesDebugLine(t *testing.T) {
	var buf bytes.Buffer
	e := NewLogEmitter(zerolog.New(&buf).Level(zerolog.DebugLevel))
	ev := ports.AuditEvent{Event: "todo.delete", UserID: "u-1", Success: false, Err: "forbidden", At: time.Now().UTC()}
	require.NoError(t, e.Emit(context.Background(), ev))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "audit", line["component"])
	assert.Equal(t, "todo.delete", line["event"])
	assert.Equal(t, "u-1", line["user_id"])
	assert.Equal(t, "forbidden", line["error"])
	assert.Equal(t, false, line["success"])
	assert.NotContains(t, line, "request_id")
}

func TestLogEmitterQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	e := NewLogEmitter(zerolog.New(&buf).Level(zerolog.InfoLevel))
	require.NoError(t, e.Emit(context.Background(), ports.AuditEvent{Event: "user.login", Success: true}))
	assert.Zero(t, buf.Len())
}
