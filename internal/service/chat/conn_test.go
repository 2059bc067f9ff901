package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnqueueAfterClose(t *testing.T) {
	conn := newTestConn(1, "alice")
	assert.True(t, conn.Enqueue([]byte(`{"event":"x"}`)))
	conn.Close()
	assert.False(t, conn.Enqueue([]byte(`{"event":"y"}`)))
}

func TestCloseIsIdempotent(t *testing.T) {
	conn := newTestConn(1, "alice")
	conn.Close()
	conn.Close() // must not panic
}

func TestSendEventFramesEnvelope(t *testing.T) {
	conn := newTestConn(1, "alice")
	conn.SendEvent("joined_room", map[string]string{"room": "group_1"})

	frames := drain(t, conn)
	if assert.Len(t, frames, 1) {
		assert.Equal(t, "joined_room", frames[0].Event)
	}
}
