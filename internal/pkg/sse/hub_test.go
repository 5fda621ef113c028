package sse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublish(t *testing.T) {
	h := NewHub()
	a, closeA := h.Subscribe("u1")
	b, closeB := h.Subscribe("u1")
	defer closeB()

	assert.Equal(t, 2, h.Subscribers("u1"))
	assert.Equal(t, 2, h.Publish("u1", Event{Name: "ping"}))
	assert.Equal(t, 0, h.Publish("u2", Event{Name: "ping"}))

	assert.Equal(t, "ping", (<-a).Name)
	assert.Equal(t, "ping", (<-b).Name)

	closeA()
	closeA()
	assert.Equal(t, 1, h.Subscribers("u1"))
	_, open := <-a
	assert.False(t, open)
}

func TestHubSkipsFullBuffer(t *testing.T) {
	h := NewHub()
	_, unsubscribe := h.Subscribe("u1")
	defer unsubscribe()

	for i := 0; i < bufferSize; i++ {
		require.Equal(t, 1, h.Publish("u1", Event{Name: "x"}))
	}
	assert.Equal(t, 0, h.Publish("u1", Event{Name: "x"}))
}

func TestEventWriteTo(t *testing.T) {
	var buf bytes.Buffer
	_, err := Event{ID: "1", Name: "request.status_changed", Data: map[string]string{"status": "DISETUJUI"}}.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "id: 1\nevent: request.status_changed\ndata: {\"status\":\"DISETUJUI\"}\n\n", buf.String())
}
