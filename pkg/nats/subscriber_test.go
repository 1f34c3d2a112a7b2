package nats

import (
	"testing"
	"time"

	"incorporate-run-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := []byte(`{"type":"SIGNATURE_SIGNED","data":{"document_id":"d1"},"occurred_at":"2026-03-01T12:00:00Z"}`)

	ev, err := decode("events.SIGNATURE_SIGNED", raw)
	require.NoError(t, err)
	assert.Equal(t, events.BaseEvent{Type: "SIGNATURE_SIGNED", Data: map[string]interface{}{"document_id": "d1"}, OccurredAt: at}, ev)
}

func TestDecodeBarePayloadUsesSubject(t *testing.T) {
	ev, err := decode("events.FOUNDER_INVITED", []byte(`{"founder_id":"f1"}`))
	require.NoError(t, err)
	assert.Equal(t, "FOUNDER_INVITED", ev.Type)
	assert.Equal(t, "f1", ev.Data["founder_id"])
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decode("events.X", []byte(`not json`))
	assert.Error(t, err)
}
