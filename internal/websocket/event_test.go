package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"title": "Salary",
		"value": "5000.00",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
	after := time.Now()

	assert.Equal(t, "transaction.created", evt.Type)
	assert.Equal(t, EntityTypeTransaction, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
	assert.Equal(t, time.UTC, evt.Timestamp.Location())
}

func TestEvent_ToJSON(t *testing.T) {
	evt := Event{
		Type:      "transaction.deleted",
		Entity:    EntityTypeTransaction,
		Payload:   map[string]interface{}{"id": "8f0c"},
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "transaction.deleted", decoded["type"])
	assert.Equal(t, "transaction", decoded["entity"])
	assert.Equal(t, "2026-03-01T12:00:00Z", decoded["timestamp"])
	assert.Equal(t, map[string]interface{}{"id": "8f0c"}, decoded["payload"])
}

func TestTransactionEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"title": "Rent"}

	tests := []struct {
		name     string
		build    func(interface{}) Event
		expected string
	}{
		{"TransactionCreated", TransactionCreated, "transaction.created"},
		{"TransactionDeleted", TransactionDeleted, "transaction.deleted"},
		{"TransactionsImported", TransactionsImported, "transaction.imported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := tt.build(payload)
			assert.Equal(t, tt.expected, evt.Type)
			assert.Equal(t, EntityTypeTransaction, evt.Entity)
			assert.Equal(t, payload, evt.Payload)
		})
	}
}
