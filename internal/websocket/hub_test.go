package websocket

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id       string
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id string) *mockClient {
	return &mockClient{
		id:       id,
		messages: make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1")
	client2 := newMockClient("client-2")

	hub.Register(client1)
	hub.Register(client2)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client2)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_Broadcast_FanOut(t *testing.T) {
	hub := NewHub()

	clients := make([]*mockClient, 5)
	for i := range clients {
		clients[i] = newMockClient(fmt.Sprintf("client-%d", i))
		hub.Register(clients[i])
	}

	hub.Broadcast(TransactionCreated(map[string]interface{}{"title": "Salary"}))

	// Give goroutines time to process
	require.Eventually(t, func() bool {
		for _, c := range clients {
			if len(c.GetMessages()) != 1 {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}

func TestHub_Broadcast_SkipsUnregistered(t *testing.T) {
	hub := NewHub()

	stays := newMockClient("stays")
	leaves := newMockClient("leaves")
	hub.Register(stays)
	hub.Register(leaves)
	hub.Unregister(leaves)

	hub.Broadcast(TransactionDeleted(map[string]interface{}{"id": "abc"}))

	require.Eventually(t, func() bool {
		return len(stays.GetMessages()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, leaves.GetMessages())
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	clientCount := 50

	clients := make([]*mockClient, clientCount)
	for i := 0; i < clientCount; i++ {
		clients[i] = newMockClient(fmt.Sprintf("client-%d", i))
	}

	for i := 0; i < clientCount; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			hub.Register(clients[idx])
		}(i)
	}
	wg.Wait()
	assert.Equal(t, clientCount, hub.ClientCount())

	// Concurrently broadcast and unregister
	for i := 0; i < clientCount; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			hub.Broadcast(TransactionCreated(map[string]interface{}{"n": idx}))
		}(i)
		go func(idx int) {
			defer wg.Done()
			hub.Unregister(clients[idx])
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_UnregisterNonexistent(t *testing.T) {
	hub := NewHub()

	require.NotPanics(t, func() {
		hub.Unregister(newMockClient("client-1"))
	})
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()

	require.NotPanics(t, func() {
		hub.Broadcast(TransactionCreated(map[string]interface{}{"id": "1"}))
	})
}

func TestHub_BroadcastUnserializablePayload(t *testing.T) {
	hub := NewHub()
	client := newMockClient("client-1")
	hub.Register(client)

	hub.Broadcast(TransactionCreated(make(chan int)))

	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, client.GetMessages())
}
