package websocket

// EventPublisher delivers ledger events to subscribers. Publishing is best effort.
type EventPublisher interface {
	Publish(event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event to all clients
func (h *Hub) Publish(event Event) {
	h.Broadcast(event)
}

// MultiPublisher forwards every event to each of its publishers in order
type MultiPublisher []EventPublisher

// Publish implements EventPublisher
func (m MultiPublisher) Publish(event Event) {
	for _, p := range m {
		p.Publish(event)
	}
}

// NoOpPublisher is a publisher that does nothing (for testing or when events are disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(event Event) {}
