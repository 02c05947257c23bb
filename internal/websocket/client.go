package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Peers only ever send control frames
	maxInboundSize = 512

	// Ledger events queued for one connection before it is dropped
	streamBacklog = 256
)

// ErrStreamBacklogged is returned when a connection falls too far behind the ledger
var ErrStreamBacklogged = errors.New("event stream backlogged")

// Stream feeds ledger events to one WebSocket connection.
// It is send-only: anything the peer sends besides control frames is discarded.
type Stream struct {
	id    string
	conn  *websocket.Conn
	hub   *Hub
	queue chan []byte
	done  chan struct{}
	once  sync.Once
}

// NewStream wraps an upgraded connection. Call Run to start delivering events.
func NewStream(conn *websocket.Conn, hub *Hub) *Stream {
	return newStream(conn, hub, streamBacklog)
}

func newStream(conn *websocket.Conn, hub *Hub, backlog int) *Stream {
	return &Stream{
		id:    uuid.New().String(),
		conn:  conn,
		hub:   hub,
		queue: make(chan []byte, backlog),
		done:  make(chan struct{}),
	}
}

// ID returns the stream's unique identifier
func (s *Stream) ID() string {
	return s.id
}

// Send queues an encoded event without blocking the publisher.
// A stream whose backlog is full is closed.
func (s *Stream) Send(data []byte) error {
	select {
	case <-s.done:
		return ErrClientClosed
	default:
	}

	select {
	case s.queue <- data:
		return nil
	case <-s.done:
		return ErrClientClosed
	default:
		s.Close()
		return ErrStreamBacklogged
	}
}

// Close stops the stream. Run tears the connection down. Calling Close again is a no-op.
func (s *Stream) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// Run registers the stream with the hub and writes queued events and keepalive
// pings until the peer leaves or the stream is closed. It blocks.
func (s *Stream) Run() {
	s.hub.Register(s)
	defer func() {
		s.hub.Unregister(s)
		s.Close()
		s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		s.conn.Close()
	}()

	go s.drainInbound()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case data := <-s.queue:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("client_id", s.id).Msg("WebSocket write error")
				return
			}
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// drainInbound reads until the peer goes away so pong and close frames are processed
func (s *Stream) drainInbound() {
	defer s.Close()

	s.conn.SetReadLimit(maxInboundSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("client_id", s.id).Msg("WebSocket unexpected close")
			}
			return
		}
	}
}
