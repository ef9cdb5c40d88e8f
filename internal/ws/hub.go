// Package ws tracks WebSocket subscribers per patient and broadcasts vitals
// to them.
package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// writeWait bounds a single frame write so a dead peer cannot park the
	// writer forever.
	writeWait = 10 * time.Second
	// sendBuffer is the per-connection outbound queue. A peer that falls
	// this far behind is evicted.
	sendBuffer = 16
)

// Conn wraps a websocket connection behind a single writer goroutine. All
// outbound frames go through Send; WriteJSON is never called from two
// goroutines.
type Conn struct {
	ws   *websocket.Conn
	send chan any
	done chan struct{}
	once sync.Once
}

func newConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ws:   ws,
		send: make(chan any, sendBuffer),
		done: make(chan struct{}),
	}
}

// Send queues v for delivery. A full queue reports false; the peer is not
// keeping up and the caller should drop it.
func (c *Conn) Send(v any) bool {
	select {
	case c.send <- v:
		return true
	default:
		return false
	}
}

// ReadMessage reads the next frame from the peer.
func (c *Conn) ReadMessage() (int, []byte, error) {
	return c.ws.ReadMessage()
}

// Done is closed when the connection is removed from its hub.
func (c *Conn) Done() <-chan struct{} { return c.done }

func (c *Conn) close() {
	c.once.Do(func() {
		close(c.done)
		// Unblocks an in-flight write immediately.
		c.ws.Close()
	})
}

// writePump is the connection's only writer. It drains the send queue until
// the connection is closed or a write fails.
func (c *Conn) writePump(onExit func()) {
	defer onExit()
	for {
		select {
		case <-c.done:
			return
		case v := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(v); err != nil {
				return
			}
		}
	}
}

// Hub manages WebSocket connections keyed by patient id.
type Hub struct {
	connections map[string]map[*Conn]bool // patientID -> set of connections
	mutex       sync.Mutex
	logger      *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		connections: make(map[string]map[*Conn]bool),
		logger:      logger,
	}
}

// Add registers a connection for a patient's vitals stream and starts its
// writer goroutine.
func (h *Hub) Add(patientID string, ws *websocket.Conn) *Conn {
	conn := newConn(ws)
	h.mutex.Lock()
	if h.connections[patientID] == nil {
		h.connections[patientID] = make(map[*Conn]bool)
	}
	h.connections[patientID][conn] = true
	active := len(h.connections[patientID])
	h.mutex.Unlock()

	go conn.writePump(func() { h.Remove(patientID, conn) })
	h.logger.Infof("WebSocket connected for patient %s (%d active)", patientID, active)
	return conn
}

// Remove drops a connection and closes it. Safe to call more than once.
func (h *Hub) Remove(patientID string, conn *Conn) {
	h.mutex.Lock()
	if conns, ok := h.connections[patientID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.connections, patientID)
		}
	}
	h.mutex.Unlock()
	conn.close()
}

// Broadcast queues v for every subscriber of the patient. The hub lock is
// not held across writes; a subscriber whose queue is full is evicted.
func (h *Hub) Broadcast(patientID string, v any) {
	h.mutex.Lock()
	conns := make([]*Conn, 0, len(h.connections[patientID]))
	for conn := range h.connections[patientID] {
		conns = append(conns, conn)
	}
	h.mutex.Unlock()

	for _, conn := range conns {
		if !conn.Send(v) {
			h.logger.Warnf("WebSocket subscriber for patient %s fell behind, evicting", patientID)
			h.Remove(patientID, conn)
		}
	}
}

// Count reports the number of subscribers for a patient.
func (h *Hub) Count(patientID string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.connections[patientID])
}
