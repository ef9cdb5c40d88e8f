package simulator

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The simulator is a local dev harness; no origin policy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamVitals upgrades the request and queues a freshly generated reading
// for the patient on every tick until the peer goes away. All writes go
// through the hub connection's single writer.
func (s *Server) StreamVitals(c *gin.Context) {
	id := c.Param("id")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}
	sub := s.hub.Add(id, conn)

	go func() {
		defer s.hub.Remove(id, sub)

		// Drain control frames so pings and close get processed.
		go func() {
			for {
				if _, _, err := sub.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(s.streamInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sub.Done():
				return
			case <-ticker.C:
				readings := s.gen.Vitals(id)
				if len(readings) == 0 {
					continue
				}
				if !sub.Send(readings[0]) {
					return
				}
			}
		}
	}()
}
