package overlay

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// Frame types written to websocket clients
const (
	FrameLayers  = "layers"
	FrameClear   = "clear"
	FrameSummary = "summary"
	FrameError   = "error"
)

// DefaultWriteTimeout bounds a single frame write
const DefaultWriteTimeout = 5 * time.Second

// Frame is one server-to-client websocket message
type Frame struct {
	Type      string           `json:"type"`
	SurfaceID string           `json:"surfaceId"`
	Layers    *models.LayerSet `json:"layers,omitempty"`
	Data      any              `json:"data,omitempty"`
	Message   string           `json:"message,omitempty"`
}

// WebsocketSurface is a Surface rendered by a websocket client. Writes are
// serialized so the manager and the session handler can share the connection.
type WebsocketSurface struct {
	id           string
	conn         *websocket.Conn
	writeTimeout time.Duration

	mu sync.Mutex
}

// NewWebsocketSurface wraps conn. writeTimeout <= 0 uses DefaultWriteTimeout.
func NewWebsocketSurface(id string, conn *websocket.Conn, writeTimeout time.Duration) *WebsocketSurface {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &WebsocketSurface{id: id, conn: conn, writeTimeout: writeTimeout}
}

func (s *WebsocketSurface) ID() string {
	return s.id
}

// SetLayers sends the complete layer set
func (s *WebsocketSurface) SetLayers(ls models.LayerSet) error {
	return s.WriteFrame(Frame{Type: FrameLayers, Layers: &ls})
}

// ClearLayers tells the client to drop every layer
func (s *WebsocketSurface) ClearLayers() error {
	return s.WriteFrame(Frame{Type: FrameClear})
}

// WriteFrame sends f with a write deadline
func (s *WebsocketSurface) WriteFrame(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.SurfaceID = s.id
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(f)
}
