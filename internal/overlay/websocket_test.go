package overlay

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

func TestWebsocketSurface_Frames(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		s := NewWebsocketSurface("map-1", conn, 0)
		_ = s.SetLayers(pointLayers(3))
		_ = s.ClearLayers()
		// wait for the client to close
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var f Frame
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, FrameLayers, f.Type)
	assert.Equal(t, "map-1", f.SurfaceID)
	require.NotNil(t, f.Layers)
	require.NotNil(t, f.Layers.Points)
	assert.Equal(t, []models.PointDatum{{Position: [2]float64{-97.74, 30.27}, Weight: 3}}, f.Layers.Points.Data)

	f = Frame{}
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, FrameClear, f.Type)
	assert.Nil(t, f.Layers)
}
