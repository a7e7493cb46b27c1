package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
	"github.com/jengzang/fleetmap-backend-go/internal/overlay"
	"github.com/jengzang/fleetmap-backend-go/internal/service"
)

// OverlayHandler runs websocket overlay sessions. Each connection is one map
// surface driven by its own lifecycle manager.
type OverlayHandler struct {
	service      *service.OverlayService
	clock        overlay.Clock
	attachDelay  time.Duration
	writeTimeout time.Duration
	log          logrus.FieldLogger
	upgrader     websocket.Upgrader
}

// NewOverlayHandler creates a new overlay handler
func NewOverlayHandler(svc *service.OverlayService, clock overlay.Clock, attachDelay, writeTimeout time.Duration, log logrus.FieldLogger) *OverlayHandler {
	return &OverlayHandler{
		service:      svc,
		clock:        clock,
		attachDelay:  attachDelay,
		writeTimeout: writeTimeout,
		log:          log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /api/v1/ws/overlay. The client sends OverlayFilter
// messages; the server answers each with a summary frame and pushes layer
// frames through the lifecycle manager.
func (h *OverlayHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log := h.log.WithField("session", sessionID)
	surface := overlay.NewWebsocketSurface(sessionID, conn, h.writeTimeout)
	mgr := overlay.NewManager(h.clock, h.attachDelay, log)
	defer mgr.Teardown()

	log.Info("overlay session opened")

	h.apply(mgr, surface, models.OverlayFilter{}, log)
	if err := mgr.Attach(surface); err != nil {
		log.WithError(err).Error("failed to attach overlay")
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("overlay session read failed")
			}
			break
		}

		var filter models.OverlayFilter
		if err := json.Unmarshal(msg, &filter); err != nil {
			_ = surface.WriteFrame(overlay.Frame{Type: overlay.FrameError, Message: "invalid filter message"})
			continue
		}
		h.apply(mgr, surface, filter, log)
	}

	log.Info("overlay session closed")
}

func (h *OverlayHandler) apply(mgr *overlay.Manager, surface *overlay.WebsocketSurface, filter models.OverlayFilter, log logrus.FieldLogger) {
	ls, summary, err := h.service.Layers(filter)
	if err != nil {
		msg := "failed to compute layers"
		if service.IsClientError(err) {
			msg = err.Error()
		} else {
			log.WithError(err).Error("failed to compute overlay layers")
		}
		_ = surface.WriteFrame(overlay.Frame{Type: overlay.FrameError, Message: msg})
		return
	}

	if err := mgr.Update(ls); err != nil {
		log.WithError(err).Warn("failed to push overlay layers")
	}
	if err := surface.WriteFrame(overlay.Frame{Type: overlay.FrameSummary, Data: summary}); err != nil {
		log.WithError(err).Warn("failed to send overlay summary")
	}
}
