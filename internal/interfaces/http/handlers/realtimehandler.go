package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cabinet/internal/domain/message"
	"cabinet/internal/infrastructure/services"
	"cabinet/internal/shared/errors"
	"cabinet/internal/shared/goroutine"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/utils"
)

const (
	realtimeWriteWait      = 10 * time.Second
	realtimeMaxMessageSize = 4096
)

// RealtimeHandler upgrades authenticated members to websocket change feeds.
// Streams are write-only: client frames other than control frames are discarded.
type RealtimeHandler struct {
	hub        *services.RealtimeHub
	upgrader   websocket.Upgrader
	pingPeriod time.Duration
	pongWait   time.Duration
	logger     logger.Interface
}

// NewRealtimeHandler accepts any Origin listed in allowedOrigins ("*" for all).
// Requests without an Origin header come from non-browser clients and are accepted.
func NewRealtimeHandler(hub *services.RealtimeHub, allowedOrigins []string, pingPeriod time.Duration, log logger.Interface) *RealtimeHandler {
	if pingPeriod <= 0 {
		pingPeriod = 30 * time.Second
	}
	allowAny := slices.Contains(allowedOrigins, "*")

	return &RealtimeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowAny || slices.Contains(allowedOrigins, origin)
			},
		},
		pingPeriod: pingPeriod,
		pongWait:   2 * pingPeriod,
		logger:     log,
	}
}

// MessagesWS streams inserted messages visible to the caller.
// GET /api/cabinets/:cabinet_id/realtime/messages?conversation=<key>
func (h *RealtimeHandler) MessagesWS(c *gin.Context) {
	conversation := c.Query("conversation")
	if conversation != "" {
		if _, err := message.ParseConversationKey(conversation); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid conversation", err.Error()))
			return
		}
	}
	h.serve(c, services.TopicMessages, conversation)
}

// NotificationsWS streams changes to the caller's notification log.
// GET /api/cabinets/:cabinet_id/realtime/notifications
func (h *RealtimeHandler) NotificationsWS(c *gin.Context) {
	h.serve(c, services.TopicNotifications, "")
}

func (h *RealtimeHandler) serve(c *gin.Context, topic services.Topic, conversation string) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		h.logger.Warnw("failed to upgrade to websocket",
			"error", err,
			"user_id", member.UserID(),
			"topic", topic,
		)
		return
	}

	stream := h.hub.Register(member.CabinetID(), member.UserID(), topic, conversation)

	goroutine.SafeGo(h.logger, "realtime-write-pump", func() {
		h.writePump(conn, stream.Send)
	})
	h.readPump(conn, stream.ID)
}

func (h *RealtimeHandler) readPump(conn *websocket.Conn, connID string) {
	defer func() {
		h.hub.Unregister(connID)
		conn.Close()
	}()

	conn.SetReadLimit(realtimeMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnw("realtime websocket read error", "conn_id", connID, "error", err)
			}
			return
		}
	}
}

// writePump owns every write on conn. It exits when the hub closes send.
func (h *RealtimeHandler) writePump(conn *websocket.Conn, send <-chan *proto.HubMessage) {
	ticker := time.NewTicker(h.pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(realtimeWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debugw("realtime websocket write failed", "error", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(realtimeWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
