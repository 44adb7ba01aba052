// internal/app/features/ws/handler.go
package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/boardhub/internal/app/policy/boardpolicy"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/realtime"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler upgrades /ws requests and runs the per-connection read loop.
// Authentication happens before the upgrade via the bearer middleware, which
// accepts the token as a query parameter for browser WebSocket clients.
type Handler struct {
	Hub      *realtime.Hub
	Resolver *boardpolicy.Resolver

	WriteTimeout    time.Duration
	MaxMessageBytes int64
	Log             *zap.Logger

	upgrader websocket.Upgrader
}

func NewHandler(hub *realtime.Hub, resolver *boardpolicy.Resolver, writeTimeout time.Duration, maxMessageBytes int64, log *zap.Logger) *Handler {
	return &Handler{
		Hub:             hub,
		Resolver:        resolver,
		WriteTimeout:    writeTimeout,
		MaxMessageBytes: maxMessageBytes,
		Log:             log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Same-origin policy is the reverse proxy's concern; tokens
			// gate the connection here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// controlMessage is the only client-to-server frame. Anything else is
// ignored.
type controlMessage struct {
	Event   string `json:"event"`
	BoardID string `json:"boardId"`
}

// Serve handles GET /ws.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	actor, ok := sysauth.CurrentActor(r)
	if !ok {
		http.Error(w, "not authorized", http.StatusUnauthorized)
		return
	}

	sock, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.Log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := realtime.NewConn(sock, h.Log)
	go conn.WritePump(h.WriteTimeout)

	h.Log.Info("websocket connected",
		zap.String("conn_id", conn.ID),
		zap.String("user_id", actor.ID.Hex()))

	defer func() {
		h.Hub.Unsubscribe(conn)
		conn.Close()
		h.Log.Info("websocket disconnected", zap.String("conn_id", conn.ID))
	}()

	sock.SetReadLimit(h.MaxMessageBytes)
	for {
		_, msg, err := sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.Log.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		var ctl controlMessage
		if err := json.Unmarshal(msg, &ctl); err != nil || ctl.Event != "joinBoard" {
			continue
		}
		h.joinBoard(r, conn, actor, ctl.BoardID)
	}
}

// joinBoard re-verifies board membership at subscribe time, so a token
// issued before a membership change cannot watch a board its holder no
// longer belongs to. A connection follows at most one board; joining again
// moves it.
func (h *Handler) joinBoard(r *http.Request, conn *realtime.Conn, actor sysauth.Actor, boardHex string) {
	boardID, err := primitive.ObjectIDFromHex(boardHex)
	if err != nil {
		h.Log.Debug("joinBoard with invalid board id", zap.String("conn_id", conn.ID))
		return
	}

	res, err := h.Resolver.ResolveBoard(r.Context(), boardID, actor.ID)
	if err != nil {
		h.Log.Error("joinBoard resolution failed", zap.Error(err))
		return
	}
	if !res.Authorized() {
		h.Log.Info("joinBoard refused",
			zap.String("conn_id", conn.ID),
			zap.String("board_id", boardHex),
			zap.String("reason", res.Reason))
		return
	}

	h.Hub.Subscribe(conn, boardID)
	h.Log.Info("board joined",
		zap.String("conn_id", conn.ID),
		zap.String("board_id", boardID.Hex()))
}
