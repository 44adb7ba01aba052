// Package realtime maintains board-scoped subscriber groups and fans
// mutation events out to every connection watching a board.
//
// One Hub instance is created at server start and handed to every feature
// that publishes; there is no package-level registry. Connections subscribe
// to at most one board at a time; re-subscribing drops the previous group
// membership. Delivery is best-effort with no replay: a reconnecting client
// re-fetches board state before re-subscribing.
package realtime

import (
	"encoding/json"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Event kinds emitted by board mutations.
const (
	EventCardUpdate    = "card:update"
	EventCardMove      = "card:move"
	EventCardDelete    = "card:delete"
	EventCommentNew    = "comment:new"
	EventCommentDelete = "comment:delete"
)

// Envelope is the wire shape of every server-to-client message.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub owns the board→connections index. Safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	groups map[primitive.ObjectID]map[*Conn]struct{}
	boards map[*Conn]primitive.ObjectID

	log *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		groups: make(map[primitive.ObjectID]map[*Conn]struct{}),
		boards: make(map[*Conn]primitive.ObjectID),
		log:    log,
	}
}

// Subscribe adds c to boardID's group, dropping any previous subscription.
func (h *Hub) Subscribe(c *Conn, boardID primitive.ObjectID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)

	group, ok := h.groups[boardID]
	if !ok {
		group = make(map[*Conn]struct{})
		h.groups[boardID] = group
	}
	group[c] = struct{}{}
	h.boards[c] = boardID

	h.log.Debug("subscribed",
		zap.String("conn", c.ID),
		zap.String("board_id", boardID.Hex()))
}

// Unsubscribe drops c from whichever group it is in. Safe to call for a
// connection that never subscribed.
func (h *Hub) Unsubscribe(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Conn) {
	boardID, ok := h.boards[c]
	if !ok {
		return
	}
	delete(h.boards, c)
	if group, ok := h.groups[boardID]; ok {
		delete(group, c)
		if len(group) == 0 {
			delete(h.groups, boardID)
		}
	}
}

// Publish delivers an event to every connection subscribed to boardID.
// Within one board, deliveries happen in publish order; a subscriber whose
// send buffer is full is dropped rather than blocking the fan-out.
func (h *Hub) Publish(boardID primitive.ObjectID, event string, data any) {
	msg, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.log.Error("marshal realtime event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	group := h.groups[boardID]
	conns := make([]*Conn, 0, len(group))
	for c := range group {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if !c.enqueue(msg) {
			h.log.Warn("dropping slow subscriber",
				zap.String("conn", c.ID),
				zap.String("board_id", boardID.Hex()))
			h.Unsubscribe(c)
			c.Close()
		}
	}
}

// Subscribers returns the current group size for a board.
func (h *Hub) Subscribers(boardID primitive.ObjectID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[boardID])
}

// Shutdown closes every connection and clears all groups.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.boards))
	for c := range h.boards {
		conns = append(conns, c)
	}
	h.groups = make(map[primitive.ObjectID]map[*Conn]struct{})
	h.boards = make(map[*Conn]primitive.ObjectID)
	h.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
