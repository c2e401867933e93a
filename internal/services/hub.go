package services

import (
	"encoding/json"
	"sync"
	"time"

	"neocomm-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeTimeout = 10 * time.Second

// EventReceiveMessage is pushed to live connections on every successful
// message creation.
const EventReceiveMessage = "receiveMessage"

// WSEvent is the envelope for everything written to a live connection
type WSEvent struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Session is one live connection bound to an authenticated user.
// A user may hold many concurrent sessions (devices, tabs).
type Session struct {
	UserID string

	conn *websocket.Conn
	// writeMu serializes writes; gorilla connections do not allow
	// concurrent writers.
	writeMu sync.Mutex
}

func (s *Session) write(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub is the process-wide connection registry and delivery dispatcher.
// It is constructed once in the composition root and injected; there is
// no ambient global state.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Session]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*Session]struct{}),
	}
}

// Register binds a connection to a user and returns its session handle.
// The per-user set is created lazily on first registration.
func (h *Hub) Register(userID string, conn *websocket.Conn) *Session {
	s := &Session{UserID: userID, conn: conn}

	h.mu.Lock()
	set, ok := h.sessions[userID]
	if !ok {
		set = make(map[*Session]struct{})
		h.sessions[userID] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	log.Info().Str("user_id", userID).Msg("WebSocket session registered")
	return s
}

// Unregister removes exactly this session from its owner's set, closing
// the underlying connection. Empty sets are dropped so repeated
// connect/disconnect cycles leave nothing behind. Safe to call more
// than once for the same session.
func (h *Hub) Unregister(s *Session) {
	removed := false
	h.mu.Lock()
	if set, ok := h.sessions[s.UserID]; ok {
		if _, member := set[s]; member {
			delete(set, s)
			removed = true
			if len(set) == 0 {
				delete(h.sessions, s.UserID)
			}
		}
	}
	h.mu.Unlock()

	s.conn.Close()

	if removed {
		log.Info().Str("user_id", s.UserID).Msg("WebSocket session unregistered")
	}
}

// IsOnline reports whether the user has at least one live session
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID]) > 0
}

// SessionCount returns the number of live sessions for a user
func (h *Hub) SessionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}

// BroadcastMessage pushes a hydrated message to every registered session.
// Delivery is intentionally global rather than scoped to the two parties:
// that is the observed protocol, and clients filter by relevance using
// the message id. See DESIGN.md.
func (h *Hub) BroadcastMessage(msg *models.Message) {
	h.Broadcast(WSEvent{Type: EventReceiveMessage, Data: msg})
}

// Broadcast writes an event to all registered sessions. The payload is
// marshalled once; each session is written concurrently so a slow or
// half-closed peer cannot stall delivery to the others. A failed write
// tears down only the failing session and is logged, never returned.
func (h *Hub) Broadcast(event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("Failed to marshal event")
		return
	}

	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, set := range h.sessions {
		for s := range set {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range targets {
		go func(s *Session) {
			if err := s.write(data); err != nil {
				log.Error().
					Err(err).
					Str("user_id", s.UserID).
					Str("type", event.Type).
					Msg("Failed to deliver event, dropping session")
				h.Unregister(s)
			}
		}(s)
	}
}

// Close tears down every registered session, used on server shutdown
func (h *Hub) Close() {
	h.mu.Lock()
	var all []*Session
	for _, set := range h.sessions {
		for s := range set {
			all = append(all, s)
		}
	}
	h.sessions = make(map[string]map[*Session]struct{})
	h.mu.Unlock()

	for _, s := range all {
		s.conn.Close()
	}
}
