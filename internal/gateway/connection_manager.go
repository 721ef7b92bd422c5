package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ConnectionManager manages WebSocket connections for live game updates
type ConnectionManager struct {
	// Connection pools organized by game ID
	gameConnections map[uuid.UUID]map[*Connection]bool
	mu              sync.RWMutex

	// Upgrader for WebSocket connections
	upgrader websocket.Upgrader

	// Connection configuration
	config ConnectionConfig

	// Event broadcasting
	broadcastCh chan BroadcastMessage
}

// Connection represents a WebSocket connection to a client
type Connection struct {
	ID      string
	Conn    *websocket.Conn
	Send    chan []byte
	Manager *ConnectionManager

	// Games this connection is subscribed to; guarded by Manager.mu
	games map[uuid.UUID]bool

	// Set once by unregisterConnection before Send is closed; guarded by
	// Manager.mu
	closed bool

	// Connection metadata
	ConnectedAt time.Time
	LastPing    time.Time
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// BroadcastMessage represents a message to broadcast to subscribers of a game
type BroadcastMessage struct {
	GameID uuid.UUID
	Event  *GameEvent
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// NewConnectionManager creates a new WebSocket connection manager
func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		gameConnections: make(map[uuid.UUID]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan BroadcastMessage, 1000),
	}
}

// Start begins processing broadcast messages
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

// UpgradeConnection upgrades an HTTP connection to WebSocket
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:          uuid.New().String(),
		Conn:        conn,
		Send:        make(chan []byte, 256),
		Manager:     cm,
		games:       make(map[uuid.UUID]bool),
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Msg("WebSocket connection established")

	return nil
}

// Subscribe adds a connection to a game's broadcast pool
func (cm *ConnectionManager) Subscribe(conn *Connection, gameID uuid.UUID) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn.closed {
		return
	}
	if cm.gameConnections[gameID] == nil {
		cm.gameConnections[gameID] = make(map[*Connection]bool)
	}
	cm.gameConnections[gameID][conn] = true
	conn.games[gameID] = true

	log.Debug().
		Str("connection_id", conn.ID).
		Str("game_id", gameID.String()).
		Int("total_connections", len(cm.gameConnections[gameID])).
		Msg("connection subscribed to game")
}

// Unsubscribe removes a connection from a game's broadcast pool
func (cm *ConnectionManager) Unsubscribe(conn *Connection, gameID uuid.UUID) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.unsubscribeLocked(conn, gameID)
}

func (cm *ConnectionManager) unsubscribeLocked(conn *Connection, gameID uuid.UUID) {
	if connections, exists := cm.gameConnections[gameID]; exists {
		delete(connections, conn)
		if len(connections) == 0 {
			delete(cm.gameConnections, gameID)
		}
	}
	delete(conn.games, gameID)
}

// Disconnect removes a connection from every game pool and closes it
func (cm *ConnectionManager) Disconnect(conn *Connection) {
	cm.unregisterConnection(conn)
	conn.Conn.Close()
}

// unregisterConnection removes a connection from every game pool it joined
func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn.closed {
		return
	}
	for gameID := range conn.games {
		cm.unsubscribeLocked(conn, gameID)
	}
	conn.games = nil
	conn.closed = true
	close(conn.Send)

	log.Info().
		Str("connection_id", conn.ID).
		Msg("connection unregistered")
}

// BroadcastGameUpdate sends an event to all subscribers of a game. With no
// subscribers the message is dropped in handleBroadcast.
func (cm *ConnectionManager) BroadcastGameUpdate(gameID uuid.UUID, event *GameEvent) {
	select {
	case cm.broadcastCh <- BroadcastMessage{GameID: gameID, Event: event}:
	default:
		log.Warn().Str("game_id", gameID.String()).Msg("broadcast channel full, dropping message")
	}
}

// handleBroadcast processes a broadcast message
func (cm *ConnectionManager) handleBroadcast(message BroadcastMessage) {
	cm.mu.RLock()
	connections, exists := cm.gameConnections[message.GameID]
	if !exists {
		cm.mu.RUnlock()
		return
	}

	// Snapshot connections to avoid holding the lock during writes
	var targetConnections []*Connection
	for conn := range connections {
		targetConnections = append(targetConnections, conn)
	}
	cm.mu.RUnlock()

	eventData, err := json.Marshal(message.Event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	for _, conn := range targetConnections {
		if cm.trySend(conn, eventData) {
			continue
		}
		// Connection is slow/dead, close it
		log.Warn().
			Str("connection_id", conn.ID).
			Msg("connection send buffer full, closing connection")
		cm.unregisterConnection(conn)
		conn.Conn.Close()
	}

	log.Debug().
		Str("event_type", string(message.Event.Type)).
		Str("game_id", message.GameID.String()).
		Int("connections", len(targetConnections)).
		Msg("event broadcasted")
}

// trySend queues data for a connection unless it has already been
// unregistered. The read lock excludes unregisterConnection, so Send
// cannot be closed while the select runs. Returns false when the send
// buffer is full.
func (cm *ConnectionManager) trySend(conn *Connection, data []byte) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if conn.closed {
		return true
	}
	select {
	case conn.Send <- data:
		return true
	default:
		return false
	}
}

// GetConnectionStats returns statistics about active connections
func (cm *ConnectionManager) GetConnectionStats() (totalConnections, activeGames int) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	seen := make(map[*Connection]bool)
	for _, connections := range cm.gameConnections {
		for conn := range connections {
			seen[conn] = true
		}
	}
	return len(seen), len(cm.gameConnections)
}

// writePump handles sending messages to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				// Channel was closed
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
			c.LastPing = time.Now()
		}
	}
}

// readPump handles reading messages from the WebSocket connection
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		c.LastPing = time.Now()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
			}
			break
		}

		c.handleClientMessage(message)
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}

// handleClientMessage processes subscribe/unsubscribe commands from the client
func (c *Connection) handleClientMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Debug().
			Str("connection_id", c.ID).
			Msg("ignoring malformed client message")
		return
	}

	gameID, err := uuid.Parse(msg.GameID)
	if err != nil {
		log.Debug().
			Str("connection_id", c.ID).
			Str("game_id", msg.GameID).
			Msg("ignoring client message with invalid game id")
		return
	}

	switch msg.Type {
	case ClientSubscribeGame:
		c.Manager.Subscribe(c, gameID)
	case ClientUnsubscribeGame:
		c.Manager.Unsubscribe(c, gameID)
	default:
		log.Debug().
			Str("connection_id", c.ID).
			Str("type", msg.Type).
			Msg("ignoring unknown client message type")
	}
}
