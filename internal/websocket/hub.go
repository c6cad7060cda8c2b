package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans report_ready events out to the dashboards of a client company.
// Connections are keyed by client ID; the first connection for a company
// opens its Redis pub/sub subscription and the last one closes it.
type Hub struct {
	mu          sync.RWMutex
	connections map[int64][]*websocket.Conn
	redisClient *redis.Client
	jwtSecret   []byte
	cancelFuncs map[int64]context.CancelFunc
}

func NewHub(redisClient *redis.Client, jwtSecret string) *Hub {
	return &Hub{
		connections: make(map[int64][]*websocket.Conn),
		redisClient: redisClient,
		jwtSecret:   []byte(jwtSecret),
		cancelFuncs: make(map[int64]context.CancelFunc),
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Authenticate via token query param
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	clientIDRaw, ok := claims["client_id"].(float64)
	if !ok || int64(clientIDRaw) == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	clientID := int64(clientIDRaw)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.registerConnection(clientID, conn)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregisterConnection(clientID, conn)
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				break
			}
		}
	}()
}

func (h *Hub) registerConnection(clientID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[clientID] = append(h.connections[clientID], conn)

	// Start pub/sub subscription if this is the first connection for this client
	if len(h.connections[clientID]) == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancelFuncs[clientID] = cancel
		go h.subscribeToPubSub(ctx, clientID)
	}

	log.Printf("WebSocket connected: client %d (total: %d)", clientID, len(h.connections[clientID]))
}

func (h *Hub) unregisterConnection(clientID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()

	conns := h.connections[clientID]
	for i, c := range conns {
		if c == conn {
			h.connections[clientID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	// If no more connections, cancel pub/sub
	if len(h.connections[clientID]) == 0 {
		delete(h.connections, clientID)
		if cancel, ok := h.cancelFuncs[clientID]; ok {
			cancel()
			delete(h.cancelFuncs, clientID)
		}
	}

	log.Printf("WebSocket disconnected: client %d", clientID)
}

func (h *Hub) subscribeToPubSub(ctx context.Context, clientID int64) {
	channel := fmt.Sprintf("ws:client:%d", clientID)
	pubsub := h.redisClient.Subscribe(ctx, channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(clientID, []byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(clientID int64, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[clientID] {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}

// SendToClient sends a message directly to a client company's
// connections (for use outside pub/sub)
func (h *Hub) SendToClient(clientID int64, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.broadcast(clientID, data)
}
