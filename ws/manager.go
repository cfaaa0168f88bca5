package ws

import (
	"context"
	"sync"

	"bloodbank_backend/internal/logger"
)

// Event is the envelope pushed to websocket clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// WebSocketManager tracks live connections per user. A user may hold several.
type WebSocketManager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves register/unregister until ctx is cancelled, then drops every client.
func (manager *WebSocketManager) Run(ctx context.Context) {
	defer close(manager.done)

	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			set, ok := manager.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				manager.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			manager.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID)

		case client := <-manager.unregister:
			manager.remove(client)

		case <-ctx.Done():
			manager.mu.Lock()
			for userID, set := range manager.clients {
				for client := range set {
					close(client.Send)
				}
				delete(manager.clients, userID)
			}
			manager.mu.Unlock()
			return
		}
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	set, ok := manager.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	close(client.Send)
	delete(set, client)
	if len(set) == 0 {
		delete(manager.clients, client.UserID)
	}
	logger.Debug("ws client unregistered", "user_id", client.UserID)
}

// Register hands a client to the run loop. It returns false once the manager stopped.
func (manager *WebSocketManager) Register(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.done:
		return false
	}
}

func (manager *WebSocketManager) Unregister(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

// SendToUser queues event for every connection of userID and reports how many got it.
// Clients with a full buffer are dropped.
func (manager *WebSocketManager) SendToUser(userID string, event Event) int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	delivered := 0
	for client := range manager.clients[userID] {
		select {
		case client.Send <- event:
			delivered++
		default:
			go manager.Unregister(client)
			logger.Warn("ws client dropped due to full send channel", "user_id", userID)
		}
	}
	return delivered
}

func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	total := 0
	for _, set := range manager.clients {
		total += len(set)
	}
	return total
}

func (manager *WebSocketManager) IsUserConnected(userID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients[userID]) > 0
}
