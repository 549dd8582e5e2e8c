package websocket

import (
	"encoding/json"
	"sync"
	"time"
)

// BalanceUpdate is pushed to every subscriber of an account after a movement
// commits.
type BalanceUpdate struct {
	AccountNumber string    `json:"account_number"`
	Balance       string    `json:"balance"`
	MovementID    int64     `json:"movement_id,string"`
	Kind          string    `json:"kind"`
	Timestamp     time.Time `json:"timestamp"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(accountNumber string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[accountNumber] == nil {
		h.clients[accountNumber] = make(map[*Client]struct{})
	}
	h.clients[accountNumber][client] = struct{}{}
}

func (h *Hub) Unregister(accountNumber string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[accountNumber] == nil {
		return
	}
	delete(h.clients[accountNumber], client)
	if len(h.clients[accountNumber]) == 0 {
		delete(h.clients, accountNumber)
	}
}

func (h *Hub) subscribers(accountNumber string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[accountNumber])
}

// BroadcastBalance never blocks: a subscriber with a full buffer misses the
// update.
func (h *Hub) BroadcastBalance(accountNumber string, update BalanceUpdate) {
	payload, err := json.Marshal(update)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[accountNumber] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
