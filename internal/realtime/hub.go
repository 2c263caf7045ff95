package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// AllUsers is the topic of clients subscribed to changes for every user.
const AllUsers = "*"

// Client is a subscriber connection. The network conn is managed in the ws handler.
// Send must not block on the network.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Event describes a change to the user data cache.
type Event struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	Version int    `json:"version"`
}

const (
	EventUserDataUpdated = "user_data_updated"
	EventUserDataDeleted = "user_data_deleted"
)

// Hub fans cache change events out to subscribed clients, keyed by topic.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[Client]struct{})}
}

// Register adds a client under a topic: a user id, or AllUsers.
func (h *Hub) Register(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[topic]; !ok {
		h.clients[topic] = make(map[Client]struct{})
	}
	h.clients[topic][client] = struct{}{}
}

// Unregister removes a client; empty topics are dropped.
func (h *Hub) Unregister(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[topic]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, topic)
		}
	}
}

// Count returns the number of clients registered under topic.
func (h *Hub) Count(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}

// Publish sends evt to the clients of evt.UserID and to AllUsers subscribers.
// Sends happen outside the hub lock; failed sends are left for the owning
// handler to clean up.
func (h *Hub) Publish(evt Event) {
	if evt.Version == 0 {
		evt.Version = 1
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		log.Println("realtime: marshal event:", err)
		return
	}

	for _, c := range h.subscribers(evt.UserID) {
		c.Send(msg)
	}
}

func (h *Hub) subscribers(userID string) []Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Client, 0, len(h.clients[userID])+len(h.clients[AllUsers]))
	for c := range h.clients[userID] {
		out = append(out, c)
	}
	if userID != AllUsers {
		for c := range h.clients[AllUsers] {
			out = append(out, c)
		}
	}
	return out
}
