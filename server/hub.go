// Package server is a development arena server implementing the wire
// contract the client speaks: one board, snake and food per player, a
// shared scoreboard and roster. It exists so the client can be run and
// integration-tested locally; it is not the production simulation.
package server

import (
	"encoding/json"
	"log"
	"sync"

	"snake-arena/constants"
	"snake-arena/models"
)

type Player struct {
	ID    string
	Name  string
	Team  models.Team
	Color string
	Send  chan []byte

	mu     sync.Mutex
	joined bool
	arena  *Arena
}

func (p *Player) Arena() *Arena {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.arena
}

type Hub struct {
	mu        sync.RWMutex
	players   map[string]*Player
	order     []string
	analytics *Analytics
}

func NewHub(analytics *Analytics) *Hub {
	return &Hub{
		players:   make(map[string]*Player),
		analytics: analytics,
	}
}

func (h *Hub) addPlayer(p *Player) {
	h.mu.Lock()
	h.players[p.ID] = p
	h.order = append(h.order, p.ID)
	h.mu.Unlock()
}

func (h *Hub) removePlayer(playerID string) {
	h.mu.Lock()
	p, exists := h.players[playerID]
	delete(h.players, playerID)
	for i, id := range h.order {
		if id == playerID {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	h.mu.Unlock()

	if !exists {
		return
	}
	if arena := p.Arena(); arena != nil {
		arena.Stop()
	}
	h.analytics.Emit("player.leave", map[string]any{"playerId": playerID, "name": p.Name})
	h.BroadcastSharedState()
}

func (h *Hub) player(playerID string) (*Player, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	p, ok := h.players[playerID]
	return p, ok
}

func (h *Hub) nameTaken(name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.players {
		p.mu.Lock()
		taken := p.joined && p.Name == name
		p.mu.Unlock()
		if taken {
			return true
		}
	}
	return false
}

// sendEvent marshals one envelope onto the player's send queue. Messages
// to a saturated queue are dropped; the write pump owns disconnects.
func (h *Hub) sendEvent(p *Player, event string, data any) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			log.Printf("server: marshal %s: %v", event, err)
			return
		}
		raw = b
	}
	frame, err := json.Marshal(models.Envelope{Event: event, Data: raw})
	if err != nil {
		return
	}
	select {
	case p.Send <- frame:
	default:
		log.Printf("server: send queue full for %s, dropping %s", p.ID, event)
	}
}

// BroadcastSharedState rebuilds the roster and team scores from every
// joined player and pushes the snapshot to all connections.
func (h *Hub) BroadcastSharedState() {
	h.mu.RLock()
	players := make([]*Player, 0, len(h.order))
	for _, id := range h.order {
		if p, ok := h.players[id]; ok {
			players = append(players, p)
		}
	}
	h.mu.RUnlock()

	var scores models.TeamScores
	roster := make([]models.PlayerPublicInfo, 0, len(players))
	for _, p := range players {
		p.mu.Lock()
		joined := p.joined
		arena := p.arena
		p.mu.Unlock()
		if !joined || arena == nil {
			continue
		}
		info := arena.PublicInfo()
		roster = append(roster, info)
		switch info.Team {
		case models.TeamRed:
			scores.Red += info.Score
		case models.TeamBlue:
			scores.Blue += info.Score
		}
	}

	shared := models.SharedState{TeamScores: scores, ActivePlayers: roster}
	for _, p := range players {
		h.sendEvent(p, constants.EVT_SHARED_STATE, shared)
	}
}
