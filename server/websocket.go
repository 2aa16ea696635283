package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"snake-arena/constants"
	"snake-arena/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection, assigns the player id and
// completes the handshake by sending the connect event. No snapshot goes
// out before that.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: upgrade error: %v", err)
		return
	}

	player := &Player{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 256),
	}
	h.addPlayer(player)

	go h.readPump(player, conn)
	go h.writePump(player, conn)

	h.sendEvent(player, constants.EVT_CONNECT, models.ConnectPayload{ID: player.ID})
}

func (h *Hub) readPump(player *Player, conn *websocket.Conn) {
	defer func() {
		h.removePlayer(player.ID)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("server: read error: %v", err)
			}
			break
		}

		var env models.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("server: bad frame from %s: %v", player.ID, err)
			continue
		}
		h.handleMessage(player, env.Event, env.Data)
	}
}

func (h *Hub) writePump(player *Player, conn *websocket.Conn) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-player.Send:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) handleMessage(player *Player, event string, data json.RawMessage) {
	switch event {
	case constants.EVT_JOIN_GAME:
		var p models.JoinRequest
		if err := json.Unmarshal(data, &p); err != nil {
			return
		}
		h.handleJoin(player, p)

	case constants.EVT_START_MY_GAME:
		if arena := player.Arena(); arena != nil {
			arena.Start()
		}

	case constants.EVT_PAUSE_MY_GAME:
		if arena := player.Arena(); arena != nil {
			arena.Pause()
		}

	case constants.EVT_CHANGE_DIRECTION:
		var p models.DirectionPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return
		}
		if arena := player.Arena(); arena != nil {
			arena.SetDirection(p.Direction)
		}

	case constants.EVT_LEAVE_GAME:
		h.handleLeave(player)

	case constants.EVT_SEND_FRIEND_REQUEST:
		var p models.FriendRequestPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return
		}
		h.handleFriendRequest(player, p)

	case constants.EVT_ACCEPT_FRIEND_REQUEST:
		var p models.FriendAcceptPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return
		}
		h.handleFriendAccept(player, p)
	}
}

func (h *Hub) handleJoin(player *Player, req models.JoinRequest) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.sendEvent(player, constants.EVT_JOIN_FAILED, models.JoinFailedPayload{Message: "Name is required."})
		return
	}
	if req.PreferredTeam != models.TeamRed && req.PreferredTeam != models.TeamBlue {
		h.sendEvent(player, constants.EVT_JOIN_FAILED, models.JoinFailedPayload{Message: "Pick a team, red or blue."})
		return
	}
	if h.nameTaken(name) {
		h.sendEvent(player, constants.EVT_JOIN_FAILED, models.JoinFailedPayload{Message: "That name is already taken."})
		return
	}

	player.mu.Lock()
	if old := player.arena; old != nil {
		old.Stop()
	}
	player.Name = name
	player.Team = req.PreferredTeam
	player.Color = teamColor(req.PreferredTeam)
	player.joined = true
	arena := NewArena(h, player)
	player.arena = arena
	player.mu.Unlock()

	h.sendEvent(player, constants.EVT_JOINED_SUCCESSFULLY, models.JoinedPayload{
		PlayerID: player.ID,
		Name:     name,
		Team:     player.Team,
		Color:    player.Color,
	})
	h.sendEvent(player, constants.EVT_YOUR_STATE, arena.Snapshot())
	h.analytics.Emit("player.join", map[string]any{
		"playerId": player.ID, "name": name, "team": string(player.Team),
	})
	h.BroadcastSharedState()
}

func (h *Hub) handleLeave(player *Player) {
	player.mu.Lock()
	arena := player.arena
	player.arena = nil
	player.joined = false
	player.mu.Unlock()

	if arena != nil {
		arena.Stop()
	}
	h.analytics.Emit("player.leave", map[string]any{"playerId": player.ID, "name": player.Name})
	h.BroadcastSharedState()
}
