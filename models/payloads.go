package models

import (
	"encoding/json"

	"snake-arena/constants"
)

// Envelope is the wire frame: one JSON object per websocket message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Server -> client payloads.

type ConnectPayload struct {
	ID string `json:"id"`
}

type JoinedPayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Team     Team   `json:"team"`
	Color    string `json:"color"`
}

type JoinFailedPayload struct {
	Message string `json:"message"`
}

// IndividualState is the per-player snapshot: snake, food and board are
// full replacements, never diffs.
type IndividualState struct {
	Snake     PlayerSnake `json:"snake"`
	Food      *FoodPellet `json:"food"`
	GameBoard GameBoard   `json:"gameBoard"`
}

type SharedState struct {
	TeamScores    TeamScores         `json:"teamScores"`
	ActivePlayers []PlayerPublicInfo `json:"activePlayers"`
}

type DefeatPayload struct {
	Reason       string `json:"reason,omitempty"`
	FinalScore   *int   `json:"finalScore,omitempty"`
	LevelReached *int   `json:"levelReached,omitempty"`
}

type NotificationPayload struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type InfoPayload struct {
	Message string `json:"message"`
	Title   string `json:"title,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Event   string `json:"event,omitempty"`
	Title   string `json:"title,omitempty"`
}

// Client -> server payloads.

type JoinRequest struct {
	Name          string `json:"name"`
	PreferredTeam Team   `json:"preferredTeam"`
}

type DirectionPayload struct {
	Direction constants.Direction `json:"direction"`
}

type FriendRequestPayload struct {
	ToPlayerID     string `json:"toPlayerId"`
	FromPlayerName string `json:"fromPlayerName"`
}

type FriendAcceptPayload struct {
	RequestFromPlayerID string `json:"requestFromPlayerId"`
}
