package models

import (
	"snake-arena/constants"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// PlayerSnake mirrors the server-authoritative state of one player's snake.
// IsPaused is a pointer because server snapshots may omit it; the session
// store preserves the previous value when it is absent.
type PlayerSnake struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Segments      []Position          `json:"segments"`
	Direction     constants.Direction `json:"direction"`
	Color         string              `json:"color"`
	Team          Team                `json:"team"`
	Score         int                 `json:"score"`
	Level         int                 `json:"level,omitempty"`
	IsDefeated    bool                `json:"isDefeated,omitempty"`
	IsPaused      *bool               `json:"isPaused,omitempty"`
	IsLocalPlayer bool                `json:"isLocalPlayer,omitempty"`
}

func (s *PlayerSnake) Paused() bool {
	return s != nil && s.IsPaused != nil && *s.IsPaused
}

// Active means the snake can move: not defeated and not paused.
func (s *PlayerSnake) Active() bool {
	return s != nil && !s.IsDefeated && !s.Paused()
}

// Clone returns a deep copy safe to hand to readers.
func (s *PlayerSnake) Clone() *PlayerSnake {
	if s == nil {
		return nil
	}
	out := *s
	out.Segments = append([]Position(nil), s.Segments...)
	if s.IsPaused != nil {
		p := *s.IsPaused
		out.IsPaused = &p
	}
	return &out
}

type FoodPellet struct {
	ID    string `json:"id"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
	Value int    `json:"value,omitempty"`
}

type GameBoard struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	GridSize int `json:"gridSize"`
}

func DefaultBoard() GameBoard {
	return GameBoard{
		Width:    constants.DEFAULT_BOARD_WIDTH,
		Height:   constants.DEFAULT_BOARD_HEIGHT,
		GridSize: constants.DEFAULT_GRID_SIZE,
	}
}

type TeamScores struct {
	Red  int `json:"red"`
	Blue int `json:"blue"`
}

// PlayerPublicInfo is one roster entry, replaced wholesale on every
// shared-state snapshot.
type PlayerPublicInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Team       Team   `json:"team"`
	Score      int    `json:"score"`
	Level      int    `json:"level"`
	IsDefeated bool   `json:"isDefeated,omitempty"`
	IsPaused   bool   `json:"isPaused,omitempty"`
}
