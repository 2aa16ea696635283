package session

import (
	"sync"

	"snake-arena/models"
)

type ConnStatus int

const (
	StatusDisconnected ConnStatus = iota
	StatusConnecting
	StatusConnected
)

func (s ConnStatus) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	}
	return "disconnected"
}

// State is the session aggregate. Snapshots handed out by the store are
// copies; mutate only through store transitions.
type State struct {
	LocalPlayerID string
	Joined        bool
	Connection    ConnStatus

	Snake      *models.PlayerSnake
	Food       *models.FoodPellet
	Board      models.GameBoard
	Active     bool
	TeamScores models.TeamScores
	Roster     []models.PlayerPublicInfo
}

// Store holds the authoritative-mirrored game state plus local-only UI
// state. All writes go through transition methods; readers get copies.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]func()
	nextSub   int
}

func NewStore() *Store {
	return &Store{
		state: State{
			Board: models.DefaultBoard(),
		},
		listeners: make(map[int]func()),
	}
}

// Subscribe registers fn to run after every mutation. The returned func
// unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// Snapshot returns a copy of the full aggregate.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	out.Snake = s.state.Snake.Clone()
	if s.state.Food != nil {
		f := *s.state.Food
		out.Food = &f
	}
	out.Roster = append([]models.PlayerPublicInfo(nil), s.state.Roster...)
	return out
}

func (s *Store) LocalPlayerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LocalPlayerID
}

func (s *Store) Joined() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Joined
}

func (s *Store) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Active
}

func (s *Store) Connection() ConnStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Connection
}

// SetLocalIdentity records the transport-assigned id. An empty id is the
// disconnect path: it cascades a full reset of snake, food, board and the
// active flag. Safe to call repeatedly.
func (s *Store) SetLocalIdentity(id string) {
	s.mu.Lock()
	s.state.LocalPlayerID = id
	if id == "" {
		s.state.Snake = nil
		s.state.Food = nil
		s.state.Board = models.DefaultBoard()
		s.state.Active = false
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetJoined(joined bool) {
	s.mu.Lock()
	s.state.Joined = joined
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetConnection(status ConnStatus) {
	s.mu.Lock()
	s.state.Connection = status
	s.mu.Unlock()
	s.notify()
}

// ApplyIndividualSnapshot replaces snake, food and board wholesale. The one
// exception is the snake's pause flag: when the snapshot omits it, the
// previous local value survives, so a server that does not carry transient
// pause state cannot spontaneously unpause the player. Snapshots can only
// clear the active flag, never set it.
func (s *Store) ApplyIndividualSnapshot(snap models.IndividualState) {
	s.mu.Lock()
	snake := snap.Snake
	snake.Segments = append([]models.Position(nil), snap.Snake.Segments...)
	if snake.IsPaused == nil {
		prev := s.state.Snake.Paused()
		snake.IsPaused = &prev
	} else {
		p := *snap.Snake.IsPaused
		snake.IsPaused = &p
	}
	snake.IsLocalPlayer = snake.ID == s.state.LocalPlayerID
	s.state.Snake = &snake
	if snap.Food != nil {
		f := *snap.Food
		s.state.Food = &f
	} else {
		s.state.Food = nil
	}
	s.state.Board = snap.GameBoard
	if snake.IsDefeated || snake.Paused() {
		s.state.Active = false
	}
	s.mu.Unlock()
	s.notify()
}

// ApplySharedSnapshot replaces team scores and the roster wholesale.
func (s *Store) ApplySharedSnapshot(snap models.SharedState) {
	s.mu.Lock()
	s.state.TeamScores = snap.TeamScores
	s.state.Roster = append([]models.PlayerPublicInfo(nil), snap.ActivePlayers...)
	s.mu.Unlock()
	s.notify()
}

// ApplyDefeat marks the current snake defeated. Terminal for this life
// until PrepareForRetry. No-op on the snake if none is present; the active
// flag is cleared either way.
func (s *Store) ApplyDefeat(p models.DefeatPayload) {
	s.mu.Lock()
	if s.state.Snake != nil {
		s.state.Snake.IsDefeated = true
		f := false
		s.state.Snake.IsPaused = &f
		if p.FinalScore != nil {
			s.state.Snake.Score = *p.FinalScore
		}
		if p.LevelReached != nil {
			s.state.Snake.Level = *p.LevelReached
		}
	}
	s.state.Active = false
	s.mu.Unlock()
	s.notify()
}

// SetRunningState is the only transition that can turn the active flag on.
// Active becomes true only when isRunning is true and isPaused is false;
// that path also clears a stale defeated flag, covering the server race
// where a new round starts before the defeat was cleared. With no snake
// present the active flag is forced false regardless of input.
func (s *Store) SetRunningState(isRunning, isPaused bool) {
	s.mu.Lock()
	if s.state.Snake == nil {
		s.state.Active = false
		s.mu.Unlock()
		s.notify()
		return
	}
	p := isPaused
	s.state.Snake.IsPaused = &p
	if isRunning && !isPaused {
		s.state.Active = true
		s.state.Snake.IsDefeated = false
	} else {
		s.state.Active = false
	}
	s.mu.Unlock()
	s.notify()
}

// PrepareForRetry clears defeat and pause on the current snake and drops
// the food, leaving the session waiting for a fresh snapshot. Purely local
// groundwork; the restart itself is server-driven.
func (s *Store) PrepareForRetry() {
	s.mu.Lock()
	if s.state.Snake != nil {
		s.state.Snake.IsDefeated = false
		f := false
		s.state.Snake.IsPaused = &f
	}
	s.state.Active = false
	s.state.Food = nil
	s.mu.Unlock()
	s.notify()
}

// ResetFullLocalGameState clears the game aggregate without touching
// identity. Used on voluntary leave.
func (s *Store) ResetFullLocalGameState() {
	s.mu.Lock()
	s.state.Snake = nil
	s.state.Food = nil
	s.state.Board = models.DefaultBoard()
	s.state.Active = false
	s.mu.Unlock()
	s.notify()
}
