package server

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"snake-arena/constants"
	"snake-arena/models"
)

// Arena simulates one player's board. Each player gets their own snake,
// food and tick loop; only the scoreboard and roster are shared.
type Arena struct {
	hub    *Hub
	player *Player

	mu      sync.Mutex
	board   models.GameBoard
	snake   models.PlayerSnake
	food    *models.FoodPellet
	nextDir constants.Direction
	running bool

	stop chan struct{}
	once sync.Once
}

func teamColor(team models.Team) string {
	if team == models.TeamRed {
		return "#f87171"
	}
	return "#60a5fa"
}

func NewArena(hub *Hub, p *Player) *Arena {
	a := &Arena{
		hub:    hub,
		player: p,
		board:  models.DefaultBoard(),
		stop:   make(chan struct{}),
	}
	a.spawnSnake()
	a.food = a.spawnFood()
	go a.loop()
	return a
}

func (a *Arena) spawnSnake() {
	midY := a.board.Height / 2
	paused := false
	a.snake = models.PlayerSnake{
		ID:        a.player.ID,
		Name:      a.player.Name,
		Segments:  []models.Position{{X: 4, Y: midY}, {X: 3, Y: midY}, {X: 2, Y: midY}},
		Direction: constants.RIGHT,
		Color:     a.player.Color,
		Team:      a.player.Team,
		Level:     1,
		IsPaused:  &paused,
	}
	a.nextDir = constants.RIGHT
}

func (a *Arena) spawnFood() *models.FoodPellet {
	for {
		f := &models.FoodPellet{
			ID:    uuid.New().String(),
			X:     rand.Intn(a.board.Width),
			Y:     rand.Intn(a.board.Height),
			Color: "#fbbf24",
			Value: 1,
		}
		clear := true
		for _, seg := range a.snake.Segments {
			if seg.X == f.X && seg.Y == f.Y {
				clear = false
				break
			}
		}
		if clear {
			return f
		}
	}
}

func (a *Arena) Stop() {
	a.once.Do(func() { close(a.stop) })
}

// Snapshot returns the individual-state payload for this player.
func (a *Arena) Snapshot() models.IndividualState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Arena) snapshotLocked() models.IndividualState {
	var food *models.FoodPellet
	if a.food != nil {
		f := *a.food
		food = &f
	}
	return models.IndividualState{
		Snake:     *a.snake.Clone(),
		Food:      food,
		GameBoard: a.board,
	}
}

func (a *Arena) PublicInfo() models.PlayerPublicInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return models.PlayerPublicInfo{
		ID:         a.snake.ID,
		Name:       a.snake.Name,
		Team:       a.snake.Team,
		Score:      a.snake.Score,
		Level:      a.snake.Level,
		IsDefeated: a.snake.IsDefeated,
		IsPaused:   a.snake.Paused(),
	}
}

// Start begins or resumes the simulation. A defeated snake respawns
// first; the client's retry flow sends the same start intent after its
// local cleanup.
func (a *Arena) Start() {
	a.mu.Lock()
	if a.snake.IsDefeated {
		a.spawnSnake()
		a.food = a.spawnFood()
	}
	paused := false
	a.snake.IsPaused = &paused
	a.running = true
	snap := a.snapshotLocked()
	a.mu.Unlock()

	a.hub.sendEvent(a.player, constants.EVT_YOUR_STATE, snap)
	a.hub.BroadcastSharedState()
}

func (a *Arena) Pause() {
	a.mu.Lock()
	paused := true
	a.snake.IsPaused = &paused
	snap := a.snapshotLocked()
	a.mu.Unlock()

	a.hub.sendEvent(a.player, constants.EVT_YOUR_STATE, snap)
	a.hub.BroadcastSharedState()
}

func (a *Arena) SetDirection(dir constants.Direction) {
	if !dir.Valid() {
		return
	}
	a.mu.Lock()
	if dir != a.snake.Direction.Opposite() {
		a.nextDir = dir
	}
	a.mu.Unlock()
}

func (a *Arena) loop() {
	ticker := time.NewTicker(constants.TICK_RATE)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
			a.step()
		}
	}
}

// step advances the snake one cell: wrap at the edges, grow on food,
// defeat on self-collision.
func (a *Arena) step() {
	a.mu.Lock()
	if !a.running || a.snake.Paused() || a.snake.IsDefeated {
		a.mu.Unlock()
		return
	}

	a.snake.Direction = a.nextDir
	head := a.snake.Segments[0]
	switch a.snake.Direction {
	case constants.UP:
		head.Y--
	case constants.DOWN:
		head.Y++
	case constants.LEFT:
		head.X--
	case constants.RIGHT:
		head.X++
	}
	if head.X < 0 {
		head.X = a.board.Width - 1
	} else if head.X >= a.board.Width {
		head.X = 0
	}
	if head.Y < 0 {
		head.Y = a.board.Height - 1
	} else if head.Y >= a.board.Height {
		head.Y = 0
	}

	for _, seg := range a.snake.Segments {
		if seg.X == head.X && seg.Y == head.Y {
			a.snake.IsDefeated = true
			a.running = false
			finalScore := a.snake.Score
			level := a.snake.Level
			a.mu.Unlock()

			a.hub.sendEvent(a.player, constants.EVT_YOU_ARE_DEFEATED, models.DefeatPayload{
				Reason:       "You ran into yourself.",
				FinalScore:   &finalScore,
				LevelReached: &level,
			})
			a.hub.sendEvent(a.player, constants.EVT_NOTIFICATION_NEW, models.NotificationPayload{
				Type:    constants.NOTIF_GAME_OVER,
				Message: "Game over! Press Retry to play again.",
			})
			a.hub.analytics.Emit("player.defeated", map[string]any{
				"playerId": a.player.ID, "score": finalScore, "level": level,
			})
			a.hub.BroadcastSharedState()
			return
		}
	}

	a.snake.Segments = append([]models.Position{head}, a.snake.Segments...)
	ate := a.food != nil && head.X == a.food.X && head.Y == a.food.Y
	leveled := false
	if ate {
		a.snake.Score += a.food.Value
		if lvl := a.snake.Score/5 + 1; lvl > a.snake.Level {
			a.snake.Level = lvl
			leveled = true
		}
		a.food = a.spawnFood()
	} else {
		a.snake.Segments = a.snake.Segments[:len(a.snake.Segments)-1]
	}
	snap := a.snapshotLocked()
	level := a.snake.Level
	a.mu.Unlock()

	a.hub.sendEvent(a.player, constants.EVT_YOUR_STATE, snap)
	if leveled {
		a.hub.sendEvent(a.player, constants.EVT_NOTIFICATION_NEW, models.NotificationPayload{
			Type:    constants.NOTIF_LEVEL_UP,
			Message: "Level up!",
			Details: map[string]any{"level": level},
		})
	}
	if ate {
		a.hub.BroadcastSharedState()
	}
}
