package session

import (
	"reflect"
	"testing"

	"snake-arena/constants"
	"snake-arena/models"
)

func boolPtr(b bool) *bool { return &b }

func testSnake(id string) models.PlayerSnake {
	return models.PlayerSnake{
		ID:        id,
		Name:      "Alice",
		Segments:  []models.Position{{X: 4, Y: 7}, {X: 3, Y: 7}},
		Direction: constants.RIGHT,
		Color:     "#fff",
		Team:      models.TeamRed,
		Score:     3,
		Level:     1,
	}
}

func testSnapshot(id string) models.IndividualState {
	return models.IndividualState{
		Snake:     testSnake(id),
		Food:      &models.FoodPellet{ID: "f1", X: 9, Y: 9, Color: "#fbbf24", Value: 1},
		GameBoard: models.DefaultBoard(),
	}
}

func TestSetLocalIdentityClearCascadesReset(t *testing.T) {
	s := NewStore()
	s.SetLocalIdentity("p1")
	s.ApplyIndividualSnapshot(testSnapshot("p1"))
	s.SetRunningState(true, false)

	s.SetLocalIdentity("")
	st := s.Snapshot()
	if st.LocalPlayerID != "" || st.Snake != nil || st.Food != nil || st.Active {
		t.Fatalf("reset incomplete: %+v", st)
	}
	if st.Board != models.DefaultBoard() {
		t.Fatalf("board not reset: %+v", st.Board)
	}

	// Second clear must be a no-op producing the same state.
	s.SetLocalIdentity("")
	if !reflect.DeepEqual(s.Snapshot(), st) {
		t.Fatal("SetLocalIdentity(\"\") is not idempotent")
	}
}

func TestApplyIndividualSnapshotDerivesLocalPlayer(t *testing.T) {
	s := NewStore()
	s.SetLocalIdentity("p1")
	s.ApplyIndividualSnapshot(testSnapshot("p1"))
	if snake := s.Snapshot().Snake; snake == nil || !snake.IsLocalPlayer {
		t.Fatal("expected IsLocalPlayer for matching id")
	}

	s.ApplyIndividualSnapshot(testSnapshot("p2"))
	if snake := s.Snapshot().Snake; snake == nil || snake.IsLocalPlayer {
		t.Fatal("expected IsLocalPlayer false for foreign id")
	}
}

func TestPauseFlagPreservedWhenSnapshotOmitsIt(t *testing.T) {
	s := NewStore()
	s.SetLocalIdentity("p1")

	snap := testSnapshot("p1")
	snap.Snake.IsPaused = boolPtr(true)
	s.ApplyIndividualSnapshot(snap)

	// Omitted flag keeps the last explicit value.
	snap = testSnapshot("p1")
	snap.Snake.IsPaused = nil
	s.ApplyIndividualSnapshot(snap)
	if !s.Snapshot().Snake.Paused() {
		t.Fatal("pause flag reset by snapshot that omitted it")
	}

	snap = testSnapshot("p1")
	snap.Snake.IsPaused = boolPtr(false)
	s.ApplyIndividualSnapshot(snap)
	snap = testSnapshot("p1")
	snap.Snake.IsPaused = nil
	s.ApplyIndividualSnapshot(snap)
	if s.Snapshot().Snake.Paused() {
		t.Fatal("pause flag flipped true without an explicit value")
	}
}

func TestSnapshotsNeverResurrectActive(t *testing.T) {
	s := NewStore()
	s.SetLocalIdentity("p1")
	s.ApplyIndividualSnapshot(testSnapshot("p1"))
	s.SetRunningState(true, false)
	if !s.Active() {
		t.Fatal("expected active after SetRunningState(true, false)")
	}

	// A paused snapshot forces active off.
	snap := testSnapshot("p1")
	snap.Snake.IsPaused = boolPtr(true)
	s.ApplyIndividualSnapshot(snap)
	if s.Active() {
		t.Fatal("paused snapshot left active true")
	}

	// A clean snapshot does not turn it back on.
	snap = testSnapshot("p1")
	snap.Snake.IsPaused = boolPtr(false)
	s.ApplyIndividualSnapshot(snap)
	if s.Active() {
		t.Fatal("snapshot resurrected the active flag")
	}
}

func TestSetRunningStateWithoutSnake(t *testing.T) {
	s := NewStore()
	s.SetLocalIdentity("p1")
	s.SetRunningState(true, false)
	if s.Active() {
		t.Fatal("active set true with no snake present")
	}
}

func TestSetRunningStateClearsStaleDefeat(t *testing.T) {
	s := NewStore()
	s.SetLocalIdentity("p1")
	snap := testSnapshot("p1")
	snap.Snake.IsDefeated = true
	s.ApplyIndividualSnapshot(snap)

	s.SetRunningState(true, false)
	st := s.Snapshot()
	if !st.Active || st.Snake.IsDefeated {
		t.Fatalf("stale defeat not cleared: active=%v defeated=%v", st.Active, st.Snake.IsDefeated)
	}
}

func TestApplyDefeat(t *testing.T) {
	s := NewStore()
	s.SetLocalIdentity("p1")
	snap := testSnapshot("p1")
	snap.Snake.IsPaused = boolPtr(true)
	s.ApplyIndividualSnapshot(snap)

	score, level := 42, 5
	s.ApplyDefeat(models.DefeatPayload{FinalScore: &score, LevelReached: &level})
	st := s.Snapshot()
	if !st.Snake.IsDefeated || st.Snake.Paused() {
		t.Fatalf("defeat flags wrong: %+v", st.Snake)
	}
	if st.Snake.Score != 42 || st.Snake.Level != 5 {
		t.Fatalf("final stats not applied: score=%d level=%d", st.Snake.Score, st.Snake.Level)
	}
	if st.Active {
		t.Fatal("defeat left the game active")
	}

	// Harmless with no snake.
	s.ResetFullLocalGameState()
	s.ApplyDefeat(models.DefeatPayload{})
	if s.Active() {
		t.Fatal("defeat on empty state set active")
	}
}

func TestPrepareForRetry(t *testing.T) {
	s := NewStore()
	s.SetLocalIdentity("p1")
	snap := testSnapshot("p1")
	snap.Snake.IsDefeated = true
	s.ApplyIndividualSnapshot(snap)

	s.PrepareForRetry()
	st := s.Snapshot()
	if st.Snake.IsDefeated || st.Snake.Paused() {
		t.Fatalf("retry did not clear flags: %+v", st.Snake)
	}
	if st.Active {
		t.Fatal("retry must not start the game")
	}
	if st.Food != nil {
		t.Fatal("retry must drop the food pellet")
	}
}

func TestApplySharedSnapshotReplacesWholesale(t *testing.T) {
	s := NewStore()
	s.ApplySharedSnapshot(models.SharedState{
		TeamScores: models.TeamScores{Red: 10, Blue: 4},
		ActivePlayers: []models.PlayerPublicInfo{
			{ID: "p1", Name: "Alice", Team: models.TeamRed, Score: 10},
			{ID: "p2", Name: "Bob", Team: models.TeamBlue, Score: 4},
		},
	})
	s.ApplySharedSnapshot(models.SharedState{
		TeamScores:    models.TeamScores{Red: 11, Blue: 4},
		ActivePlayers: []models.PlayerPublicInfo{{ID: "p1", Name: "Alice", Team: models.TeamRed, Score: 11}},
	})

	st := s.Snapshot()
	if st.TeamScores != (models.TeamScores{Red: 11, Blue: 4}) {
		t.Fatalf("scores: %+v", st.TeamScores)
	}
	if len(st.Roster) != 1 || st.Roster[0].ID != "p1" {
		t.Fatalf("roster not replaced: %+v", st.Roster)
	}
}

func TestSubscribeFiresOnMutation(t *testing.T) {
	s := NewStore()
	fired := 0
	unsub := s.Subscribe(func() { fired++ })
	s.SetLocalIdentity("p1")
	if fired != 1 {
		t.Fatalf("expected 1 notification, got %d", fired)
	}
	unsub()
	s.SetLocalIdentity("")
	if fired != 1 {
		t.Fatalf("listener fired after unsubscribe: %d", fired)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.SetLocalIdentity("p1")
	s.ApplyIndividualSnapshot(testSnapshot("p1"))

	st := s.Snapshot()
	st.Snake.Score = 999
	st.Snake.Segments[0].X = 999
	*st.Snake.IsPaused = true

	fresh := s.Snapshot()
	if fresh.Snake.Score == 999 || fresh.Snake.Segments[0].X == 999 || fresh.Snake.Paused() {
		t.Fatal("snapshot aliases store state")
	}
}
