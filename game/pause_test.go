package game

import (
	"testing"

	"snake-arena/constants"
)

// runningClient returns a client mid-game: joined, snake present, active.
func runningClient(t *testing.T) (*Client, *fakeConn) {
	t.Helper()
	c, conn := newTestClient(t)
	connectAndJoin(t, c)
	deliver(t, c, constants.EVT_YOUR_STATE, snakeSnapshot(nil, false))
	c.StartOrResume()
	if !c.Store().Active() {
		t.Fatal("setup: game not active")
	}
	return c, conn
}

func TestOpeningPanelPausesOnce(t *testing.T) {
	c, conn := runningClient(t)
	p := c.Panels()

	p.ToggleNotifications()
	if conn.count(constants.EVT_PAUSE_MY_GAME) != 1 {
		t.Fatalf("pause intents = %d", conn.count(constants.EVT_PAUSE_MY_GAME))
	}
	if c.Store().Active() {
		t.Fatal("game still active with panel open")
	}
	if !p.NotificationsOpen() {
		t.Fatal("panel not open")
	}

	p.ToggleNotifications()
	if conn.count(constants.EVT_START_MY_GAME) != 2 { // initial start + resume
		t.Fatalf("resume intents = %d", conn.count(constants.EVT_START_MY_GAME)-1)
	}
	if !c.Store().Active() {
		t.Fatal("game not resumed after closing panel")
	}
}

func TestPanelSwapEmitsExactlyOneResume(t *testing.T) {
	c, conn := runningClient(t)
	p := c.Panels()
	startsBefore := conn.count(constants.EVT_START_MY_GAME)

	p.ToggleNotifications() // open: pause
	p.ToggleRoster()        // swap: no pause/resume traffic
	if conn.count(constants.EVT_PAUSE_MY_GAME) != 1 {
		t.Fatal("swap double-paused")
	}
	if c.Store().Active() {
		t.Fatal("active while panels were open")
	}
	p.ToggleRoster() // close roster: one resume
	p.CloseNotifications()
	p.CloseRoster()

	resumes := conn.count(constants.EVT_START_MY_GAME) - startsBefore
	if resumes != 1 {
		t.Fatalf("resume intents = %d, want 1", resumes)
	}
	if !c.Store().Active() {
		t.Fatal("game not running after all panels closed")
	}
}

func TestRosterPanelSymmetry(t *testing.T) {
	c, conn := runningClient(t)
	p := c.Panels()

	p.ToggleRoster()
	if conn.count(constants.EVT_PAUSE_MY_GAME) != 1 || c.Store().Active() {
		t.Fatal("roster open did not pause")
	}
	p.ToggleNotifications() // swap to notifications
	if !p.NotificationsOpen() || p.RosterOpen() {
		t.Fatal("swap state wrong")
	}
	p.ToggleNotifications() // close: resume
	if !c.Store().Active() {
		t.Fatal("not resumed")
	}
}

func TestExplicitPauseNotAutoResumed(t *testing.T) {
	c, conn := runningClient(t)
	p := c.Panels()

	c.Pause() // the player paused, not a panel
	if c.Store().Active() {
		t.Fatal("pause ineffective")
	}
	startsBefore := conn.count(constants.EVT_START_MY_GAME)

	p.ToggleNotifications()
	p.ToggleNotifications()
	if conn.count(constants.EVT_START_MY_GAME) != startsBefore {
		t.Fatal("closing a panel resumed a player-initiated pause")
	}
	if c.Store().Active() {
		t.Fatal("game resumed behind the player's back")
	}
}

func TestDefeatDuringPanelBlocksResume(t *testing.T) {
	c, conn := runningClient(t)
	p := c.Panels()

	p.ToggleNotifications()
	deliver(t, c, constants.EVT_YOU_ARE_DEFEATED, struct{}{})

	startsBefore := conn.count(constants.EVT_START_MY_GAME)
	p.ToggleNotifications()
	if conn.count(constants.EVT_START_MY_GAME) != startsBefore {
		t.Fatal("resume emitted for a defeated snake")
	}
}

func TestOpeningNotificationsMarksAllRead(t *testing.T) {
	c, _ := runningClient(t)
	if c.Inbox().UnreadCount() == 0 {
		t.Fatal("setup: expected unread notifications")
	}
	c.Panels().ToggleNotifications()
	if c.Inbox().UnreadCount() != 0 {
		t.Fatal("opening the panel did not mark notifications read")
	}
}

func TestPanelOpenWhileIdleDoesNotPause(t *testing.T) {
	c, conn := newTestClient(t)
	connectAndJoin(t, c)
	deliver(t, c, constants.EVT_YOUR_STATE, snakeSnapshot(nil, false))
	// Game never started.
	c.Panels().ToggleRoster()
	if conn.count(constants.EVT_PAUSE_MY_GAME) != 0 {
		t.Fatal("paused a game that was not running")
	}
	c.Panels().ToggleRoster()
	if conn.count(constants.EVT_START_MY_GAME) != 0 {
		t.Fatal("resumed a game that was never paused")
	}
}
