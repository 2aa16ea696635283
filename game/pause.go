package game

import (
	"sync"

	"snake-arena/constants"
	"snake-arena/inbox"
	"snake-arena/models"
	"snake-arena/session"
)

type panelState int

const (
	panelIdle panelState = iota
	panelNotifications
	panelRoster
)

// PanelCoordinator arbitrates the pause that overlay panels impose on the
// player's own game. The two panels are mutually exclusive, so a single
// tagged state plus one "we caused the pause" flag replaces per-panel
// booleans; swapping panels must not double-pause, and closing the last
// panel must resume at most once.
type PanelCoordinator struct {
	store *session.Store
	inbox *inbox.Inbox
	conn  Emitter

	mu            sync.Mutex
	state         panelState
	pausedByPanel bool
}

func NewPanelCoordinator(store *session.Store, ib *inbox.Inbox, conn Emitter) *PanelCoordinator {
	return &PanelCoordinator{store: store, inbox: ib, conn: conn}
}

func (p *PanelCoordinator) NotificationsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == panelNotifications
}

func (p *PanelCoordinator) RosterOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == panelRoster
}

func (p *PanelCoordinator) AnyOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state != panelIdle
}

// ToggleNotifications opens or closes the notification panel. Opening
// marks everything read; opening over the roster panel swaps without
// touching the underlying run state.
func (p *PanelCoordinator) ToggleNotifications() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case panelNotifications:
		p.state = panelIdle
		p.resumeLocked()
	case panelRoster:
		p.inbox.MarkAllRead()
		p.state = panelNotifications
	default:
		p.inbox.MarkAllRead()
		p.state = panelNotifications
		p.pauseLocked()
	}
}

// ToggleRoster opens or closes the roster panel, symmetric to
// ToggleNotifications minus the mark-read.
func (p *PanelCoordinator) ToggleRoster() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case panelRoster:
		p.state = panelIdle
		p.resumeLocked()
	case panelNotifications:
		p.state = panelRoster
	default:
		p.state = panelRoster
		p.pauseLocked()
	}
}

// CloseNotifications closes the panel if open; no-op otherwise.
func (p *PanelCoordinator) CloseNotifications() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != panelNotifications {
		return
	}
	p.state = panelIdle
	p.resumeLocked()
}

// CloseRoster closes the panel if open; no-op otherwise.
func (p *PanelCoordinator) CloseRoster() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != panelRoster {
		return
	}
	p.state = panelIdle
	p.resumeLocked()
}

// pauseLocked emits the pause intent when the game is actually running.
// Records that the panel, not the player, caused the pause.
func (p *PanelCoordinator) pauseLocked() {
	st := p.store.Snapshot()
	if st.LocalPlayerID == "" || !p.conn.Connected() {
		return
	}
	if !st.Active || st.Snake == nil || st.Snake.Paused() || st.Snake.IsDefeated {
		return
	}
	p.conn.Emit(constants.EVT_PAUSE_MY_GAME, nil)
	p.store.SetRunningState(true, true)
	p.pausedByPanel = true
	p.inbox.Dispatch(models.Notification{Type: constants.NOTIF_INFO, Message: "Game paused."})
}

// resumeLocked emits the resume intent only when this coordinator caused
// the pause and the snake survived it. A pause the player took explicitly
// stays in place. The flag clears either way.
func (p *PanelCoordinator) resumeLocked() {
	defer func() { p.pausedByPanel = false }()
	if !p.pausedByPanel {
		return
	}
	st := p.store.Snapshot()
	if st.LocalPlayerID == "" || !p.conn.Connected() {
		return
	}
	if st.Snake == nil || !st.Snake.Paused() || st.Snake.IsDefeated {
		return
	}
	p.conn.Emit(constants.EVT_START_MY_GAME, nil)
	p.store.SetRunningState(true, false)
	p.inbox.Dispatch(models.Notification{Type: constants.NOTIF_INFO, Message: "Game resumed."})
}
