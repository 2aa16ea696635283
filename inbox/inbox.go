package inbox

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"snake-arena/constants"
	"snake-arena/models"
)

// Preferences gate whether a notification category reaches the inbox at
// all. They are independent of read state and live in memory only.
type Preferences struct {
	GameEvents      bool
	SocialEvents    bool
	ChallengeEvents bool
}

func DefaultPreferences() Preferences {
	return Preferences{GameEvents: true, SocialEvents: true, ChallengeEvents: true}
}

var (
	gameEventTypes = map[string]bool{
		constants.NOTIF_GAME_EVENT:    true,
		constants.NOTIF_GAME_OVER:     true,
		constants.NOTIF_ITEM_ACQUIRED: true,
		constants.NOTIF_LEVEL_UP:      true,
		constants.NOTIF_PVP_DEFEAT:    true,
		constants.NOTIF_PVP_VICTORY:   true,
	}
	socialEventTypes = map[string]bool{
		constants.NOTIF_SOCIAL_INFO:     true,
		constants.NOTIF_FRIEND_REQUEST:  true,
		constants.NOTIF_FRIEND_ACCEPTED: true,
	}
	challengeEventTypes = map[string]bool{
		constants.NOTIF_CHALLENGE_COMPLETED: true,
	}
	// Always inserted regardless of preferences.
	directDisplayTypes = map[string]bool{
		constants.NOTIF_INFO:    true,
		constants.NOTIF_ERROR:   true,
		constants.NOTIF_SUCCESS: true,
	}
	singleUseActions = map[string]bool{
		constants.ACTION_ACCEPT_FRIEND:       true,
		constants.ACTION_DECLINE_FRIEND:      true,
		constants.ACTION_ACCEPT_GAME_INVITE:  true,
		constants.ACTION_DECLINE_GAME_INVITE: true,
	}
)

// Inbox is a bounded, newest-first queue of user-facing notifications.
type Inbox struct {
	mu        sync.RWMutex
	items     []models.Notification
	prefs     Preferences
	listeners map[int]func()
	nextSub   int
}

func New() *Inbox {
	return &Inbox{
		prefs:     DefaultPreferences(),
		listeners: make(map[int]func()),
	}
}

func (in *Inbox) Subscribe(fn func()) func() {
	in.mu.Lock()
	id := in.nextSub
	in.nextSub++
	in.listeners[id] = fn
	in.mu.Unlock()
	return func() {
		in.mu.Lock()
		delete(in.listeners, id)
		in.mu.Unlock()
	}
}

func (in *Inbox) notify() {
	in.mu.RLock()
	fns := make([]func(), 0, len(in.listeners))
	for _, fn := range in.listeners {
		fns = append(fns, fn)
	}
	in.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

func (in *Inbox) Preferences() Preferences {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.prefs
}

func (in *Inbox) SetPreferences(p Preferences) {
	in.mu.Lock()
	in.prefs = p
	in.mu.Unlock()
	in.notify()
}

func (in *Inbox) allowed(notifType string) bool {
	switch {
	case directDisplayTypes[notifType]:
		return true
	case gameEventTypes[notifType]:
		return in.prefs.GameEvents
	case socialEventTypes[notifType]:
		return in.prefs.SocialEvents
	case challengeEventTypes[notifType]:
		return in.prefs.ChallengeEvents
	}
	return false
}

// Dispatch assigns id and timestamp and inserts at the head, dropping the
// oldest entry beyond capacity. Returns false when the notification's
// category is disabled; info, error and success bypass the gate.
func (in *Inbox) Dispatch(n models.Notification) bool {
	in.mu.Lock()
	if !in.allowed(n.Type) {
		in.mu.Unlock()
		return false
	}
	n.ID = uuid.New().String()
	n.Timestamp = time.Now()
	n.IsRead = false
	in.items = append([]models.Notification{n}, in.items...)
	if len(in.items) > constants.MAX_NOTIFICATIONS {
		in.items = in.items[:constants.MAX_NOTIFICATIONS]
	}
	in.mu.Unlock()
	in.notify()
	return true
}

// Items returns a copy, newest first.
func (in *Inbox) Items() []models.Notification {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return append([]models.Notification(nil), in.items...)
}

func (in *Inbox) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.items)
}

func (in *Inbox) UnreadCount() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	count := 0
	for _, n := range in.items {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (in *Inbox) MarkAllRead() {
	in.mu.Lock()
	for i := range in.items {
		in.items[i].IsRead = true
	}
	in.mu.Unlock()
	in.notify()
}

func (in *Inbox) ClearAll() {
	in.mu.Lock()
	in.items = nil
	in.mu.Unlock()
	in.notify()
}

// InvokeAction marks the target notification read and, for single-use
// action keys, removes it. It returns the invoked action's payload so the
// caller can act on it. An unknown notification id is a no-op, which keeps
// a clear racing an action click harmless.
func (in *Inbox) InvokeAction(notificationID, actionKey string) (map[string]any, bool) {
	in.mu.Lock()
	idx := -1
	for i := range in.items {
		if in.items[i].ID == notificationID {
			idx = i
			break
		}
	}
	if idx == -1 {
		in.mu.Unlock()
		return nil, false
	}
	in.items[idx].IsRead = true
	var payload map[string]any
	for _, a := range in.items[idx].Actions {
		if a.Action == actionKey {
			payload = a.Payload
			break
		}
	}
	if singleUseActions[actionKey] {
		in.items = append(in.items[:idx], in.items[idx+1:]...)
	}
	in.mu.Unlock()
	in.notify()
	return payload, true
}
