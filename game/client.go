package game

import (
	"strings"
	"sync"

	"snake-arena/inbox"
	"snake-arena/models"
	"snake-arena/session"
)

// Emitter is the outbound side of the connection as the game layer sees it.
type Emitter interface {
	Emit(event string, data any)
	Connected() bool
}

// Client ties the session store, the notification inbox and the connection
// together: it routes inbound server events into state mutations and local
// user intents into outbound messages. Construct one per application
// lifetime and wire it to the socket's OnMessage/OnStatus.
type Client struct {
	store  *session.Store
	inbox  *inbox.Inbox
	conn   Emitter
	panels *PanelCoordinator

	mu   sync.Mutex
	name string
	team models.Team
}

func NewClient(store *session.Store, ib *inbox.Inbox, conn Emitter) *Client {
	c := &Client{store: store, inbox: ib, conn: conn}
	c.panels = NewPanelCoordinator(store, ib, conn)
	return c
}

func (c *Client) Store() *session.Store { return c.store }

func (c *Client) Inbox() *inbox.Inbox { return c.inbox }

func (c *Client) Panels() *PanelCoordinator { return c.panels }

// SetIdentity records the display name and team the player picked on the
// join screen. Both are validated again when the join intent fires.
func (c *Client) SetIdentity(name string, team models.Team) {
	c.mu.Lock()
	c.name = strings.TrimSpace(name)
	c.team = team
	c.mu.Unlock()
}

func (c *Client) identity() (string, models.Team) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name, c.team
}
