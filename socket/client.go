package socket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"snake-arena/constants"
	"snake-arena/models"
	"snake-arena/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client owns the single persistent connection to the arena server. It does
// not connect on construction; call Connect explicitly. Inbound messages
// are delivered in order on one goroutine per connection. On connection
// loss it retries up to RECONNECT_ATTEMPTS times at RECONNECT_DELAY
// intervals, then gives up; the caller only sees the status change.
type Client struct {
	url string

	mu     sync.Mutex
	conn   *websocket.Conn
	send   chan []byte
	status session.ConnStatus
	closed bool

	onMessage func(event string, data json.RawMessage)
	onStatus  func(session.ConnStatus)
}

func New(rawURL string) *Client {
	return &Client{url: rawURL}
}

// OnMessage sets the inbound handler. Set before Connect.
func (c *Client) OnMessage(fn func(event string, data json.RawMessage)) {
	c.onMessage = fn
}

// OnStatus sets the connection-status handler. Set before Connect.
func (c *Client) OnStatus(fn func(session.ConnStatus)) {
	c.onStatus = fn
}

func (c *Client) Status() session.ConnStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Client) Connected() bool {
	return c.Status() == session.StatusConnected
}

func (c *Client) setStatus(s session.ConnStatus) {
	c.mu.Lock()
	changed := c.status != s
	c.status = s
	c.mu.Unlock()
	if changed && c.onStatus != nil {
		c.onStatus(s)
	}
}

// Connect dials the server and starts the read/write pumps.
func (c *Client) Connect() error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	c.closed = false
	c.mu.Unlock()

	c.setStatus(session.StatusConnecting)
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		c.setStatus(session.StatusDisconnected)
		return err
	}

	send := make(chan []byte, 256)
	c.mu.Lock()
	c.conn = conn
	c.send = send
	c.mu.Unlock()
	c.setStatus(session.StatusConnected)

	go c.writePump(conn, send)
	go c.readPump(conn)
	return nil
}

// Close shuts the connection down for good; no reconnection follows.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if conn != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		conn.Close()
	}
	c.setStatus(session.StatusDisconnected)
}

// Emit sends one event to the server, fire-and-forget. Messages are dropped
// silently while disconnected.
func (c *Client) Emit(event string, data any) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			log.Printf("socket: marshal %s: %v", event, err)
			return
		}
		raw = b
	}
	frame, err := json.Marshal(models.Envelope{Event: event, Data: raw})
	if err != nil {
		log.Printf("socket: marshal envelope %s: %v", event, err)
		return
	}

	c.mu.Lock()
	send := c.send
	connected := c.conn != nil
	c.mu.Unlock()
	if !connected {
		return
	}
	select {
	case send <- frame:
	default:
		log.Printf("socket: send buffer full, dropping %s", event)
	}
}

func (c *Client) readPump(conn *websocket.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("socket: read error: %v", err)
			}
			break
		}

		var env models.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("socket: bad frame: %v", err)
			continue
		}
		if env.Event == "" {
			continue
		}
		if c.onMessage != nil {
			c.onMessage(env.Event, env.Data)
		}
	}

	c.mu.Lock()
	deliberate := c.closed
	c.conn = nil
	c.mu.Unlock()
	c.setStatus(session.StatusDisconnected)
	if !deliberate {
		go c.reconnect()
	}
}

func (c *Client) writePump(conn *websocket.Conn, send chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) reconnect() {
	for attempt := 1; attempt <= constants.RECONNECT_ATTEMPTS; attempt++ {
		time.Sleep(constants.RECONNECT_DELAY)
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return
		}
		if err := c.Connect(); err == nil {
			return
		}
		log.Printf("socket: reconnect attempt %d/%d failed", attempt, constants.RECONNECT_ATTEMPTS)
	}
	// Out of attempts; the Disconnected status is the only signal.
}
