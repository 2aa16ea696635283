package game

import (
	"encoding/json"
	"fmt"
	"log"

	"snake-arena/constants"
	"snake-arena/models"
	"snake-arena/session"
)

// HandleMessage is the single inbound dispatch point: one handler per
// server event, each mutating the store, the inbox, or both. Handlers are
// idempotent against duplicate delivery; snapshots are wholesale
// replacements, so applying one twice changes nothing.
func (c *Client) HandleMessage(event string, data json.RawMessage) {
	switch event {
	case constants.EVT_CONNECT:
		var p models.ConnectPayload
		if !decode(event, data, &p) {
			return
		}
		if p.ID != "" {
			c.store.SetLocalIdentity(p.ID)
		}

	case constants.EVT_JOINED_SUCCESSFULLY:
		var p models.JoinedPayload
		if !decode(event, data, &p) {
			return
		}
		if p.PlayerID != c.store.LocalPlayerID() {
			return
		}
		c.store.SetJoined(true)
		c.store.SetRunningState(false, false)
		c.inbox.Dispatch(models.Notification{
			Type:    constants.NOTIF_SUCCESS,
			Message: fmt.Sprintf("Welcome, %s! Click 'Start My Game' or press Spacebar when ready.", p.Name),
		})

	case constants.EVT_JOIN_FAILED:
		var p models.JoinFailedPayload
		if !decode(event, data, &p) {
			return
		}
		c.store.SetJoined(false)
		c.inbox.Dispatch(models.Notification{
			Type:    constants.NOTIF_ERROR,
			Message: "Could not join: " + p.Message,
		})

	case constants.EVT_YOUR_STATE:
		var p models.IndividualState
		if !decode(event, data, &p) {
			return
		}
		c.store.ApplyIndividualSnapshot(p)

	case constants.EVT_SHARED_STATE:
		var p models.SharedState
		if !decode(event, data, &p) {
			return
		}
		c.store.ApplySharedSnapshot(p)

	case constants.EVT_YOU_ARE_DEFEATED:
		var p models.DefeatPayload
		if !decode(event, data, &p) {
			return
		}
		c.store.ApplyDefeat(p)

	case constants.EVT_NOTIFICATION_NEW:
		var p models.NotificationPayload
		if !decode(event, data, &p) {
			return
		}
		c.inbox.Dispatch(c.augmentNotification(p))

	case constants.EVT_INFO:
		var p models.InfoPayload
		if !decode(event, data, &p) {
			return
		}
		title := p.Title
		if title == "" {
			title = "Info"
		}
		c.inbox.Dispatch(models.Notification{
			Type:    constants.NOTIF_INFO,
			Message: p.Message,
			Details: map[string]any{"title": title},
		})

	case constants.EVT_ERROR:
		var p models.ErrorPayload
		if !decode(event, data, &p) {
			return
		}
		msg := p.Message
		if msg == "" {
			msg = "An error occurred on the server."
		}
		title := p.Title
		if title == "" {
			title = "Error"
		}
		c.inbox.Dispatch(models.Notification{
			Type:    constants.NOTIF_ERROR,
			Message: msg,
			Details: map[string]any{"title": title},
		})

	default:
		log.Printf("game: unhandled event %q", event)
	}
}

// augmentNotification attaches accept/decline actions to a friend request
// when the details carry both the sender's id and a display name. When
// either is missing the notification still goes through, just without
// actionable buttons.
func (c *Client) augmentNotification(p models.NotificationPayload) models.Notification {
	n := models.Notification{Type: p.Type, Message: p.Message, Details: p.Details}
	if p.Type != constants.NOTIF_FRIEND_REQUEST {
		return n
	}
	fromID, _ := p.Details["fromPlayerId"].(string)
	fromName, _ := p.Details["fromPlayerName"].(string)
	if fromName == "" {
		fromName, _ = p.Details["playerName"].(string)
	}
	if fromID == "" || fromName == "" {
		return n
	}
	payload := map[string]any{"friendId": fromID, "fromPlayerName": fromName}
	n.Actions = []models.NotificationAction{
		{Label: "Accept", Action: constants.ACTION_ACCEPT_FRIEND, Payload: payload},
		{Label: "Decline", Action: constants.ACTION_DECLINE_FRIEND, Payload: payload},
	}
	return n
}

// HandleStatus reacts to connection-state transitions. Losing the
// connection while joined resets the whole local session: identity first,
// so any stale queued snapshot handler finds nothing to corrupt.
func (c *Client) HandleStatus(status session.ConnStatus) {
	c.store.SetConnection(status)
	if status == session.StatusConnected {
		return
	}
	wasJoined := c.store.Joined()
	c.store.SetLocalIdentity("")
	if wasJoined {
		c.store.SetJoined(false)
		c.inbox.Dispatch(models.Notification{
			Type:    constants.NOTIF_ERROR,
			Message: "Disconnected from server.",
		})
	}
}

func decode(event string, data json.RawMessage, v any) bool {
	if len(data) == 0 {
		log.Printf("game: %s without payload", event)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("game: bad %s payload: %v", event, err)
		return false
	}
	return true
}
