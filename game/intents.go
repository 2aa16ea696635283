package game

import (
	"fmt"
	"log"
	"strings"

	"snake-arena/constants"
	"snake-arena/models"
)

// Join sends the join request when every precondition holds. Otherwise
// nothing is sent and one error notification enumerates everything that is
// missing.
func (c *Client) Join() {
	name, team := c.identity()

	var problems []string
	if name == "" {
		problems = append(problems, "Name required.")
	}
	if team == "" {
		problems = append(problems, "Team required.")
	}
	if c.store.LocalPlayerID() == "" || !c.conn.Connected() {
		problems = append(problems, "Connection issue.")
	}
	if len(problems) > 0 {
		c.inbox.Dispatch(models.Notification{
			Type:    constants.NOTIF_ERROR,
			Message: "Cannot join: " + strings.Join(problems, " "),
		})
		return
	}

	c.conn.Emit(constants.EVT_JOIN_GAME, models.JoinRequest{Name: name, PreferredTeam: team})
}

// StartOrResume fires the start intent for a fresh, paused or defeated
// snake. Blocked while an overlay panel is open.
func (c *Client) StartOrResume() {
	if c.panels.AnyOpen() {
		c.inbox.Dispatch(models.Notification{
			Type:    constants.NOTIF_INFO,
			Message: "Close open windows to start/resume game.",
		})
		return
	}
	st := c.store.Snapshot()
	if st.LocalPlayerID == "" || !c.conn.Connected() {
		c.inbox.Dispatch(models.Notification{
			Type:    constants.NOTIF_ERROR,
			Message: "Cannot start/resume. Not connected or player ID missing.",
		})
		return
	}
	if st.Snake != nil {
		if st.Snake.IsDefeated || !st.Active || st.Snake.Paused() {
			c.conn.Emit(constants.EVT_START_MY_GAME, nil)
			c.store.SetRunningState(true, false)
		}
		return
	}
	if st.Joined {
		c.inbox.Dispatch(models.Notification{
			Type:    constants.NOTIF_INFO,
			Message: "Waiting for game data... Click again if needed.",
		})
	}
}

// Pause suspends the player's own simulation via the explicit pause
// button. A pause taken this way is not undone by closing a panel.
func (c *Client) Pause() {
	st := c.store.Snapshot()
	if st.LocalPlayerID == "" || !c.conn.Connected() {
		return
	}
	if !st.Active || st.Snake == nil || st.Snake.Paused() || st.Snake.IsDefeated {
		return
	}
	c.conn.Emit(constants.EVT_PAUSE_MY_GAME, nil)
	c.store.SetRunningState(true, true)
}

// ChangeDirection forwards a steering intent while the game is active.
func (c *Client) ChangeDirection(dir constants.Direction) {
	if !dir.Valid() || !c.store.Active() || !c.conn.Connected() {
		return
	}
	c.conn.Emit(constants.EVT_CHANGE_DIRECTION, models.DirectionPayload{Direction: dir})
}

// Retry clears the defeated snake's local flags and waits for the server
// to deliver a fresh snapshot. It does not request a new snake by itself.
func (c *Client) Retry() {
	c.store.PrepareForRetry()
}

// Leave drops out of the arena voluntarily, keeping the connection and
// identity intact.
func (c *Client) Leave() {
	c.store.SetJoined(false)
	c.store.ResetFullLocalGameState()
	if c.conn.Connected() {
		c.conn.Emit(constants.EVT_LEAVE_GAME, nil)
	}
}

// SendFriendRequest targets a roster entry. The roster panel closes and the
// game resumes, mirroring the surface flow that triggers this intent.
func (c *Client) SendFriendRequest(target models.PlayerPublicInfo) {
	name, _ := c.identity()
	if c.store.LocalPlayerID() == "" || name == "" || target.ID == "" {
		c.inbox.Dispatch(models.Notification{
			Type:    constants.NOTIF_ERROR,
			Message: "Cannot send friend request: Your info or target info is missing.",
		})
		return
	}
	c.conn.Emit(constants.EVT_SEND_FRIEND_REQUEST, models.FriendRequestPayload{
		ToPlayerID:     target.ID,
		FromPlayerName: name,
	})
	c.inbox.Dispatch(models.Notification{
		Type:    constants.NOTIF_INFO,
		Message: fmt.Sprintf("Friend request sent to %s.", target.Name),
	})
	c.panels.CloseRoster()
}

// InvokeNotificationAction runs a notification button through its
// lifecycle (mark read, remove when single-use) and emits whatever the
// action implies.
func (c *Client) InvokeNotificationAction(notificationID, actionKey string) {
	payload, ok := c.inbox.InvokeAction(notificationID, actionKey)
	if !ok {
		return
	}
	switch actionKey {
	case constants.ACTION_ACCEPT_FRIEND:
		friendID, _ := payload["friendId"].(string)
		if friendID == "" {
			return
		}
		c.conn.Emit(constants.EVT_ACCEPT_FRIEND_REQUEST, models.FriendAcceptPayload{RequestFromPlayerID: friendID})
		log.Printf("game: accepted friend request from %s", friendID)
	case constants.ACTION_DECLINE_FRIEND:
		if friendID, _ := payload["friendId"].(string); friendID != "" {
			log.Printf("game: declined friend request from %s", friendID)
		}
	}
}
