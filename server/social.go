package server

import (
	"fmt"

	"snake-arena/constants"
	"snake-arena/models"
)

// handleFriendRequest relays the request to the target as a notification
// carrying both the sender's id and display name, which is what lets the
// receiving client attach accept/decline actions.
func (h *Hub) handleFriendRequest(from *Player, req models.FriendRequestPayload) {
	target, ok := h.player(req.ToPlayerID)
	if !ok {
		h.sendEvent(from, constants.EVT_ERROR, models.ErrorPayload{
			Message: "That player is no longer online.",
			Event:   constants.EVT_SEND_FRIEND_REQUEST,
		})
		return
	}
	fromName := req.FromPlayerName
	if fromName == "" {
		fromName = from.Name
	}
	h.sendEvent(target, constants.EVT_NOTIFICATION_NEW, models.NotificationPayload{
		Type:    constants.NOTIF_FRIEND_REQUEST,
		Message: fmt.Sprintf("%s wants to be your friend.", fromName),
		Details: map[string]any{
			"fromPlayerId":   from.ID,
			"fromPlayerName": fromName,
		},
	})
}

// handleFriendAccept tells the original requester their request went
// through.
func (h *Hub) handleFriendAccept(accepter *Player, req models.FriendAcceptPayload) {
	requester, ok := h.player(req.RequestFromPlayerID)
	if !ok {
		return
	}
	h.sendEvent(requester, constants.EVT_NOTIFICATION_NEW, models.NotificationPayload{
		Type:    constants.NOTIF_FRIEND_ACCEPTED,
		Message: fmt.Sprintf("%s accepted your friend request.", accepter.Name),
		Details: map[string]any{"playerName": accepter.Name},
	})
}
