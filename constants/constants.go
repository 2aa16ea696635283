package constants

import "time"

const (
	// Default board, cell units
	DEFAULT_BOARD_WIDTH  = 20
	DEFAULT_BOARD_HEIGHT = 15
	DEFAULT_GRID_SIZE    = 20

	TICK_RATE = 150 * time.Millisecond

	// Connection
	SOCKET_PATH        = "/snake"
	RECONNECT_ATTEMPTS = 5
	RECONNECT_DELAY    = 3 * time.Second

	// Notification inbox
	MAX_NOTIFICATIONS = 30

	// Server -> client events
	EVT_CONNECT             = "connect"
	EVT_JOINED_SUCCESSFULLY = "game:joined_successfully"
	EVT_JOIN_FAILED         = "game:join_failed"
	EVT_YOUR_STATE          = "game:your_state"
	EVT_SHARED_STATE        = "game:shared_state"
	EVT_YOU_ARE_DEFEATED    = "player:you_are_defeated"
	EVT_NOTIFICATION_NEW    = "notification:new"
	EVT_INFO                = "info"
	EVT_ERROR               = "error"

	// Client -> server events
	EVT_JOIN_GAME             = "player:join_game"
	EVT_START_MY_GAME         = "player:start_my_game"
	EVT_PAUSE_MY_GAME         = "player:pause_my_game"
	EVT_CHANGE_DIRECTION      = "player:change_direction"
	EVT_LEAVE_GAME            = "player:leave_game"
	EVT_SEND_FRIEND_REQUEST   = "social:send_friend_request"
	EVT_ACCEPT_FRIEND_REQUEST = "social:accept_friend_request"

	// Notification types
	NOTIF_INFO                = "info"
	NOTIF_ERROR               = "error"
	NOTIF_SUCCESS             = "success"
	NOTIF_GAME_EVENT          = "GAME_EVENT"
	NOTIF_GAME_OVER           = "GAME_OVER"
	NOTIF_ITEM_ACQUIRED       = "ITEM_ACQUIRED"
	NOTIF_LEVEL_UP            = "LEVEL_UP"
	NOTIF_PVP_DEFEAT          = "PVP_DEFEAT"
	NOTIF_PVP_VICTORY         = "PVP_VICTORY"
	NOTIF_SOCIAL_INFO         = "SOCIAL_INFO"
	NOTIF_FRIEND_REQUEST      = "FRIEND_REQUEST"
	NOTIF_FRIEND_ACCEPTED     = "FRIEND_ACCEPTED"
	NOTIF_CHALLENGE_COMPLETED = "CHALLENGE_COMPLETED"

	// Notification action keys
	ACTION_ACCEPT_FRIEND       = "ACCEPT_FRIEND"
	ACTION_DECLINE_FRIEND      = "DECLINE_FRIEND"
	ACTION_ACCEPT_GAME_INVITE  = "ACCEPT_GAME_INVITE"
	ACTION_DECLINE_GAME_INVITE = "DECLINE_GAME_INVITE"
)

type Direction string

const (
	UP    Direction = "UP"
	DOWN  Direction = "DOWN"
	LEFT  Direction = "LEFT"
	RIGHT Direction = "RIGHT"
)

func (d Direction) Valid() bool {
	switch d {
	case UP, DOWN, LEFT, RIGHT:
		return true
	}
	return false
}

func (d Direction) Opposite() Direction {
	switch d {
	case UP:
		return DOWN
	case DOWN:
		return UP
	case LEFT:
		return RIGHT
	case RIGHT:
		return LEFT
	}
	return d
}
