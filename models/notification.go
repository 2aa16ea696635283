package models

import "time"

// NotificationAction is a button attached to a notification. Payload is
// opaque to the inbox; the event router interprets it when the action is
// invoked.
type NotificationAction struct {
	Label   string         `json:"label"`
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Notification struct {
	ID        string               `json:"id"`
	Type      string               `json:"type"`
	Message   string               `json:"message"`
	Timestamp time.Time            `json:"timestamp"`
	IsRead    bool                 `json:"isRead"`
	Details   map[string]any       `json:"details,omitempty"`
	Actions   []NotificationAction `json:"actions,omitempty"`
}
