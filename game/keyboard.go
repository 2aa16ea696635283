package game

import (
	"strings"

	"snake-arena/constants"
)

// MapKey translates a key name to a direction. Arrow keys and WASD both
// work; anything else reports false.
func MapKey(key string) (constants.Direction, bool) {
	switch strings.ToLower(key) {
	case "w", "up", "arrowup":
		return constants.UP, true
	case "s", "down", "arrowdown":
		return constants.DOWN, true
	case "a", "left", "arrowleft":
		return constants.LEFT, true
	case "d", "right", "arrowright":
		return constants.RIGHT, true
	}
	return "", false
}

// HandleKey is the keyboard surface contract: direction keys steer only
// while the local game is active, space starts or resumes only while
// joined with a snake present and no overlay panel open.
func (c *Client) HandleKey(key string) {
	if dir, ok := MapKey(key); ok {
		c.ChangeDirection(dir)
		return
	}
	k := strings.ToLower(key)
	if k != " " && k != "space" && k != "spacebar" {
		return
	}
	if c.panels.AnyOpen() {
		return
	}
	st := c.store.Snapshot()
	if !st.Joined || st.Snake == nil {
		return
	}
	if st.Snake.IsDefeated || !st.Active || st.Snake.Paused() {
		c.StartOrResume()
	}
}
