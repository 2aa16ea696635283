package inbox

import (
	"fmt"
	"testing"

	"snake-arena/constants"
	"snake-arena/models"
)

func TestDispatchAssignsIDAndInsertsAtHead(t *testing.T) {
	in := New()
	in.Dispatch(models.Notification{Type: constants.NOTIF_INFO, Message: "first"})
	in.Dispatch(models.Notification{Type: constants.NOTIF_INFO, Message: "second"})

	items := in.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d", len(items))
	}
	if items[0].Message != "second" {
		t.Fatalf("newest not first: %q", items[0].Message)
	}
	if items[0].ID == "" || items[0].ID == items[1].ID {
		t.Fatal("ids missing or not unique")
	}
	if items[0].IsRead {
		t.Fatal("new notification must be unread")
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	in := New()
	for i := 0; i < constants.MAX_NOTIFICATIONS+5; i++ {
		in.Dispatch(models.Notification{Type: constants.NOTIF_INFO, Message: fmt.Sprintf("msg-%d", i)})
	}
	items := in.Items()
	if len(items) != constants.MAX_NOTIFICATIONS {
		t.Fatalf("len = %d, want %d", len(items), constants.MAX_NOTIFICATIONS)
	}
	if items[len(items)-1].Message != "msg-5" {
		t.Fatalf("oldest survivor = %q, want msg-5", items[len(items)-1].Message)
	}
	if items[0].Message != "msg-34" {
		t.Fatalf("newest = %q", items[0].Message)
	}
}

func TestPreferenceGating(t *testing.T) {
	in := New()
	in.SetPreferences(Preferences{GameEvents: false, SocialEvents: false, ChallengeEvents: false})

	cases := []struct {
		typ  string
		want bool
	}{
		{constants.NOTIF_GAME_EVENT, false},
		{constants.NOTIF_GAME_OVER, false},
		{constants.NOTIF_LEVEL_UP, false},
		{constants.NOTIF_FRIEND_REQUEST, false},
		{constants.NOTIF_SOCIAL_INFO, false},
		{constants.NOTIF_CHALLENGE_COMPLETED, false},
		{constants.NOTIF_INFO, true},
		{constants.NOTIF_ERROR, true},
		{constants.NOTIF_SUCCESS, true},
	}
	for _, tc := range cases {
		if got := in.Dispatch(models.Notification{Type: tc.typ, Message: "x"}); got != tc.want {
			t.Errorf("Dispatch(%s) = %v, want %v", tc.typ, got, tc.want)
		}
	}

	in.SetPreferences(DefaultPreferences())
	if !in.Dispatch(models.Notification{Type: constants.NOTIF_GAME_EVENT, Message: "x"}) {
		t.Fatal("enabled category rejected")
	}
}

func TestUnknownTypeRejected(t *testing.T) {
	in := New()
	if in.Dispatch(models.Notification{Type: "SOMETHING_ELSE", Message: "x"}) {
		t.Fatal("unknown type accepted")
	}
}

func TestMarkAllReadAndUnreadCount(t *testing.T) {
	in := New()
	in.Dispatch(models.Notification{Type: constants.NOTIF_INFO, Message: "a"})
	in.Dispatch(models.Notification{Type: constants.NOTIF_ERROR, Message: "b"})
	if in.UnreadCount() != 2 {
		t.Fatalf("unread = %d", in.UnreadCount())
	}
	in.MarkAllRead()
	if in.UnreadCount() != 0 {
		t.Fatalf("unread after mark = %d", in.UnreadCount())
	}
	if in.Len() != 2 {
		t.Fatal("MarkAllRead removed items")
	}
}

func TestInvokeActionSingleUseRemoves(t *testing.T) {
	in := New()
	in.Dispatch(models.Notification{
		Type:    constants.NOTIF_FRIEND_REQUEST,
		Message: "Bob wants to be your friend.",
		Actions: []models.NotificationAction{
			{Label: "Accept", Action: constants.ACTION_ACCEPT_FRIEND, Payload: map[string]any{"friendId": "p2"}},
			{Label: "Decline", Action: constants.ACTION_DECLINE_FRIEND, Payload: map[string]any{"friendId": "p2"}},
		},
	})
	id := in.Items()[0].ID

	payload, ok := in.InvokeAction(id, constants.ACTION_ACCEPT_FRIEND)
	if !ok {
		t.Fatal("known id reported not found")
	}
	if payload["friendId"] != "p2" {
		t.Fatalf("payload = %v", payload)
	}
	if in.Len() != 0 {
		t.Fatal("single-use action did not remove the notification")
	}
}

func TestInvokeActionNonSingleUseMarksRead(t *testing.T) {
	in := New()
	in.Dispatch(models.Notification{
		Type:    constants.NOTIF_GAME_EVENT,
		Message: "A challenger appears.",
		Actions: []models.NotificationAction{{Label: "View", Action: "VIEW_DETAILS"}},
	})
	id := in.Items()[0].ID

	if _, ok := in.InvokeAction(id, "VIEW_DETAILS"); !ok {
		t.Fatal("known id reported not found")
	}
	items := in.Items()
	if len(items) != 1 {
		t.Fatal("non-single-use action removed the notification")
	}
	if !items[0].IsRead {
		t.Fatal("invoked notification not marked read")
	}
}

func TestInvokeActionUnknownIDIsNoop(t *testing.T) {
	in := New()
	in.Dispatch(models.Notification{Type: constants.NOTIF_INFO, Message: "a"})
	if _, ok := in.InvokeAction("nope", constants.ACTION_ACCEPT_FRIEND); ok {
		t.Fatal("unknown id reported found")
	}
	if in.Len() != 1 {
		t.Fatal("unknown id mutated the inbox")
	}
}

func TestClearAll(t *testing.T) {
	in := New()
	in.Dispatch(models.Notification{Type: constants.NOTIF_INFO, Message: "a"})
	in.ClearAll()
	if in.Len() != 0 {
		t.Fatal("ClearAll left items behind")
	}
}
