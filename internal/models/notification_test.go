package models

import (
	"errors"
	"testing"
)

func TestNotificationsNewestFirst(t *testing.T) {
	resetDB(t)

	notifications, err := testDB.Notifications.ForUser("1", 50)
	if err != nil {
		t.Fatalf("ForUser failed: %v", err)
	}
	if len(notifications) != 3 {
		t.Fatalf("expected 3 seeded notifications, got %d", len(notifications))
	}
	if notifications[0].ID != "n3" || notifications[2].ID != "n1" {
		t.Error("notifications should come back newest first")
	}

	limited, err := testDB.Notifications.ForUser("1", 2)
	if err != nil {
		t.Fatalf("ForUser failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit not applied, got %d", len(limited))
	}
}

func TestNotificationUnreadAndMarkRead(t *testing.T) {
	resetDB(t)

	count, err := testDB.Notifications.UnreadCount("1")
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}

	if err := testDB.Notifications.MarkRead("n1", "1"); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	count, err = testDB.Notifications.UnreadCount("1")
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 unread after MarkRead, got %d", count)
	}

	// Another user's notification id is invisible to this user.
	if err := testDB.Notifications.MarkRead("n3", "2"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}

func TestNotificationAddStartsUnread(t *testing.T) {
	resetDB(t)

	n := &Notification{UserID: "1", Type: NoticeError, Message: "Upload failed", Read: true}
	if err := testDB.Notifications.Add(n); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if n.Read {
		t.Error("Add should force new notices unread")
	}
	if n.ID == "" || n.Timestamp.IsZero() {
		t.Error("Add should assign id and timestamp")
	}
}
