package models

import (
	"errors"
	"testing"
	"time"
)

func TestChatOrdering(t *testing.T) {
	resetDB(t)

	messages, err := testDB.Chat.ForTask("staff_bios")
	if err != nil {
		t.Fatalf("ForTask failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 seeded messages, got %d", len(messages))
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].Timestamp.Before(messages[i-1].Timestamp) {
			t.Fatal("messages should be ordered by timestamp ascending")
		}
	}

	// A message inserted with an earlier timestamp sorts before the rest.
	early := &ChatMessage{
		TaskID: "staff_bios", UserID: "1", UserName: "Dr. Smith",
		Message:   "Before everything",
		Timestamp: ts("2025-05-16T08:00:00Z"),
	}
	if err := testDB.Create(early).Error; err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	messages, err = testDB.Chat.ForTask("staff_bios")
	if err != nil {
		t.Fatalf("ForTask failed: %v", err)
	}
	if messages[0].ID != early.ID {
		t.Error("earliest timestamp should sort first")
	}
}

func TestChatSend(t *testing.T) {
	resetDB(t)

	author, err := testDB.Users.Get("2")
	if err != nil {
		t.Fatalf("Get user failed: %v", err)
	}

	msg, err := testDB.Chat.Send("staff_bios", author, "Got the bios, thanks!", []string{"bios.zip"})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if msg.UserName != "Jane Cooper" {
		t.Errorf("message should carry author name, got %s", msg.UserName)
	}
	if len(msg.Attachments) != 1 || msg.Attachments[0] != "bios.zip" {
		t.Errorf("attachments not stored: %v", msg.Attachments)
	}
	if msg.Timestamp.IsZero() || time.Since(msg.Timestamp) > time.Minute {
		t.Error("sent message should be stamped now")
	}

	messages, err := testDB.Chat.ForTask("staff_bios")
	if err != nil {
		t.Fatalf("ForTask failed: %v", err)
	}
	if messages[len(messages)-1].ID != msg.ID {
		t.Error("new message should append at the end")
	}
}

func TestChatSendRequiresAuthor(t *testing.T) {
	resetDB(t)

	_, err := testDB.Chat.Send("staff_bios", nil, "anonymous", nil)
	if !errors.Is(err, ErrNoCurrentUser) {
		t.Fatalf("expected ErrNoCurrentUser, got %v", err)
	}
}
