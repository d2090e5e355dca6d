package models

import (
	"errors"
	"testing"
	"time"
)

func newTestComment(message string) *Comment {
	return &Comment{
		UserID:    "1",
		UserName:  "Dr. Smith",
		Message:   message,
		Timestamp: time.Now(),
	}
}

func TestAddCommentForcesChangesRequested(t *testing.T) {
	resetDB(t)

	// "about" is seeded approved; any comment knocks it back.
	comment := newTestComment("The hero image is stretched")
	if err := testDB.Reviews.AddComment("about", comment); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	page, err := testDB.Reviews.Get("about")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if page.Status != ReviewChangesRequested {
		t.Errorf("expected status %s, got %s", ReviewChangesRequested, page.Status)
	}

	if comment.Status != CommentOpen {
		t.Errorf("new comment should start open, got %s", comment.Status)
	}
	if !comment.UnreadForPM {
		t.Error("new comment should start unread for the PM")
	}
}

func TestAddCommentUnknownPage(t *testing.T) {
	resetDB(t)

	err := testDB.Reviews.AddComment("nope", newTestComment("hello"))
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestApproveBlockedByOpenComments(t *testing.T) {
	resetDB(t)

	// "services" carries the open seeded comment c1.
	err := testDB.Reviews.Approve("services")
	if !errors.Is(err, ErrHasOpenComments) {
		t.Fatalf("expected ErrHasOpenComments, got %v", err)
	}

	page, err := testDB.Reviews.Get("services")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if page.Status != ReviewChangesRequested {
		t.Errorf("failed approve must not change status, got %s", page.Status)
	}

	if err := testDB.Reviews.ResolveComment("c1"); err != nil {
		t.Fatalf("ResolveComment failed: %v", err)
	}
	if err := testDB.Reviews.Approve("services"); err != nil {
		t.Fatalf("Approve after resolving failed: %v", err)
	}

	page, err = testDB.Reviews.Get("services")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if page.Status != ReviewApproved {
		t.Errorf("expected status %s, got %s", ReviewApproved, page.Status)
	}
}

func TestForceApproveIgnoresOpenComments(t *testing.T) {
	resetDB(t)

	if err := testDB.Reviews.ForceApprove("services"); err != nil {
		t.Fatalf("ForceApprove failed: %v", err)
	}

	page, err := testDB.Reviews.Get("services")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if page.Status != ReviewApproved {
		t.Errorf("expected status %s, got %s", ReviewApproved, page.Status)
	}
}

func TestApproveUnapproveRoundTrip(t *testing.T) {
	resetDB(t)

	if err := testDB.Reviews.Approve("home"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if err := testDB.Reviews.Unapprove("home"); err != nil {
		t.Fatalf("Unapprove failed: %v", err)
	}

	page, err := testDB.Reviews.Get("home")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if page.Status != ReviewPending {
		t.Errorf("unapprove should land on pending, got %s", page.Status)
	}
}

func TestUnreadCount(t *testing.T) {
	resetDB(t)

	count, err := testDB.Reviews.UnreadCount()
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 seeded unread comments, got %d", count)
	}

	if err := testDB.Reviews.MarkCommentRead("c1"); err != nil {
		t.Fatalf("MarkCommentRead failed: %v", err)
	}

	count, err = testDB.Reviews.UnreadCount()
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 unread comment after marking read, got %d", count)
	}

	err = testDB.Reviews.MarkCommentRead("nope")
	if !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestReplyValidation(t *testing.T) {
	resetDB(t)

	root := newTestComment("root comment")
	if err := testDB.Reviews.AddComment("home", root); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	reply := newTestComment("a reply")
	reply.ReplyTo = &root.ID
	if err := testDB.Reviews.AddComment("home", reply); err != nil {
		t.Fatalf("reply to top-level comment failed: %v", err)
	}

	// Replying to a reply is rejected; threads are two levels deep.
	deep := newTestComment("too deep")
	deep.ReplyTo = &reply.ID
	if err := testDB.Reviews.AddComment("home", deep); !errors.Is(err, ErrInvalidReplyTo) {
		t.Errorf("expected ErrInvalidReplyTo for reply-to-reply, got %v", err)
	}

	// Cross-page replies are rejected even when the parent exists.
	cross := newTestComment("wrong page")
	cross.ReplyTo = &root.ID
	if err := testDB.Reviews.AddComment("contact", cross); !errors.Is(err, ErrInvalidReplyTo) {
		t.Errorf("expected ErrInvalidReplyTo for cross-page reply, got %v", err)
	}

	missing := "ghost"
	orphan := newTestComment("no parent")
	orphan.ReplyTo = &missing
	if err := testDB.Reviews.AddComment("home", orphan); !errors.Is(err, ErrInvalidReplyTo) {
		t.Errorf("expected ErrInvalidReplyTo for missing parent, got %v", err)
	}
}

func TestThreads(t *testing.T) {
	resetDB(t)

	base := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	first := newTestComment("first thread")
	first.Timestamp = base
	if err := testDB.Reviews.AddComment("home", first); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	second := newTestComment("second thread")
	second.Timestamp = base.Add(time.Minute)
	if err := testDB.Reviews.AddComment("home", second); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	reply := newTestComment("reply to first")
	reply.Timestamp = base.Add(2 * time.Minute)
	reply.ReplyTo = &first.ID
	if err := testDB.Reviews.AddComment("home", reply); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	threads, err := testDB.Reviews.Threads("home")
	if err != nil {
		t.Fatalf("Threads failed: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}
	if threads[0].Root.ID != first.ID || threads[1].Root.ID != second.ID {
		t.Error("thread roots should keep append order")
	}
	if len(threads[0].Replies) != 1 || threads[0].Replies[0].ID != reply.ID {
		t.Error("reply should land under its parent thread")
	}
	if len(threads[1].Replies) != 0 {
		t.Error("second thread should have no replies")
	}
}

func TestBuildThreads(t *testing.T) {
	parent := "a"
	comments := []Comment{
		{ID: "a", Message: "root one"},
		{ID: "b", Message: "root two"},
		{ID: "c", Message: "reply", ReplyTo: &parent},
	}

	threads := BuildThreads(comments)
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}
	if threads[0].Root.ID != "a" || threads[1].Root.ID != "b" {
		t.Error("roots should preserve input order")
	}
	if len(threads[0].Replies) != 1 || threads[0].Replies[0].ID != "c" {
		t.Error("reply should group under its root")
	}
}
