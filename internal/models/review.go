package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// PageReview is a design-deliverable page awaiting client approval, carrying
// a comment thread.
type PageReview struct {
	ID          string           `gorm:"primaryKey;column:id" json:"id"`
	ProjectID   string           `gorm:"column:project_id;index" json:"project_id"`
	TaskID      string           `gorm:"column:task_id;index" json:"task_id,omitempty"`
	Title       string           `gorm:"column:title;not null" json:"title"`
	Slug        string           `gorm:"column:slug;not null" json:"slug"`
	PreviewImg  string           `gorm:"column:preview_img" json:"preview_img"`
	StagingURL  string           `gorm:"column:staging_url" json:"staging_url"`
	Status      PageReviewStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	Version     string           `gorm:"column:version" json:"version"`
	FeedbackDue time.Time        `gorm:"column:feedback_due" json:"feedback_due"`
	CreatedAt   time.Time        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at" json:"updated_at"`

	Comments []Comment `gorm:"foreignKey:PageID" json:"comments,omitempty"`
}

// TableName specifies the table name for the PageReview model
func (PageReview) TableName() string {
	return "page_reviews"
}

// BeforeCreate assigns an identifier when none was seeded
func (p *PageReview) BeforeCreate(tx *gorm.DB) error {
	p.ID = newID(p.ID)
	return nil
}

// Comment is an append-only annotation on a page review. Only Status and
// UnreadForPM are ever mutated after creation. ReplyTo forms a two-level
// tree: top-level comments and their direct replies.
type Comment struct {
	ID          string        `gorm:"primaryKey;column:id" json:"id"`
	PageID      string        `gorm:"column:page_id;index;not null" json:"page_id"`
	ProjectID   string        `gorm:"column:project_id" json:"project_id"`
	UserID      string        `gorm:"column:user_id" json:"user_id"`
	UserName    string        `gorm:"column:user_name" json:"user_name"`
	UserAvatar  string        `gorm:"column:user_avatar" json:"user_avatar,omitempty"`
	Message     string        `gorm:"column:message;not null" json:"message"`
	Timestamp   time.Time     `gorm:"column:timestamp" json:"timestamp"`
	Status      CommentStatus `gorm:"column:status;not null;default:'open'" json:"status"`
	ReplyTo     *string       `gorm:"column:reply_to" json:"reply_to,omitempty"`
	UnreadForPM bool          `gorm:"column:unread_for_pm;index" json:"is_unread_for_pm"`
	CreatedAt   time.Time     `gorm:"column:created_at" json:"-"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate assigns an identifier when none was seeded
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	c.ID = newID(c.ID)
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	return nil
}

// Thread is a top-level comment grouped with its direct replies in append
// order.
type Thread struct {
	Root    Comment   `json:"root"`
	Replies []Comment `json:"replies"`
}

// BuildThreads groups comments into threads. Input order is preserved for
// both roots and replies; replies whose parent is missing are dropped, which
// cannot happen for store-validated comments.
func BuildThreads(comments []Comment) []Thread {
	index := make(map[string]int, len(comments))
	threads := make([]Thread, 0, len(comments))

	for _, c := range comments {
		if c.ReplyTo == nil {
			index[c.ID] = len(threads)
			threads = append(threads, Thread{Root: c, Replies: []Comment{}})
		}
	}
	for _, c := range comments {
		if c.ReplyTo == nil {
			continue
		}
		if i, ok := index[*c.ReplyTo]; ok {
			threads[i].Replies = append(threads[i].Replies, c)
		}
	}
	return threads
}

// PageReviewManager provides Django-like ORM methods for page reviews and
// their comments.
type PageReviewManager struct {
	db *gorm.DB
}

// NewPageReviewManager creates a new PageReviewManager instance
func NewPageReviewManager(db *gorm.DB) *PageReviewManager {
	return &PageReviewManager{db: db}
}

// Create creates a new page review
func (m *PageReviewManager) Create(page *PageReview) error {
	return m.db.Create(page).Error
}

// Get retrieves a page review with its comments in append order
func (m *PageReviewManager) Get(id string) (*PageReview, error) {
	var page PageReview
	err := m.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.timestamp asc, comments.id asc")
	}).First(&page, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// All retrieves every page review with comments
func (m *PageReviewManager) All() ([]PageReview, error) {
	var pages []PageReview
	err := m.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.timestamp asc, comments.id asc")
	}).Order("created_at asc, id asc").Find(&pages).Error
	return pages, err
}

// Approve sets the page status to approved. It fails with ErrHasOpenComments
// while any comment on the page is still open, so callers no longer have to
// check that precondition themselves.
func (m *PageReviewManager) Approve(pageID string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&Comment{}).
			Where("page_id = ? AND status = ?", pageID, CommentOpen).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrHasOpenComments
		}
		return setPageStatus(tx, pageID, ReviewApproved)
	})
}

// ForceApprove sets the page status to approved unconditionally. PM override
// for the gated Approve path.
func (m *PageReviewManager) ForceApprove(pageID string) error {
	return setPageStatus(m.db, pageID, ReviewApproved)
}

// Unapprove sets the page status back to pending. This is the defined
// approve round trip: a page that was changes_requested before approval
// still comes back as pending.
func (m *PageReviewManager) Unapprove(pageID string) error {
	return setPageStatus(m.db, pageID, ReviewPending)
}

func setPageStatus(db *gorm.DB, pageID string, status PageReviewStatus) error {
	res := db.Model(&PageReview{}).Where("id = ?", pageID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}

// AddComment appends a comment to the page and unconditionally moves the
// page to changes_requested, no matter who authored it or whether the page
// was already approved. The new comment starts open and unread for the PM.
func (m *PageReviewManager) AddComment(pageID string, comment *Comment) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		var page PageReview
		if err := tx.First(&page, "id = ?", pageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return err
		}

		if comment.ReplyTo != nil {
			if err := validateReply(tx, pageID, comment.ID, *comment.ReplyTo); err != nil {
				return err
			}
		}

		comment.PageID = pageID
		comment.ProjectID = page.ProjectID
		comment.Status = CommentOpen
		comment.UnreadForPM = true
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		return setPageStatus(tx, pageID, ReviewChangesRequested)
	})
}

// validateReply rejects self-referential, cross-page, forward-referencing,
// and reply-to-reply targets. Only a pre-existing top-level comment on the
// same page is a legal parent.
func validateReply(tx *gorm.DB, pageID, commentID, replyTo string) error {
	if replyTo == commentID {
		return ErrInvalidReplyTo
	}
	var parent Comment
	err := tx.First(&parent, "id = ?", replyTo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidReplyTo
	}
	if err != nil {
		return err
	}
	if parent.PageID != pageID || parent.ReplyTo != nil {
		return ErrInvalidReplyTo
	}
	return nil
}

// ResolveComment marks a comment resolved
func (m *PageReviewManager) ResolveComment(commentID string) error {
	res := m.db.Model(&Comment{}).Where("id = ?", commentID).Update("status", CommentResolved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// MarkCommentRead clears the unread-for-PM flag on the comment. Comment ids
// are unique across all pages.
func (m *PageReviewManager) MarkCommentRead(commentID string) error {
	res := m.db.Model(&Comment{}).Where("id = ?", commentID).Update("unread_for_pm", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// UnreadCount counts unread-for-PM comments across all pages
func (m *PageReviewManager) UnreadCount() (int64, error) {
	return Count[Comment](m.db, "unread_for_pm = ?", true)
}

// Threads returns the page's comments grouped into two-level threads
func (m *PageReviewManager) Threads(pageID string) ([]Thread, error) {
	page, err := m.Get(pageID)
	if err != nil {
		return nil, err
	}
	return BuildThreads(page.Comments), nil
}
