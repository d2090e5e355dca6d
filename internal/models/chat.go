package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage is one entry in a task's message log. Append-only, ordered by
// timestamp ascending.
type ChatMessage struct {
	ID          string     `gorm:"primaryKey;column:id" json:"id"`
	TaskID      string     `gorm:"column:task_id;index;not null" json:"task_id"`
	UserID      string     `gorm:"column:user_id" json:"user_id"`
	UserName    string     `gorm:"column:user_name" json:"user_name"`
	UserAvatar  string     `gorm:"column:user_avatar" json:"user_avatar,omitempty"`
	Message     string     `gorm:"column:message;not null" json:"message"`
	Timestamp   time.Time  `gorm:"column:timestamp;index" json:"timestamp"`
	Attachments StringList `gorm:"column:attachments;type:jsonb;default:'[]'" json:"attachments,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"-"`
}

// TableName specifies the table name for the ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// BeforeCreate assigns an identifier and timestamp when none was seeded
func (c *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	c.ID = newID(c.ID)
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	return nil
}

// ChatManager provides Django-like ORM methods for ChatMessage
type ChatManager struct {
	db *gorm.DB
}

// NewChatManager creates a new ChatManager instance
func NewChatManager(db *gorm.DB) *ChatManager {
	return &ChatManager{db: db}
}

// ForTask retrieves a task's messages ordered by timestamp ascending
func (m *ChatManager) ForTask(taskID string) ([]ChatMessage, error) {
	var messages []ChatMessage
	err := m.db.Where("task_id = ?", taskID).
		Order("timestamp asc, id asc").
		Find(&messages).Error
	return messages, err
}

// Send appends a message attributed to author. Sending requires a bound
// user; ErrNoCurrentUser otherwise.
func (m *ChatManager) Send(taskID string, author *User, text string, attachments []string) (*ChatMessage, error) {
	if author == nil {
		return nil, ErrNoCurrentUser
	}

	msg := &ChatMessage{
		TaskID:      taskID,
		UserID:      author.ID,
		UserName:    author.Name,
		UserAvatar:  author.AvatarURL,
		Message:     text,
		Timestamp:   time.Now(),
		Attachments: attachments,
	}
	if err := m.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}
