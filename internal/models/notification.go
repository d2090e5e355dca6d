package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a transient user-facing notice. Append-only; only the read
// flag is ever flipped.
type Notification struct {
	ID        string           `gorm:"primaryKey;column:id" json:"id"`
	UserID    string           `gorm:"column:user_id;index" json:"user_id"`
	Type      NotificationType `gorm:"column:type;not null;default:'info'" json:"type"`
	Message   string           `gorm:"column:message;not null" json:"message"`
	Timestamp time.Time        `gorm:"column:timestamp" json:"timestamp"`
	Read      bool             `gorm:"column:read" json:"read"`
	CreatedAt time.Time        `gorm:"column:created_at" json:"-"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns an identifier and timestamp when none was seeded
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	n.ID = newID(n.ID)
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	return nil
}

// NotificationManager provides Django-like ORM methods for Notification
type NotificationManager struct {
	db *gorm.DB
}

// NewNotificationManager creates a new NotificationManager instance
func NewNotificationManager(db *gorm.DB) *NotificationManager {
	return &NotificationManager{db: db}
}

// Add appends a notification. New notices always start unread.
func (m *NotificationManager) Add(n *Notification) error {
	n.Read = false
	return m.db.Create(n).Error
}

// ForUser retrieves a user's notifications, newest first, capped at limit
func (m *NotificationManager) ForUser(userID string, limit int) ([]Notification, error) {
	var notifications []Notification
	err := m.db.Where("user_id = ?", userID).
		Order("timestamp desc").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips the read flag on the user's notification
func (m *NotificationManager) MarkRead(id, userID string) error {
	res := m.db.Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// UnreadCount counts the user's unread notifications
func (m *NotificationManager) UnreadCount(userID string) (int64, error) {
	return Count[Notification](m.db, "user_id = ? AND read = ?", userID, false)
}
