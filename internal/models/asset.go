package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliverableAsset is a file a client uploaded against a task (headshots,
// documents, voice notes). The stored key points into the S3 bucket.
type DeliverableAsset struct {
	ID         string      `gorm:"primaryKey;column:id" json:"id"`
	TaskID     string      `gorm:"column:task_id;index;not null" json:"task_id"`
	Type       AssetType   `gorm:"column:type;not null" json:"type"`
	Name       string      `gorm:"column:name;not null" json:"name"`
	S3Key      string      `gorm:"column:s3_key" json:"s3_key"`
	S3Bucket   string      `gorm:"column:s3_bucket" json:"s3_bucket"`
	FileSize   int64       `gorm:"column:file_size" json:"file_size"`
	MimeType   string      `gorm:"column:mime_type" json:"mime_type"`
	UploadedBy string      `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt time.Time   `gorm:"column:uploaded_at" json:"uploaded_at"`
	Status     AssetStatus `gorm:"column:status;not null;default:'draft'" json:"status"`
}

// TableName specifies the table name for the DeliverableAsset model
func (DeliverableAsset) TableName() string {
	return "deliverable_assets"
}

// BeforeCreate assigns an identifier and upload time when none was seeded
func (a *DeliverableAsset) BeforeCreate(tx *gorm.DB) error {
	a.ID = newID(a.ID)
	if a.UploadedAt.IsZero() {
		a.UploadedAt = time.Now()
	}
	return nil
}

// AssetManager provides Django-like ORM methods for DeliverableAsset
type AssetManager struct {
	db *gorm.DB
}

// NewAssetManager creates a new AssetManager instance
func NewAssetManager(db *gorm.DB) *AssetManager {
	return &AssetManager{db: db}
}

// Create records an uploaded asset
func (m *AssetManager) Create(asset *DeliverableAsset) error {
	return m.db.Create(asset).Error
}

// ForTask retrieves a task's assets in upload order
func (m *AssetManager) ForTask(taskID string) ([]DeliverableAsset, error) {
	var assets []DeliverableAsset
	err := m.db.Where("task_id = ?", taskID).
		Order("uploaded_at asc").
		Find(&assets).Error
	return assets, err
}

// MarkApproved flips an asset from draft to approved
func (m *AssetManager) MarkApproved(id string) error {
	res := m.db.Model(&DeliverableAsset{}).Where("id = ?", id).Update("status", AssetApproved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}
