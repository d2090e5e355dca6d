package models

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connection and all model managers
type DB struct {
	*gorm.DB
	Users         *UserManager
	Phases        *PhaseManager
	Tasks         *TaskManager
	Reviews       *PageReviewManager
	Chat          *ChatManager
	Notifications *NotificationManager
	Projects      *ProjectManager
	Assets        *AssetManager
}

// NewDB creates a new database connection and initializes all managers
func NewDB(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN not set")
	}

	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := newDB(gormDB)

	if err := db.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("auto-migrate failed: %w", err)
	}

	return db, nil
}

func newDB(gormDB *gorm.DB) *DB {
	return &DB{
		DB:            gormDB,
		Users:         NewUserManager(gormDB),
		Phases:        NewPhaseManager(gormDB),
		Tasks:         NewTaskManager(gormDB),
		Reviews:       NewPageReviewManager(gormDB),
		Chat:          NewChatManager(gormDB),
		Notifications: NewNotificationManager(gormDB),
		Projects:      NewProjectManager(gormDB),
		Assets:        NewAssetManager(gormDB),
	}
}

// AutoMigrate runs GORM auto-migration for all models
func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&User{},
		&Phase{},
		&Task{},
		&PageReview{},
		&Comment{},
		&ChatMessage{},
		&Notification{},
		&Project{},
		&DeliverableAsset{},
	)
}

// Transaction runs a function within a database transaction
func (db *DB) Transaction(fn func(*DB) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(newDB(tx))
	})
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Django-like convenience helpers

// Exists checks if a record exists (similar to Django's exists())
func Exists[T any](db *gorm.DB, conditions ...interface{}) (bool, error) {
	var count int64
	err := db.Model(new(T)).Where(conditions[0], conditions[1:]...).Count(&count).Error
	return count > 0, err
}

// BulkCreate creates multiple records (similar to Django's bulk_create)
func BulkCreate[T any](db *gorm.DB, objects []T) error {
	if len(objects) == 0 {
		return nil
	}
	return db.CreateInBatches(objects, 100).Error
}

// Count returns the count of records (similar to Django's count())
func Count[T any](db *gorm.DB, conditions ...interface{}) (int64, error) {
	var count int64
	query := db.Model(new(T))
	if len(conditions) > 0 {
		query = query.Where(conditions[0], conditions[1:]...)
	}
	err := query.Count(&count).Error
	return count, err
}
