package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Project is a created website build. Projects are only ever constructed by
// the wizard and never edited or removed afterwards.
type Project struct {
	ID         string    `gorm:"primaryKey;column:id" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	TemplateID string    `gorm:"column:template_id;not null" json:"template_id"`
	PhaseSlug  PhaseSlug `gorm:"column:phase_slug;not null;default:'discovery'" json:"phase_slug"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns an identifier when none was seeded
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	p.ID = newID(p.ID)
	return nil
}

// ProjectManager provides Django-like ORM methods for the append-only
// project registry.
type ProjectManager struct {
	db *gorm.DB
}

// NewProjectManager creates a new ProjectManager instance
func NewProjectManager(db *gorm.DB) *ProjectManager {
	return &ProjectManager{db: db}
}

// Create appends a project to the registry
func (m *ProjectManager) Create(project *Project) error {
	return m.db.Create(project).Error
}

// Get retrieves a project by ID
func (m *ProjectManager) Get(id string) (*Project, error) {
	var project Project
	err := m.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// All retrieves all projects in creation order
func (m *ProjectManager) All() ([]Project, error) {
	var projects []Project
	err := m.db.Order("created_at asc, id asc").Find(&projects).Error
	return projects, err
}
