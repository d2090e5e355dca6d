package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Task is a unit of work assigned within a phase. A task belongs to exactly
// one phase for its lifetime and is never deleted. Kind tags what the task
// workspace renders: a generic checklist item, a site-map proposal to
// confirm, or a design review over the project's page reviews.
type Task struct {
	ID          string     `gorm:"primaryKey;column:id" json:"id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	PhaseSlug   PhaseSlug  `gorm:"column:phase_slug;index;not null" json:"phase_slug"`
	Status      TaskStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	Kind        TaskKind   `gorm:"column:kind;not null;default:'generic'" json:"kind"`
	DueDate     time.Time  `gorm:"column:due_date" json:"due_date"`
	Description string     `gorm:"column:description" json:"description"`
	Required    bool       `gorm:"column:required" json:"required"`
	FocusWeight int        `gorm:"column:focus_weight;default:1" json:"focus_weight"`
	AssignedTo  string     `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	TipsRef     string     `gorm:"column:tips_ref" json:"tips_ref,omitempty"`
	SiteMap     JSONB      `gorm:"column:site_map;type:jsonb;default:'{}'" json:"site_map,omitempty"`
	SortOrder   int        `gorm:"column:sort_order" json:"-"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// BeforeCreate assigns an identifier when none was seeded
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	t.ID = newID(t.ID)
	if t.Kind == "" {
		t.Kind = KindGeneric
	}
	return nil
}

// TaskManager provides Django-like ORM methods for Task
type TaskManager struct {
	db *gorm.DB
}

// NewTaskManager creates a new TaskManager instance
func NewTaskManager(db *gorm.DB) *TaskManager {
	return &TaskManager{db: db}
}

// Create creates a new task
func (m *TaskManager) Create(task *Task) error {
	return m.db.Create(task).Error
}

// Get retrieves a task by ID
func (m *TaskManager) Get(id string) (*Task, error) {
	var task Task
	err := m.db.First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// All retrieves all tasks in stable seeded order
func (m *TaskManager) All() ([]Task, error) {
	var tasks []Task
	err := m.db.Order("sort_order asc, created_at asc").Find(&tasks).Error
	return tasks, err
}

// Active retrieves active tasks, optionally narrowed to one phase
func (m *TaskManager) Active(phase ...PhaseSlug) ([]Task, error) {
	return m.byStatus([]TaskStatus{TaskActive}, phase)
}

// Pending retrieves pending tasks, optionally narrowed to one phase
func (m *TaskManager) Pending(phase ...PhaseSlug) ([]Task, error) {
	return m.byStatus([]TaskStatus{TaskPending}, phase)
}

// Completed retrieves completed tasks, optionally narrowed to one phase.
// Approved tasks count as completed in every dashboard view.
func (m *TaskManager) Completed(phase ...PhaseSlug) ([]Task, error) {
	return m.byStatus([]TaskStatus{TaskCompleted, TaskApproved}, phase)
}

func (m *TaskManager) byStatus(statuses []TaskStatus, phase []PhaseSlug) ([]Task, error) {
	var tasks []Task
	q := m.db.Where("status IN ?", statuses)
	if len(phase) > 0 {
		q = q.Where("phase_slug = ?", phase[0])
	}
	err := q.Order("sort_order asc, created_at asc").Find(&tasks).Error
	return tasks, err
}

// UpdateStatus replaces the status of the task with matching id. Any status
// may transition to any other; no legality check is performed.
func (m *TaskManager) UpdateStatus(id string, status TaskStatus) error {
	res := m.db.Model(&Task{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
