package models

import (
	"errors"

	"gorm.io/gorm"
)

// Phase is one of the four fixed sequential stages of a project. The current
// phase is tracked per session, independent of any phase's IsComplete flag.
type Phase struct {
	Slug       PhaseSlug `gorm:"primaryKey;column:slug" json:"slug"`
	Title      string    `gorm:"column:title;not null" json:"title"`
	SortOrder  int       `gorm:"column:sort_order;not null" json:"order"`
	IsComplete bool      `gorm:"column:is_complete" json:"is_complete"`
}

// TableName specifies the table name for the Phase model
func (Phase) TableName() string {
	return "phases"
}

// PhaseManager provides Django-like ORM methods for Phase
type PhaseManager struct {
	db *gorm.DB
}

// NewPhaseManager creates a new PhaseManager instance
func NewPhaseManager(db *gorm.DB) *PhaseManager {
	return &PhaseManager{db: db}
}

// All retrieves the phase catalog ordered by sort order
func (m *PhaseManager) All() ([]Phase, error) {
	var phases []Phase
	err := m.db.Order("sort_order asc").Find(&phases).Error
	return phases, err
}

// Get retrieves a phase by slug, failing with ErrUnknownPhase when the slug
// is not part of the catalog.
func (m *PhaseManager) Get(slug PhaseSlug) (*Phase, error) {
	var phase Phase
	err := m.db.First(&phase, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownPhase
	}
	if err != nil {
		return nil, err
	}
	return &phase, nil
}

// SetComplete flips a phase's completion flag
func (m *PhaseManager) SetComplete(slug PhaseSlug, complete bool) error {
	res := m.db.Model(&Phase{}).Where("slug = ?", slug).Update("is_complete", complete)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUnknownPhase
	}
	return nil
}

// Next returns the phase following slug in sort order. The second return is
// false at the end of the sequence.
func (m *PhaseManager) Next(slug PhaseSlug) (*Phase, bool, error) {
	return m.adjacent(slug, 1)
}

// Previous returns the phase preceding slug in sort order.
func (m *PhaseManager) Previous(slug PhaseSlug) (*Phase, bool, error) {
	return m.adjacent(slug, -1)
}

func (m *PhaseManager) adjacent(slug PhaseSlug, delta int) (*Phase, bool, error) {
	phases, err := m.All()
	if err != nil {
		return nil, false, err
	}
	idx := phaseIndex(phases, slug)
	if idx < 0 {
		return nil, false, ErrUnknownPhase
	}
	target := idx + delta
	if target < 0 || target >= len(phases) {
		return nil, false, nil
	}
	return &phases[target], true, nil
}

func phaseIndex(phases []Phase, slug PhaseSlug) int {
	for i, p := range phases {
		if p.Slug == slug {
			return i
		}
	}
	return -1
}
