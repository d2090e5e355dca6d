// Package wizard implements the three-step project creation flow: choose a
// blueprint, name the project, review the derived timeline, commit.
package wizard

import (
	"errors"
	"strings"
	"time"

	"vetportal/internal/models"
)

const (
	StepBlueprint = 1
	StepName      = 2
	StepReview    = 3
)

var (
	ErrNoBlueprint = errors.New("no blueprint chosen")
	ErrEmptyName   = errors.New("project name is empty")
	ErrNotAtReview = errors.New("wizard is not at the review step")
)

// State is the wizard's progress. It is a value type; handlers keep it in
// the session and replace it on every transition.
type State struct {
	Step        int    `json:"step"`
	BlueprintID string `json:"blueprint_id"`
	Name        string `json:"name"`
}

// New starts a wizard at the blueprint step.
func New() State {
	return State{Step: StepBlueprint}
}

// ChooseBlueprint records the template selection. The id must exist in the
// catalog.
func (s State) ChooseBlueprint(id string) (State, error) {
	if _, err := models.BlueprintByID(id); err != nil {
		return s, err
	}
	s.BlueprintID = id
	return s, nil
}

// SetName records the project name. Validation happens on Next, matching
// the step gates: a blank name only blocks advancing.
func (s State) SetName(name string) State {
	s.Name = name
	return s
}

// Next advances one step. Each step has a gate; a failed gate leaves the
// state unchanged and reports why.
func (s State) Next() (State, error) {
	switch s.Step {
	case StepBlueprint:
		if s.BlueprintID == "" {
			return s, ErrNoBlueprint
		}
	case StepName:
		if strings.TrimSpace(s.Name) == "" {
			return s, ErrEmptyName
		}
	default:
		return s, nil
	}
	s.Step++
	return s, nil
}

// Back moves one step back, never below the first step. Selections are kept.
func (s State) Back() State {
	if s.Step > StepBlueprint {
		s.Step--
	}
	return s
}

// Timeline derives the read-only schedule shown at the review step.
func (s State) Timeline(start time.Time) ([]models.TimelineEntry, error) {
	b, err := models.BlueprintByID(s.BlueprintID)
	if err != nil {
		return nil, err
	}
	return b.Timeline(start), nil
}

// Commit builds the project record. Only legal at the review step with a
// valid selection and name; the initial phase is always discovery.
func (s State) Commit(now time.Time) (*models.Project, error) {
	if s.Step != StepReview {
		return nil, ErrNotAtReview
	}
	if s.BlueprintID == "" {
		return nil, ErrNoBlueprint
	}
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	return &models.Project{
		Name:       name,
		TemplateID: s.BlueprintID,
		PhaseSlug:  models.PhaseDiscovery,
		CreatedAt:  now,
	}, nil
}
