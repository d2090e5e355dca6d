package wizard

import (
	"errors"
	"testing"
	"time"

	"vetportal/internal/models"
)

func TestNextGates(t *testing.T) {
	state := New()
	if state.Step != StepBlueprint {
		t.Fatalf("new wizard should start at the blueprint step, got %d", state.Step)
	}

	// No blueprint chosen: stuck at step one.
	after, err := state.Next()
	if !errors.Is(err, ErrNoBlueprint) {
		t.Fatalf("expected ErrNoBlueprint, got %v", err)
	}
	if after != state {
		t.Error("failed gate must leave the state unchanged")
	}

	state, err = state.ChooseBlueprint("vet-standard")
	if err != nil {
		t.Fatalf("ChooseBlueprint failed: %v", err)
	}
	state, err = state.Next()
	if err != nil || state.Step != StepName {
		t.Fatalf("expected to reach the name step, got step=%d err=%v", state.Step, err)
	}

	// Whitespace-only names do not pass the gate.
	state = state.SetName("   ")
	after, err = state.Next()
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if after.Step != StepName {
		t.Error("failed gate must not advance")
	}

	state = state.SetName("Valley Vet Clinic Website")
	state, err = state.Next()
	if err != nil || state.Step != StepReview {
		t.Fatalf("expected to reach the review step, got step=%d err=%v", state.Step, err)
	}

	// Next at review is a no-op.
	state, err = state.Next()
	if err != nil || state.Step != StepReview {
		t.Fatalf("review step should not advance further, got step=%d err=%v", state.Step, err)
	}
}

func TestChooseBlueprintUnknown(t *testing.T) {
	state := New()
	_, err := state.ChooseBlueprint("nope")
	if !errors.Is(err, models.ErrUnknownBlueprint) {
		t.Fatalf("expected ErrUnknownBlueprint, got %v", err)
	}
}

func TestBackKeepsSelections(t *testing.T) {
	state := New()
	state, _ = state.ChooseBlueprint("dental-lite")
	state, _ = state.Next()
	state = state.SetName("Smile Dental")

	state = state.Back()
	if state.Step != StepBlueprint {
		t.Fatalf("expected step %d, got %d", StepBlueprint, state.Step)
	}
	if state.BlueprintID != "dental-lite" || state.Name != "Smile Dental" {
		t.Error("going back must keep the selections")
	}

	// Back never goes below the first step.
	state = state.Back()
	if state.Step != StepBlueprint {
		t.Errorf("expected floor at step %d, got %d", StepBlueprint, state.Step)
	}
}

func TestTimeline(t *testing.T) {
	state := New()

	if _, err := state.Timeline(time.Now()); !errors.Is(err, models.ErrUnknownBlueprint) {
		t.Fatalf("timeline without a blueprint should fail, got %v", err)
	}

	state, _ = state.ChooseBlueprint("vet-standard")
	timeline, err := state.Timeline(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if len(timeline) != 4 || timeline[0].Phase != models.PhaseDiscovery {
		t.Fatalf("unexpected timeline: %v", timeline)
	}
}

func TestCommit(t *testing.T) {
	state := New()
	now := time.Now()

	if _, err := state.Commit(now); !errors.Is(err, ErrNotAtReview) {
		t.Fatalf("commit before review should fail, got %v", err)
	}

	state, _ = state.ChooseBlueprint("multi-location")
	state, _ = state.Next()
	state = state.SetName("  Paws & Claws Group  ")
	state, _ = state.Next()

	project, err := state.Commit(now)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if project.Name != "Paws & Claws Group" {
		t.Errorf("name should be trimmed, got %q", project.Name)
	}
	if project.TemplateID != "multi-location" {
		t.Errorf("wrong template: %s", project.TemplateID)
	}
	if project.PhaseSlug != models.PhaseDiscovery {
		t.Errorf("new projects always start in discovery, got %s", project.PhaseSlug)
	}
	if !project.CreatedAt.Equal(now) {
		t.Error("commit should stamp the provided time")
	}
}
