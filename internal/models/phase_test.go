package models

import (
	"errors"
	"testing"
)

func TestPhaseCatalogOrder(t *testing.T) {
	resetDB(t)

	phases, err := testDB.Phases.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(phases) != 4 {
		t.Fatalf("expected 4 phases, got %d", len(phases))
	}

	want := []PhaseSlug{PhaseDiscovery, PhaseContent, PhaseDesign, PhaseLaunch}
	for i, slug := range want {
		if phases[i].Slug != slug {
			t.Errorf("position %d: expected %s, got %s", i, slug, phases[i].Slug)
		}
	}

	if !phases[0].IsComplete {
		t.Error("discovery is seeded complete")
	}
}

func TestPhaseNeighbors(t *testing.T) {
	resetDB(t)

	next, ok, err := testDB.Phases.Next(PhaseDesign)
	if err != nil || !ok {
		t.Fatalf("Next(design) failed: ok=%v err=%v", ok, err)
	}
	if next.Slug != PhaseLaunch {
		t.Errorf("expected launch after design, got %s", next.Slug)
	}

	_, ok, err = testDB.Phases.Next(PhaseLaunch)
	if err != nil {
		t.Fatalf("Next(launch) failed: %v", err)
	}
	if ok {
		t.Error("launch has no next phase")
	}

	_, ok, err = testDB.Phases.Previous(PhaseDiscovery)
	if err != nil {
		t.Fatalf("Previous(discovery) failed: %v", err)
	}
	if ok {
		t.Error("discovery has no previous phase")
	}

	_, _, err = testDB.Phases.Next("retrospective")
	if !errors.Is(err, ErrUnknownPhase) {
		t.Fatalf("expected ErrUnknownPhase, got %v", err)
	}
}

func TestSetPhaseComplete(t *testing.T) {
	resetDB(t)

	if err := testDB.Phases.SetComplete(PhaseContent, true); err != nil {
		t.Fatalf("SetComplete failed: %v", err)
	}

	phase, err := testDB.Phases.Get(PhaseContent)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !phase.IsComplete {
		t.Error("content phase should be complete")
	}

	if err := testDB.Phases.SetComplete("retrospective", true); !errors.Is(err, ErrUnknownPhase) {
		t.Fatalf("expected ErrUnknownPhase, got %v", err)
	}
}
