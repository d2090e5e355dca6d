package models

import (
	"errors"
	"testing"
	"time"
)

func TestBlueprintCatalog(t *testing.T) {
	catalog := Blueprints()
	if len(catalog) != 3 {
		t.Fatalf("expected 3 blueprints, got %d", len(catalog))
	}

	b, err := BlueprintByID("vet-standard")
	if err != nil {
		t.Fatalf("BlueprintByID failed: %v", err)
	}
	if len(b.DefaultSiteMap) == 0 {
		t.Error("blueprint should carry a default site map")
	}

	_, err = BlueprintByID("nope")
	if !errors.Is(err, ErrUnknownBlueprint) {
		t.Fatalf("expected ErrUnknownBlueprint, got %v", err)
	}
}

func TestBlueprintTimeline(t *testing.T) {
	b, err := BlueprintByID("vet-standard")
	if err != nil {
		t.Fatalf("BlueprintByID failed: %v", err)
	}

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	timeline := b.Timeline(start)
	if len(timeline) != 4 {
		t.Fatalf("expected 4 milestones, got %d", len(timeline))
	}

	wantOffsets := map[PhaseSlug]int{
		PhaseDiscovery: 0, PhaseContent: 7, PhaseDesign: 28, PhaseLaunch: 56,
	}
	for i, entry := range timeline {
		if i > 0 && entry.DayOffset < timeline[i-1].DayOffset {
			t.Fatal("timeline should be ordered by day offset")
		}
		if want := wantOffsets[entry.Phase]; entry.DayOffset != want {
			t.Errorf("phase %s: expected offset %d, got %d", entry.Phase, want, entry.DayOffset)
		}
		if got := entry.StartsOn; !got.Equal(start.AddDate(0, 0, entry.DayOffset)) {
			t.Errorf("phase %s: wrong start date %v", entry.Phase, got)
		}
	}
}
