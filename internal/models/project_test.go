package models

import (
	"errors"
	"testing"
	"time"
)

func TestProjectRegistry(t *testing.T) {
	resetDB(t)

	seeded, err := testDB.Projects.Get("valley-vet")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if seeded.TemplateID != "vet-standard" {
		t.Errorf("expected vet-standard template, got %s", seeded.TemplateID)
	}

	created := &Project{
		Name:       "Second Clinic",
		TemplateID: "dental-lite",
		PhaseSlug:  PhaseDiscovery,
		CreatedAt:  time.Now(),
	}
	if err := testDB.Projects.Create(created); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("created project should get an id")
	}

	all, err := testDB.Projects.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(all))
	}

	_, err = testDB.Projects.Get("nope")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
