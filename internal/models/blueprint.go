package models

import (
	"sort"
	"time"
)

// Blueprint is a static project template: phase day offsets defining the
// default timeline skeleton plus the default page list. Read-only reference
// data, not persisted.
type Blueprint struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	PhaseOffsets   map[PhaseSlug]int `json:"phase_offsets"`
	DefaultSiteMap []string          `json:"default_site_map"`
}

var blueprints = []Blueprint{
	{
		ID:   "vet-standard",
		Name: "Veterinary Site – Standard",
		PhaseOffsets: map[PhaseSlug]int{
			PhaseDiscovery: 0, PhaseContent: 7, PhaseDesign: 28, PhaseLaunch: 56,
		},
		DefaultSiteMap: []string{"Home", "About", "Services", "Contact"},
	},
	{
		ID:   "dental-lite",
		Name: "Dental Landing-Page",
		PhaseOffsets: map[PhaseSlug]int{
			PhaseDiscovery: 0, PhaseContent: 3, PhaseDesign: 10, PhaseLaunch: 21,
		},
		DefaultSiteMap: []string{"Home", "Services", "Contact"},
	},
	{
		ID:   "multi-location",
		Name: "Multi-Location Practice",
		PhaseOffsets: map[PhaseSlug]int{
			PhaseDiscovery: 0, PhaseContent: 14, PhaseDesign: 35, PhaseLaunch: 70,
		},
		DefaultSiteMap: []string{"Home", "Locations", "Services", "About", "Contact"},
	},
}

// Blueprints returns the template catalog
func Blueprints() []Blueprint {
	out := make([]Blueprint, len(blueprints))
	copy(out, blueprints)
	return out
}

// BlueprintByID looks up a template, failing with ErrUnknownBlueprint
func BlueprintByID(id string) (Blueprint, error) {
	for _, b := range blueprints {
		if b.ID == id {
			return b, nil
		}
	}
	return Blueprint{}, ErrUnknownBlueprint
}

// TimelineEntry is one phase milestone derived from a blueprint's offsets.
type TimelineEntry struct {
	Phase     PhaseSlug `json:"phase"`
	DayOffset int       `json:"day_offset"`
	StartsOn  time.Time `json:"starts_on"`
}

// Timeline derives the phase schedule from the blueprint's day offsets,
// ordered by offset.
func (b Blueprint) Timeline(start time.Time) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(b.PhaseOffsets))
	for phase, offset := range b.PhaseOffsets {
		entries = append(entries, TimelineEntry{
			Phase:     phase,
			DayOffset: offset,
			StartsOn:  start.AddDate(0, 0, offset),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DayOffset < entries[j].DayOffset
	})
	return entries
}
