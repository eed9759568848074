package cmd

import (
	"testing"

	"github.com/Tiliavir/trivial-time-client/internal/model"
)

func TestFindProjectPrefersID(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Name: "3"},
		{ID: 2, Name: "Website"},
		{ID: 3, Name: "Internal"},
	}
	tests := []struct {
		ref    string
		wantID int64
	}{
		{"3", 3},
		{"website", 2},
		{"INTERNAL", 3},
		{"1", 1},
	}
	for _, tt := range tests {
		got, err := findProject(projects, tt.ref)
		if err != nil {
			t.Fatalf("findProject(%q): %v", tt.ref, err)
		}
		if got.ID != tt.wantID {
			t.Errorf("findProject(%q) = %d, want %d", tt.ref, got.ID, tt.wantID)
		}
	}
	if _, err := findProject(projects, "missing"); err == nil {
		t.Error("findProject(missing): expected error")
	}
}

func TestFindActivityAndObjectiveByName(t *testing.T) {
	activities := []model.Activity{{ID: 4, Name: "7"}, {ID: 7, Name: "Travel"}}
	if a, err := findActivity(activities, "7"); err != nil || a.ID != 7 {
		t.Errorf("findActivity(7) = %+v, %v", a, err)
	}
	objectives := []model.DailyObjective{{ID: 1, Name: "Write docs"}}
	if o, err := findObjective(objectives, "write DOCS"); err != nil || o.ID != 1 {
		t.Errorf("findObjective = %+v, %v", o, err)
	}
	if _, err := findObjective(objectives, "2"); err == nil {
		t.Error("findObjective(2): expected error")
	}
}
