package orgs

import (
	"errors"
	"testing"

	"rippl-backend/internal/tasks"
)

func catalog() []tasks.Task {
	return []tasks.Task{
		{ID: "1", Organization: "Ocean Guardians", Category: "Environment", XP: 500, Hours: 8, Status: tasks.StatusCompleted},
		{ID: "2", Organization: "Oratora", Category: "Translation", XP: 450, Hours: 6, Status: tasks.StatusUrgent},
		{ID: "3", Organization: "Ocean Guardians", Category: "Logistics", XP: 100, Hours: 2, Status: tasks.StatusNew},
		{ID: "4", Organization: "Ocean Guardians", Category: "Environment", XP: 50, Hours: 1, Status: tasks.StatusInReview},
	}
}

func TestSlug(t *testing.T) {
	for in, want := range map[string]string{
		"EcoWatch Global":      "ecowatch-global",
		"  Malete Tech Forum ": "malete-tech-forum",
		"A & B":                "a-b",
		"Org!":                 "org",
	} {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDirectory(t *testing.T) {
	dir := Directory(catalog())
	if len(dir) != 2 {
		t.Fatalf("orgs = %d, want 2", len(dir))
	}

	og := dir[0]
	if og.Name != "Ocean Guardians" || og.Missions != 3 {
		t.Fatalf("first org = %+v", og)
	}
	if og.Open != 1 || og.Completed != 1 || og.Hours != 8 || og.XPOffered != 650 {
		t.Errorf("ocean guardians counts = %+v", og)
	}
	if len(og.Categories) != 2 {
		t.Errorf("categories = %v", og.Categories)
	}
}

func TestFind(t *testing.T) {
	d, err := Find(catalog(), "ocean-guardians")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(d.Tasks) != 3 || d.Tasks[0].ID != "1" {
		t.Errorf("tasks = %+v", d.Tasks)
	}

	if _, err := Find(catalog(), "Oratora"); err != nil {
		t.Errorf("find by name: %v", err)
	}
	if _, err := Find(catalog(), "nobody"); !errors.Is(err, ErrOrgNotFound) {
		t.Errorf("err = %v, want ErrOrgNotFound", err)
	}
}

func TestDirectoryToleratesUnknownStatus(t *testing.T) {
	all := append(catalog(), tasks.Task{ID: "x", Organization: "Acme"})

	dir := Directory(all)
	var acme *Organization
	for i := range dir {
		if dir[i].Name == "Acme" {
			acme = &dir[i]
		}
	}
	if acme == nil || acme.Missions != 1 || acme.Open != 0 {
		t.Errorf("acme = %+v", acme)
	}
}
