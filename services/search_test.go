package services

import (
	"testing"

	"fupa/models"
)

func employees() []models.User {
	return []models.User{
		{ID: "1", Name: "Siti Rahayu", Email: "siti@fupa.id"},
		{ID: "2", Name: "Budi Santoso", Email: "budi.s@fupa.id"},
		{ID: "3", Name: "Bùdi Hartono", Email: "hartono@fupa.id"},
	}
}

func TestSearchEmployeesSubstringIgnoresAccents(t *testing.T) {
	got := SearchEmployees(employees(), "budi", 0)
	if len(got) != 2 {
		t.Fatalf("expected both Budis, got %v", got)
	}
	for _, u := range got {
		if u.ID == "1" {
			t.Fatalf("Siti should not match budi")
		}
	}
}

func TestSearchEmployeesToleratesTypos(t *testing.T) {
	got := SearchEmployees(employees(), "Sity Rahayu", 0)
	if len(got) == 0 || got[0].ID != "1" {
		t.Fatalf("expected Siti first, got %v", got)
	}
}

func TestSearchEmployeesMatchesEmail(t *testing.T) {
	got := SearchEmployees(employees(), "hartono@", 0)
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected Hartono by email, got %v", got)
	}
}

func TestSearchEmployeesLimitAndEmpty(t *testing.T) {
	if got := SearchEmployees(employees(), "budi", 1); len(got) != 1 {
		t.Fatalf("limit not applied: %v", got)
	}
	if got := SearchEmployees(employees(), "   ", 0); got != nil {
		t.Fatalf("blank query should return nil, got %v", got)
	}
	if got := SearchEmployees(nil, "budi", 0); got != nil {
		t.Fatalf("no users should return nil, got %v", got)
	}
}

func TestCalculateSimilarity(t *testing.T) {
	if s := calculateSimilarity("", ""); s != 1.0 {
		t.Fatalf("empty strings should be identical, got %v", s)
	}
	if s := calculateSimilarity("siti", "siti"); s != 1.0 {
		t.Fatalf("identical strings, got %v", s)
	}
	if s := calculateSimilarity("siti", "budi"); s > similarityThreshold {
		t.Fatalf("unrelated names too similar: %v", s)
	}
}
