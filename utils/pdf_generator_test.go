package utils

import (
	"strings"
	"testing"
	"time"

	"employeemanagement/models"
)

func TestBuildRoster(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	data := BuildRoster([]*models.Employee{
		{ID: 2, Name: "Bob", Salary: 40000},
		{ID: 1, Name: "Alice", Salary: 60000},
	}, now)

	if data.Headcount != 2 || data.TotalSalary != 100000 {
		t.Fatalf("totals: %+v", data)
	}
	if data.Employees[0].ID != 1 {
		t.Fatalf("roster not sorted by id")
	}
	if data.TotalSalaryWords != "One Lakh Rupees Only" {
		t.Fatalf("words: %q", data.TotalSalaryWords)
	}
	if data.GeneratedAt != "05-Mar-2024 14:30" {
		t.Fatalf("generated at: %q", data.GeneratedAt)
	}
}

func TestRenderRosterHTML_EscapesFields(t *testing.T) {
	data := BuildRoster([]*models.Employee{
		{ID: 1, Name: "<script>x</script>", Email: "a@example.com", Department: "R&D", Salary: 10},
	}, time.Now())

	html, err := RenderRosterHTML(data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	if strings.Contains(out, "<script>x</script>") {
		t.Fatalf("name not escaped")
	}
	for _, want := range []string{"Employee Roster", "a@example.com", "R&amp;D", "Ten Rupees Only"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output", want)
		}
	}
}

func TestRenderRosterHTML_Empty(t *testing.T) {
	html, err := RenderRosterHTML(BuildRoster(nil, time.Now()))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "No employees on record.") {
		t.Fatalf("empty roster placeholder missing")
	}
}
