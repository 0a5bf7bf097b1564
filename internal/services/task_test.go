package services

import "testing"

func TestValidTaskStatus(t *testing.T) {
	valid := []string{"todo", "in_progress", "done"}
	for _, s := range valid {
		if !validTaskStatus(s) {
			t.Errorf("validTaskStatus(%q) = false, expected true", s)
		}
	}

	invalid := []string{"", "open", "closed", "TODO", "in-progress"}
	for _, s := range invalid {
		if validTaskStatus(s) {
			t.Errorf("validTaskStatus(%q) = true, expected false", s)
		}
	}
}

func TestValidTaskPriority(t *testing.T) {
	valid := []string{"low", "medium", "high"}
	for _, p := range valid {
		if !validTaskPriority(p) {
			t.Errorf("validTaskPriority(%q) = false, expected true", p)
		}
	}

	invalid := []string{"", "urgent", "critical", "High"}
	for _, p := range invalid {
		if validTaskPriority(p) {
			t.Errorf("validTaskPriority(%q) = true, expected false", p)
		}
	}
}
