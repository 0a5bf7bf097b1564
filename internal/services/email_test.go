package services

import (
	"strings"
	"testing"
)

func TestBuildTaskBody(t *testing.T) {
	service := &EmailService{}

	tests := []struct {
		name          string
		notification  *TaskNotification
		shouldContain []string
		shouldOmit    []string
	}{
		{
			name: "full task",
			notification: &TaskNotification{
				ProjectName: "Website Redesign",
				TaskTitle:   "Update landing page",
				Description: "Swap the hero image",
				Priority:    "high",
				DueDate:     "2026-09-01",
				AssignedBy:  "alice",
			},
			shouldContain: []string{"Website Redesign", "Update landing page", "Swap the hero image", "high", "2026-09-01", "alice"},
		},
		{
			name: "no due date or description",
			notification: &TaskNotification{
				ProjectName: "Ops",
				TaskTitle:   "Rotate credentials",
				Priority:    "medium",
				AssignedBy:  "bob",
			},
			shouldContain: []string{"Ops", "Rotate credentials", "medium", "bob"},
			shouldOmit:    []string{"Due", "Description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := service.buildTaskBody("You have been assigned a task", tt.notification)

			for _, want := range tt.shouldContain {
				if !strings.Contains(body, want) {
					t.Errorf("body should contain %q", want)
				}
			}
			for _, unwanted := range tt.shouldOmit {
				if strings.Contains(body, unwanted) {
					t.Errorf("body should not contain %q", unwanted)
				}
			}
		})
	}
}
