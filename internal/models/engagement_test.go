package models

import "testing"

func TestEngagementStatusValid(t *testing.T) {
	tests := []struct {
		status   EngagementStatus
		expected bool
	}{
		{StatusScheduled, true},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{EngagementStatus("paused"), false},
		{EngagementStatus(""), false},
	}

	for _, tt := range tests {
		if result := tt.status.Valid(); result != tt.expected {
			t.Errorf("Valid(%q) = %v, want %v", tt.status, result, tt.expected)
		}
	}
}

func TestEngagementStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     EngagementStatus
		to       EngagementStatus
		expected bool
	}{
		{"scheduled to completed", StatusScheduled, StatusCompleted, true},
		{"scheduled to cancelled", StatusScheduled, StatusCancelled, true},
		{"scheduled to scheduled", StatusScheduled, StatusScheduled, true},
		{"completed to scheduled", StatusCompleted, StatusScheduled, false},
		{"completed to cancelled", StatusCompleted, StatusCancelled, false},
		{"completed to completed", StatusCompleted, StatusCompleted, true},
		{"cancelled to scheduled", StatusCancelled, StatusScheduled, false},
		{"cancelled to completed", StatusCancelled, StatusCompleted, false},
		{"cancelled to cancelled", StatusCancelled, StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.from.CanTransitionTo(tt.to); result != tt.expected {
				t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestEngagementStatusTerminal(t *testing.T) {
	if StatusScheduled.Terminal() {
		t.Error("scheduled should not be terminal")
	}
	if !StatusCompleted.Terminal() {
		t.Error("completed should be terminal")
	}
	if !StatusCancelled.Terminal() {
		t.Error("cancelled should be terminal")
	}
}
