package testutil

import (
	"time"

	"github.com/averhoef/thesisflow/internal/domain"
)

// Date builds a UTC midnight date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Project returns a valid 12-week thesis project starting 2025-03-03.
func Project(id string) *domain.Project {
	return &domain.Project{
		ID:              id,
		Name:            "Thesis",
		Field:           "computer-science",
		GoalDescription: "Write a master's thesis on distributed consensus protocols",
		StartDate:       Date(2025, time.March, 3),
		Deadline:        Date(2025, time.May, 25),
		Status:          domain.ProjectActive,
		CreatedAt:       Date(2025, time.March, 3),
		UpdatedAt:       Date(2025, time.March, 3),
	}
}

// Profile returns the reference availability profile: 4h/day, 5 work
// days, 45-minute focus sessions, medium procrastination.
func Profile(id, projectID string) *domain.Profile {
	return &domain.Profile{
		ID:              id,
		ProjectID:       projectID,
		Deadline:        Date(2025, time.May, 25),
		Timezone:        "UTC",
		DailyHours:      4,
		WorkDaysPerWeek: 5,
		FocusSessionMin: 45,
		Procrastination: domain.ProcrastinationMedium,
		CreatedAt:       Date(2025, time.March, 3),
	}
}

// Plan returns a small two-phase feasible plan for the project.
func Plan(id, projectID string) *domain.Plan {
	return &domain.Plan{
		ID:          id,
		ProjectID:   projectID,
		Status:      domain.PlanFeasible,
		GeneratedAt: Date(2025, time.March, 3),
		Phases: []domain.Phase{
			{
				ID: id + ":ph1", PlanID: id, Name: "Literature Review",
				Deliverable: "Annotated bibliography",
				StartDate:   Date(2025, time.March, 3), EndDate: Date(2025, time.March, 21),
				EstimatedHours: 40, OrderIndex: 0,
				Tasks: []domain.Task{
					{
						ID: id + ":t1", PhaseID: id + ":ph1", Title: "Survey prior work",
						EstimatedHours: 20, Priority: 1,
						DueDate:       Date(2025, time.March, 21),
						AssignedDates: []time.Time{Date(2025, time.March, 3), Date(2025, time.March, 4)},
						Sessions:      27, Status: domain.TaskNotStarted,
					},
					{
						ID: id + ":t2", PhaseID: id + ":ph1", Title: "Write related work section",
						EstimatedHours: 20, Priority: 2,
						DueDate:   Date(2025, time.March, 21),
						DependsOn: []string{"Survey prior work"},
						Sessions:  27, Status: domain.TaskNotStarted,
					},
				},
			},
			{
				ID: id + ":ph2", PlanID: id, Name: "Research & Writing",
				StartDate: Date(2025, time.March, 24), EndDate: Date(2025, time.May, 25),
				EstimatedHours: 120, OrderIndex: 1,
				Tasks: []domain.Task{
					{
						ID: id + ":t3", PhaseID: id + ":ph2", Title: "Run experiments",
						EstimatedHours: 60, Priority: 3,
						DueDate:  Date(2025, time.May, 25),
						Sessions: 80, Status: domain.TaskNotStarted,
					},
				},
			},
		},
	}
}
