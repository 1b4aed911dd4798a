package domain

import "time"

type Project struct {
	ID              string
	Name            string
	Field           string
	GoalDescription string
	StartDate       time.Time
	Deadline        time.Time
	Status          ProjectStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
