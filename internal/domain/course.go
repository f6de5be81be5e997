package domain

import "time"

// Course represents an owned course record. UserID references the
// creating user and never changes after creation.
type Course struct {
	ID              int64
	Title           string
	Description     string
	EstimatedTime   string
	MaterialsNeeded string
	UserID          int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
