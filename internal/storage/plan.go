package storage

import "time"

// DailyPlan is one saved planning session: the worker-to-step assignment an
// operator confirmed for one project on one date. Plans are append-only and
// never edited; correcting a plan means saving a new one.
type DailyPlan struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"project_id"`
	Date        string         `json:"date"` // YYYY-MM-DD
	Assignments map[string]int `json:"assignments"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
