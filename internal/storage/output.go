package storage

import "time"

// RecordOutput is the shop-floor request to log produced quantity for one
// project step.
type RecordOutput struct {
	ProjectID string   `json:"project_id"`
	StepID    string   `json:"step_id"`
	Quantity  int      `json:"quantity"`
	StartTime string   `json:"start_time,omitempty"` // HH:MM
	EndTime   string   `json:"end_time,omitempty"`   // HH:MM
	WorkerIDs []string `json:"worker_ids"`
	Notes     string   `json:"notes,omitempty"`
}

// OutputWrite is the fully resolved multi-record write derived from a
// RecordOutput request: the progress increment, the stock credit, the daily
// log row and one activity row per worker. The storage layer commits it in a
// single transaction; a partially applied write must never be observable.
type OutputWrite struct {
	ProjectID   string
	ProjectName string
	ProductType string
	StepID      string
	StepName    string
	Quantity    int
	Date        string
	StartTime   string
	EndTime     string
	Hours       float64
	Notes       string
	Activities  []WorkerActivity
}

// WorkerActivity is one worker's share of a recorded output event. The
// recorded quantity is divided evenly across all participating workers.
type WorkerActivity struct {
	ID               string    `json:"id"`
	WorkerID         string    `json:"worker_id"`
	ProjectID        string    `json:"project_id"`
	ProjectName      string    `json:"project_name"`
	StepID           string    `json:"step_id"`
	StepName         string    `json:"step_name"`
	Date             string    `json:"date"`
	StartTime        string    `json:"start_time,omitempty"`
	EndTime          string    `json:"end_time,omitempty"`
	HoursWorked      float64   `json:"hours_worked"`
	QuantityProduced float64   `json:"quantity_produced"`
	CreatedAt        time.Time `json:"created_at"`
}
