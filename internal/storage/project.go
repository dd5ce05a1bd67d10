package storage

import (
	"time"

	"aqua-backend/internal/catalog"
)

type StepProgress struct {
	Completed  int       `json:"completed"`
	StockUsed  int       `json:"stock_used"`
	LastUpdate time.Time `json:"last_update"`
}

type Project struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	ProductType    string                  `json:"product_type"`
	PrintingMethod string                  `json:"printing_method"`
	HangingMethod  string                  `json:"hanging_method"`
	TargetQuantity int                     `json:"target_quantity"`
	Status         string                  `json:"status"`
	StartDate      string                  `json:"start_date"`
	Notes          string                  `json:"notes,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	Progress       map[string]StepProgress `json:"progress"`
}

// Remaining reports how many units the step still has to produce. It can go
// negative when output was over-recorded; display code clamps at zero.
func (p Project) Remaining(stepID string) int {
	return p.TargetQuantity - p.Progress[stepID].Completed
}

type NewProject struct {
	Name            string         `json:"name"`
	ProductType     string         `json:"product_type"`
	PrintingMethod  string         `json:"printing_method"`
	HangingMethod   string         `json:"hanging_method"`
	TargetQuantity  int            `json:"target_quantity"`
	StartDate       string         `json:"start_date"`
	Notes           string         `json:"notes,omitempty"`
	StockAllocation map[string]int `json:"stock_allocation,omitempty"`
}

// SeedProgress builds the initial per-step progress of a new project. Every
// catalog step gets a row; a step with a manual stock allocation starts with
// completed = stockUsed = the entered amount clamped to [0, target]. The
// allocation is an operator-entered seed and deliberately does not debit the
// global stock ledger.
func SeedProgress(target int, allocation map[string]int) map[string]StepProgress {
	progress := make(map[string]StepProgress)
	for _, step := range catalog.All() {
		used := allocation[step.ID]
		if used > target {
			used = target
		}
		if used < 0 {
			used = 0
		}
		progress[step.ID] = StepProgress{Completed: used, StockUsed: used}
	}
	return progress
}
