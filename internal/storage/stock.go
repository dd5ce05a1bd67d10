package storage

import "time"

// StockRecord is one row of the global semi-finished stock ledger, keyed by
// (product type, step). The ledger is increment-only: output recording
// credits it, nothing in this system ever debits it.
type StockRecord struct {
	ProductType string    `json:"product_type"`
	StepID      string    `json:"step_id"`
	Quantity    int       `json:"quantity"`
	LastUpdate  time.Time `json:"last_update"`
}
