package storage

// Worker is a roster entry. The roster is consumed for display and id
// validity checks only; this backend does not schedule individual workers.
type Worker struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"` // Core, Part-time, Occasional
	Availability []string `json:"availability,omitempty"`
}
